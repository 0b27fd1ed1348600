// Package fileops holds the filesystem verbs behind the browser's
// delete, paste, rename and create commands. Every operation takes
// effect immediately; the browser re-lists afterwards rather than
// trusting these to report the resulting tree.
package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Delete removes path permanently. Directories are removed recursively.
func Delete(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}

// Rename renames path in place to newName. Refuses to clobber an
// existing entry.
func Rename(path, newName string) error {
	newPath := filepath.Join(filepath.Dir(path), newName)
	if _, err := os.Lstat(newPath); err == nil {
		return fmt.Errorf("%s already exists", newName)
	}
	return os.Rename(path, newPath)
}

// Move relocates src into destDir under a collision-free name. Falls
// back to copy-and-delete when rename crosses a filesystem boundary.
func Move(src, destDir string) (string, error) {
	dest := UniqueDest(destDir, filepath.Base(src))
	if err := os.Rename(src, dest); err != nil {
		if err := Copy(src, dest); err != nil {
			return "", err
		}
		if err := os.RemoveAll(src); err != nil {
			return "", err
		}
	}
	return dest, nil
}

// Paste copies src into destDir, picking a collision-free name, and
// returns the destination path.
func Paste(src, destDir string) (string, error) {
	dest := UniqueDest(destDir, filepath.Base(src))
	if err := Copy(src, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// Copy copies a file or directory tree from src to dst.
func Copy(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return copyDir(src, dst, info.Mode())
	}
	return copyFile(src, dst, info.Mode())
}

func copyFile(src, dst string, mode os.FileMode) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, mode.Perm())
}

func copyDir(src, dst string, mode os.FileMode) error {
	if err := os.MkdirAll(dst, mode.Perm()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		info, err := entry.Info()
		if err != nil {
			return err
		}
		if entry.IsDir() {
			err = copyDir(srcPath, dstPath, info.Mode())
		} else {
			err = copyFile(srcPath, dstPath, info.Mode())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// UniqueDest returns a path for name inside destDir that does not
// collide with an existing entry: name itself, then stem_copy.ext,
// stem_copy2.ext and so on.
func UniqueDest(destDir, name string) string {
	dest := filepath.Join(destDir, name)
	if _, err := os.Lstat(dest); err != nil {
		return dest
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 1; ; n++ {
		suffix := "_copy"
		if n > 1 {
			suffix = fmt.Sprintf("_copy%d", n)
		}
		dest = filepath.Join(destDir, stem+suffix+ext)
		if _, err := os.Lstat(dest); err != nil {
			return dest
		}
	}
}

// Chmod applies an octal permission string like "644" to path.
func Chmod(path, octal string) error {
	mode, err := strconv.ParseUint(octal, 8, 32)
	if err != nil {
		return fmt.Errorf("bad mode %q: %w", octal, err)
	}
	return os.Chmod(path, os.FileMode(mode))
}

// CreateFile creates a new empty file inside dir, failing if it exists.
func CreateFile(dir, name string) error {
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	return f.Close()
}

// CreateDir creates a new directory inside dir.
func CreateDir(dir, name string) error {
	return os.Mkdir(filepath.Join(dir, name), 0755)
}
