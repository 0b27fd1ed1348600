package filetype

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

const sniffSize = 4096

// binaryExtensions short-circuits the content sniff for formats that are
// never worth opening as text.
var binaryExtensions = map[string]bool{
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".bin": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".ico": true,
	".webp": true, ".bmp": true, ".tga": true, ".tiff": true,
	".mp4": true, ".avi": true, ".mov": true, ".mkv": true,
	".mp3": true, ".wav": true, ".flac": true, ".ogg": true,
	".zip": true, ".tar": true, ".gz": true, ".rar": true, ".7z": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".pyc": true, ".class": true, ".jar": true, ".sqlite": true, ".db": true,
}

// IsText reports whether the file at path looks like readable text.
// A file is text when its first bytes contain no NUL byte, mirroring the
// usual editor heuristic. Unreadable files count as non-text.
func IsText(path string) bool {
	if binaryExtensions[strings.ToLower(filepath.Ext(path))] {
		return false
	}

	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, sniffSize)
	n, err := f.Read(buf)
	if n == 0 {
		// Empty files are text; anything unreadable is not
		return err == nil || err == io.EOF
	}

	for i := 0; i < n; i++ {
		if buf[i] == 0 {
			return false
		}
	}
	return true
}
