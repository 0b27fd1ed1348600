package listing

import (
	"os"
	"path/filepath"
	"testing"
)

func TestListOrdering(t *testing.T) {
	dir := t.TempDir()

	// Deliberately created out of order
	os.WriteFile(filepath.Join(dir, "b.txt"), []byte("b"), 0644)
	os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644)
	os.Mkdir(filepath.Join(dir, "zeta"), 0755)
	os.Mkdir(filepath.Join(dir, "Alpha"), 0755)

	entries, err := List(dir)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	want := []string{"Alpha", "zeta", "a.txt", "b.txt"}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, name := range want {
		if entries[i].Name != name {
			t.Errorf("entries[%d].Name = %q, want %q", i, entries[i].Name, name)
		}
	}

	if !entries[0].IsDir() {
		t.Error("Alpha should be a directory")
	}
	if entries[2].Kind != KindText {
		t.Error("a.txt should be classified as text")
	}
}

func TestListBinaryClassification(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "blob.bin"), []byte{0x00, 0x01, 0x02}, 0644)
	os.WriteFile(filepath.Join(dir, "plain.txt"), []byte("hello"), 0644)

	entries, err := List(dir)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if i := IndexOfName(entries, "blob.bin"); i < 0 || entries[i].Kind != KindBinary {
		t.Error("blob.bin should be classified as binary")
	}
	if i := IndexOfName(entries, "plain.txt"); i < 0 || entries[i].Kind != KindText {
		t.Error("plain.txt should be classified as text")
	}
}

func TestListError(t *testing.T) {
	if _, err := List(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error listing a missing directory")
	}
}

func TestSameNames(t *testing.T) {
	if !SameNames([]string{"a", "b"}, []string{"a", "b"}) {
		t.Error("identical sequences should compare equal")
	}
	if SameNames([]string{"a", "b"}, []string{"b", "a"}) {
		t.Error("order matters")
	}
	if SameNames([]string{"a"}, []string{"a", "b"}) {
		t.Error("length matters")
	}
}

func TestIndexOfPathResolvesSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.txt")
	os.WriteFile(target, []byte("x"), 0644)
	link := filepath.Join(dir, "link.txt")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	entries, err := List(dir)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	// Looking up through the symlink must land on an entry with the same
	// resolved identity.
	if i := IndexOfPath(entries, link); i < 0 {
		t.Error("IndexOfPath should resolve the symlink to a listed entry")
	}
	if i := IndexOfPath(entries, filepath.Join(dir, "other.txt")); i != -1 {
		t.Error("IndexOfPath should return -1 for unknown paths")
	}
}
