package fileio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.mp4")
	os.WriteFile(path, []byte("x"), 0644)

	if !FileExists(path) {
		t.Errorf("FileExists(%q) = false", path)
	}
	if FileExists(dir) {
		t.Error("FileExists(dir) = true, want false for directories")
	}
	if FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists(missing) = true")
	}
}

func TestIsPlainFilename(t *testing.T) {
	cases := map[string]bool{
		"a.mp4":          true,
		"2024-01-01.mkv": true,
		"":               false,
		".":              false,
		"..":             false,
		"../etc/passwd":  false,
		"sub/a.mp4":      false,
		`sub\a.mp4`:      false,
	}
	for name, want := range cases {
		if got := IsPlainFilename(name); got != want {
			t.Errorf("IsPlainFilename(%q) = %v, want %v", name, got, want)
		}
	}
}
