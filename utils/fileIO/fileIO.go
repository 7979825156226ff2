package fileio

import (
	"os"
	"path/filepath"
	"strings"
)

// Helper function that checks if a file exists.
func FileExists(filename string) bool {
	if fstat, err := os.Stat(filename); err == nil && !fstat.IsDir() {
		return true
	}
	return false
}

// IsPlainFilename reports whether name names an entry directly inside a directory,
// without separators or parent references.
func IsPlainFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.Base(name) == name
}
