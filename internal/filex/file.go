// Package filex contains small file-handling helpers: staging directory
// setup and sanitization of user-supplied filenames.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates dir (and parents) if needed and returns its absolute path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// SanitizeFileName strips directory separators and NUL bytes from a
// user-supplied filename so it can never escape a staging directory.
// Empty results fall back to "file".
func SanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "\x00", "")
	name = strings.ReplaceAll(name, "\\", "/")
	// keep only the last path element, then drop any remaining traversal
	name = filepath.Base(name)
	if name == "." || name == ".." || name == "/" || name == "" {
		return "file"
	}
	return name
}
