// Package filex holds small filesystem helpers for the CLI: data directory
// setup and document checks before upload.
package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var (
	ErrNotRegularFile  = errors.New("not a regular file")
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file is too large")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// EnsureDir creates dir and its parents with owner-only permissions and
// returns its absolute path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// DataDir returns the per-user directory for app, creating it if needed.
func DataDir(app string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("locate config dir: %w", err)
		}
		return EnsureDir(filepath.Join(home, "."+app))
	}
	return EnsureDir(filepath.Join(base, app))
}

// Document describes a local file accepted for upload.
type Document struct {
	Path string
	Name string
	Size int64
}

// InspectDocument checks that path is a non-empty regular file no larger
// than maxSize whose extension (without dot, case-insensitive) is allowed.
func InspectDocument(path string, allowed []string, maxSize int64) (Document, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if !slices.Contains(allowed, ext) {
		return Document{}, fmt.Errorf("%w %q, allowed: %s", ErrUnsupportedType, filepath.Ext(path), strings.Join(allowed, ", "))
	}

	fi, err := os.Stat(path)
	if err != nil {
		return Document{}, err
	}
	if !fi.Mode().IsRegular() {
		return Document{}, fmt.Errorf("%s: %w", path, ErrNotRegularFile)
	}
	if fi.Size() == 0 {
		return Document{}, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}
	if maxSize > 0 && fi.Size() > maxSize {
		return Document{}, fmt.Errorf("%s: %w (%d bytes, limit %d)", path, ErrFileTooLarge, fi.Size(), maxSize)
	}

	return Document{Path: path, Name: filepath.Base(path), Size: fi.Size()}, nil
}
