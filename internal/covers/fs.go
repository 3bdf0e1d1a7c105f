// Package covers stores uploaded journey cover images on the local
// file system.
package covers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var allowedExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true,
	".gif": true, ".webp": true, ".svg": true,
}

// FS is a flat directory of cover image files.
type FS struct {
	root string // absolute path to the uploads directory
}

// NewFS creates a cover store rooted at the given directory, creating
// it if necessary.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("covers: resolve root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("covers: create root: %w", err)
	}
	return &FS{root: abs}, nil
}

// safeName validates that name is a plain file name with an allowed
// image extension and returns its absolute path under the uploads
// directory. Path separators and traversal are rejected.
func (f *FS) safeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("covers: filename is required")
	}
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("covers: invalid filename: %s", name)
	}
	if !allowedExtensions[strings.ToLower(filepath.Ext(cleaned))] {
		return "", fmt.Errorf("covers: unsupported file type: %s", name)
	}
	abs := filepath.Join(f.root, cleaned)
	if !strings.HasPrefix(abs, f.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("covers: path escapes uploads directory: %s", name)
	}
	return abs, nil
}

// Write atomically stores an image: tmp file, fsync, rename.
func (f *FS) Write(name string, content []byte) error {
	abs, err := f.safeName(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.root, ".raido-tmp-*")
	if err != nil {
		return fmt.Errorf("covers: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("covers: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("covers: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("covers: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("covers: rename: %w", err)
	}
	success = true
	return nil
}

// Path returns the absolute path of a stored image for serving.
func (f *FS) Path(name string) (string, error) {
	abs, err := f.safeName(name)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("covers: stat %s: %w", name, err)
	}
	return abs, nil
}

// Delete removes a stored image.
func (f *FS) Delete(name string) error {
	abs, err := f.safeName(name)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("covers: delete %s: %w", name, err)
	}
	return nil
}
