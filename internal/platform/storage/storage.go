package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Store persists blobs under a key and returns the public locator for them.
// Writing the same key twice overwrites the previous blob.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader) (string, error)
}

// Disk stores blobs below Root; locators are "/<key>".
type Disk struct {
	Root string
}

func NewDisk(root string) *Disk {
	return &Disk{Root: root}
}

func (d *Disk) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	dst := filepath.Join(d.Root, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create storage dir: %w", err)
	}

	// write to a temp file first so readers never see a partial blob
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write %s: %w", clean, err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("commit %s: %w", clean, err)
	}
	return "/" + clean, nil
}

// Dir returns the directory holding blobs under prefix, for static serving.
func (d *Disk) Dir(prefix string) string {
	return filepath.Join(d.Root, filepath.FromSlash(prefix))
}

func cleanKey(key string) (string, error) {
	clean := strings.TrimPrefix(path.Clean("/"+key), "/")
	if clean == "" || clean == "." {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return clean, nil
}
