package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore writes assets into a directory tree. Useful for offline runs
// and tests; the returned URLs are file:// URLs.
type LocalStore struct {
	root string
}

// NewLocalStore creates a local directory asset store.
func NewLocalStore(root string) (*LocalStore, error) {
	if root == "" {
		root = "assets"
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve asset directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("failed to create asset directory: %w", err)
	}
	return &LocalStore{root: abs}, nil
}

// Upload writes data under path and returns its file:// URL.
func (s *LocalStore) Upload(ctx context.Context, path, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	full := filepath.Join(s.root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", fmt.Errorf("failed to create asset subdirectory: %w", err)
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write asset %s: %w", path, err)
	}

	return "file://" + filepath.ToSlash(full), nil
}

// Name returns the backend name
func (s *LocalStore) Name() string {
	return "local"
}
