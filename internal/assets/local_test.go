package assets

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStoreUpload(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocalStore(root)
	if err != nil {
		t.Fatalf("NewLocalStore() error = %v", err)
	}

	url, err := s.Upload(context.Background(), "images/katze_cartoon_1.jpg", "image/jpeg", []byte("jpeg-bytes"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if !strings.HasPrefix(url, "file://") {
		t.Errorf("URL = %q, want file:// scheme", url)
	}

	data, err := os.ReadFile(filepath.Join(root, "images", "katze_cartoon_1.jpg"))
	if err != nil {
		t.Fatalf("Uploaded file missing: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Errorf("Content = %q", data)
	}
}

func TestLocalStoreUploadCancelled(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Upload(ctx, "a/b.jpg", "image/jpeg", []byte("x")); err == nil {
		t.Error("Expected error on cancelled context")
	}
}

func TestNewStoreSelectsBackend(t *testing.T) {
	s, err := NewStore(context.Background(), &Config{Backend: "local", LocalDir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	if s.Name() != "local" {
		t.Errorf("Name = %q, want local", s.Name())
	}

	if _, err := NewStore(context.Background(), &Config{Backend: "ftp"}); err == nil {
		t.Error("Expected error for unknown backend")
	}

	// S3 backend demands credentials up front.
	if _, err := NewStore(context.Background(), &Config{Backend: "s3", Bucket: "b"}); err == nil {
		t.Error("Expected error for missing credentials")
	}
}
