package assets

import (
	"context"
	"fmt"
)

// Store uploads binary assets and returns the public URL they can be
// fetched from. Uploads are append-only; superseded objects are never
// deleted, old flashcard exports keep working.
type Store interface {
	// Upload writes data under path and returns its public URL
	Upload(ctx context.Context, path, contentType string, data []byte) (string, error)

	// Name returns the backend name
	Name() string
}

// Config selects and configures the asset storage backend.
type Config struct {
	Backend  string // "local" or "s3"
	LocalDir string // local backend root

	// S3-compatible settings (AWS, MinIO, Supabase storage, ...)
	Endpoint string
	Bucket   string
	KeyID    string
	Key      string
	BaseURL  string // public URL prefix; defaults to endpoint/bucket
}

// NewStore creates the configured asset store backend.
func NewStore(ctx context.Context, config *Config) (Store, error) {
	switch config.Backend {
	case "", "local":
		return NewLocalStore(config.LocalDir)
	case "s3":
		return NewS3Store(ctx, config)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", config.Backend)
	}
}
