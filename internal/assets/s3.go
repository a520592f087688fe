package assets

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store uploads assets to an S3-compatible object store (AWS S3, MinIO,
// Supabase storage). A custom endpoint with path-style addressing covers
// the non-AWS providers.
type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3Store creates an S3-compatible asset store from config.
func NewS3Store(ctx context.Context, config *Config) (*S3Store, error) {
	if config.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}
	if config.KeyID == "" || config.Key == "" {
		return nil, fmt.Errorf("storage credentials are required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(config.KeyID, config.Key, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if config.Endpoint != "" {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = strings.TrimSuffix(config.Endpoint, "/") + "/" + config.Bucket
	}

	return &S3Store{
		client:  client,
		bucket:  config.Bucket,
		baseURL: baseURL,
	}, nil
}

// Upload writes data under path and returns its public URL.
func (s *S3Store) Upload(ctx context.Context, path, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(path),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", path, err)
	}

	return s.baseURL + "/" + path, nil
}

// Name returns the backend name
func (s *S3Store) Name() string {
	return "s3"
}
