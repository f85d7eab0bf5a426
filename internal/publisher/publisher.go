// Package publisher writes the minified stylesheet to the public object
// store that site visitors are served from.
package publisher

import (
	"context"
	"fmt"
	"strings"

	"customcss_backend/platform/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Publisher publishes stylesheet text for direct consumption by visitors.
// Implementations must overwrite the previous publication in place so the
// public URL stays stable; freshness is tracked by the object's
// last-modified time.
type Publisher interface {
	Publish(ctx context.Context, css string) error
}

// MinIOPublisher implements Publisher against MinIO / S3-compatible storage.
type MinIOPublisher struct {
	client *minio.Client
	bucket string
	object string
}

// NewMinIOPublisher creates a publisher for the configured bucket/object.
func NewMinIOPublisher(cfg config.MinIOConfig) (*MinIOPublisher, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("MinIO is not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &MinIOPublisher{
		client: client,
		bucket: cfg.GetMinioBucketPublicAssets(),
		object: cfg.GetPublishedCSSObject(),
	}, nil
}

// EnsureBucketExists creates the bucket if it doesn't exist.
func (p *MinIOPublisher) EnsureBucketExists(ctx context.Context) error {
	exists, err := p.client.BucketExists(ctx, p.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := p.client.MakeBucket(ctx, p.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", p.bucket, err)
		}
	}

	return nil
}

// Publish overwrites the published stylesheet object with css.
func (p *MinIOPublisher) Publish(ctx context.Context, css string) error {
	reader := strings.NewReader(css)
	_, err := p.client.PutObject(ctx, p.bucket, p.object, reader, int64(len(css)), minio.PutObjectOptions{
		ContentType:  "text/css; charset=utf-8",
		CacheControl: "public, max-age=300",
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", p.object, err)
	}
	return nil
}

// Compile-time check that MinIOPublisher implements Publisher.
var _ Publisher = (*MinIOPublisher)(nil)
