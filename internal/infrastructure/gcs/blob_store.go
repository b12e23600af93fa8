// Package gcs implements the blob contract against Google Cloud Storage,
// for self-hosted deployments whose images live in a public GCS bucket.
package gcs

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"

	"github.com/MiluneSadakaChrispinus/househunter/domain"
)

// BlobStore implements domain.BlobAPI over a GCS client.
type BlobStore struct {
	client *storage.Client
	log    *zap.Logger
}

// NewBlobStore creates the store. The client authenticates through
// application default credentials.
func NewBlobStore(ctx context.Context, log *zap.Logger) (*BlobStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &BlobStore{client: client, log: log}, nil
}

// Upload implements domain.BlobAPI.
func (b *BlobStore) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	w := b.client.Bucket(bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish object %s: %w", key, err)
	}
	return nil
}

// PublicURL implements domain.BlobAPI. The bucket must allow public reads.
func (b *BlobStore) PublicURL(bucket, key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, key)
}

// Remove implements domain.BlobAPI. Removal continues past individual
// failures and reports the first error.
func (b *BlobStore) Remove(ctx context.Context, bucket string, keys []string) error {
	var firstErr error
	for _, key := range keys {
		if err := b.client.Bucket(bucket).Object(key).Delete(ctx); err != nil {
			b.log.Warn("blob removal failed", zap.String("key", key), zap.Error(err))
			if firstErr == nil {
				firstErr = fmt.Errorf("remove object %s: %w", key, err)
			}
		}
	}
	return firstErr
}

// Close releases the storage client.
func (b *BlobStore) Close() error {
	return b.client.Close()
}

var _ domain.BlobAPI = (*BlobStore)(nil)
