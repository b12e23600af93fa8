package supabase

import (
	"context"
	"net/url"

	"github.com/MiluneSadakaChrispinus/househunter/domain"
)

// Storage implements domain.BlobAPI against the storage object API.
type Storage struct {
	c *Client
}

// NewStorage creates the blob gateway.
func NewStorage(c *Client) domain.BlobAPI {
	return &Storage{c: c}
}

// Upload implements domain.BlobAPI. Uploads are upserts so a retried submit
// with the same key does not fail on conflict.
func (s *Storage) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	headers := map[string]string{"x-upsert": "true"}
	if contentType != "" {
		headers["Content-Type"] = contentType
	}
	return s.c.do(ctx, "POST", "/storage/v1/object/"+bucket+"/"+escapeKey(key), nil, data, nil, headers)
}

// PublicURL implements domain.BlobAPI.
func (s *Storage) PublicURL(bucket, key string) string {
	return s.c.baseURL + "/storage/v1/object/public/" + bucket + "/" + escapeKey(key)
}

// Remove implements domain.BlobAPI.
func (s *Storage) Remove(ctx context.Context, bucket string, keys []string) error {
	body := map[string]any{"prefixes": keys}
	return s.c.do(ctx, "DELETE", "/storage/v1/object/"+bucket, nil, body, nil, nil)
}

func escapeKey(key string) string {
	return url.PathEscape(key)
}
