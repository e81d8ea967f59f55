package storage

import (
	"context"
	"errors"
	"net/http"
	"time"

	gcs "cloud.google.com/go/storage"
)

type GCSSigner struct {
	client *gcs.Client
	bucket string
}

// NewGCSSigner uses application default credentials for signing.
func NewGCSSigner(ctx context.Context, bucket string) (*GCSSigner, error) {
	if bucket == "" {
		return nil, errors.New("GCS_BUCKET environment variable is not set")
	}
	c, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &GCSSigner{client: c, bucket: bucket}, nil
}

func (g *GCSSigner) Close() error { return g.client.Close() }

func (g *GCSSigner) SignedPutURL(_ context.Context, objectName, contentType string, ttl time.Duration) (string, error) {
	return g.client.Bucket(g.bucket).SignedURL(objectName, &gcs.SignedURLOptions{
		Scheme:      gcs.SigningSchemeV4,
		Method:      http.MethodPut,
		ContentType: contentType,
		Expires:     time.Now().Add(ttl),
	})
}

func (g *GCSSigner) SignedGetURL(_ context.Context, objectName string, ttl time.Duration) (string, error) {
	return g.client.Bucket(g.bucket).SignedURL(objectName, &gcs.SignedURLOptions{
		Scheme:  gcs.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: time.Now().Add(ttl),
	})
}
