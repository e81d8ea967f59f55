package storage

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	key := ObjectKey("My Resume (final).pdf", now)
	assert.True(t, strings.HasPrefix(key, "uploads/1700000000000_"), key)
	assert.True(t, strings.HasSuffix(key, "_My_Resume_final_.pdf"), key)

	key = ObjectKey(`..\..\etc/passwd`, now)
	assert.True(t, strings.HasSuffix(key, "_passwd"), key)
	assert.NotContains(t, strings.TrimPrefix(key, "uploads/"), "/")

	key = ObjectKey("   ", now)
	assert.True(t, strings.HasSuffix(key, "_file"), key)
}

func newTestS3Signer(t *testing.T) *S3Signer {
	t.Helper()
	s, err := NewS3Signer(context.Background(), S3Options{
		Bucket:       "resumes",
		Region:       "us-east-1",
		AccessKey:    "minio",
		SecretKey:    "minio-secret",
		BaseEndpoint: "http://localhost:9000",
	})
	require.NoError(t, err)
	return s
}

func TestS3SignerPresignsLocally(t *testing.T) {
	s := newTestS3Signer(t)
	ctx := context.Background()

	raw, err := s.SignedPutURL(ctx, "uploads/1_a_cv.pdf", "application/pdf", time.Minute)
	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/resumes/uploads/1_a_cv.pdf", u.Path)
	assert.Equal(t, "60", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))

	raw, err = s.SignedGetURL(ctx, "uploads/1_a_cv.pdf", 5*time.Minute)
	require.NoError(t, err)
	u, err = url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "300", u.Query().Get("X-Amz-Expires"))
}

func TestNewS3Signer_Errors(t *testing.T) {
	_, err := NewS3Signer(context.Background(), S3Options{})
	assert.Error(t, err)

	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })
	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}
	_, err = NewS3Signer(context.Background(), S3Options{Bucket: "b"})
	assert.EqualError(t, err, "no config")
}

func TestNewGCSSigner_RequiresBucket(t *testing.T) {
	_, err := NewGCSSigner(context.Background(), "")
	assert.Error(t, err)
}
