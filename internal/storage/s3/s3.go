// Package s3 stores uploaded note attachments in an S3-compatible bucket.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/wisker-app/wisker/internal/config"
	"github.com/wisker-app/wisker/internal/pkg/errors"
)

// allowedContentTypes maps accepted upload types to their canonical extension
var allowedContentTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/webp":      ".webp",
}

// Storage uploads and deletes note attachments
type Storage struct {
	client   *s3.Client
	bucket   string
	endpoint string
}

// New creates an S3 storage client. A custom endpoint with path-style
// addressing keeps S3-compatible providers working.
func New(ctx context.Context, cfg config.StorageConfig) (*Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
		o.Region = cfg.Region
	})

	return &Storage{
		client:   client,
		bucket:   cfg.Bucket,
		endpoint: cfg.Endpoint,
	}, nil
}

// AllowedContentType reports whether uploads of this type are accepted
func AllowedContentType(contentType string) bool {
	_, ok := allowedContentTypes[contentType]
	return ok
}

// Upload stores one attachment under the user's prefix and returns its URL.
// The stored name is a fresh UUID; the original filename only contributes its
// extension as a fallback when the content type is unrecognized.
func (s *Storage) Upload(ctx context.Context, userID int64, filename, contentType string, data []byte) (string, error) {
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		ext = strings.ToLower(filepath.Ext(filename))
	}
	key := fmt.Sprintf("user_%d/notes/%s%s", userID, uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", errors.Internal("Failed to store upload", err)
	}

	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(s.endpoint, "/"), s.bucket, key), nil
}

// Delete removes a stored attachment by key
func (s *Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return errors.Internal("Failed to delete upload", err)
	}
	return nil
}
