package storage

import (
	"bytes"
	"context"
	"fmt"

	appconfig "bookmeet-api/core/config"
	"bookmeet-api/core/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader stores generated files (calendar invites) in object storage.
// A disabled uploader is returned when no bucket is configured so callers
// don't have to special-case local development.
type Uploader interface {
	Enabled() bool
	Upload(ctx context.Context, key string, contentType string, body []byte) (string, error)
}

type s3Uploader struct {
	client   *s3.Client
	bucket   string
	region   string
	endpoint string
}

type disabledUploader struct{}

func (disabledUploader) Enabled() bool { return false }

func (disabledUploader) Upload(ctx context.Context, key string, contentType string, body []byte) (string, error) {
	return "", fmt.Errorf("object storage is not configured")
}

// NewUploader builds an S3-backed uploader from config. Static credentials
// only; IAM-role resolution is left to the deployment environment.
func NewUploader(cfg appconfig.S3Config) Uploader {
	if cfg.Bucket == "" {
		logger.Info("Object storage disabled, no bucket configured")
		return disabledUploader{}
	}

	opts := s3.Options{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	logger.Info("Object storage initialized", "bucket", cfg.Bucket, "region", cfg.Region)
	return &s3Uploader{
		client:   s3.New(opts),
		bucket:   cfg.Bucket,
		region:   cfg.Region,
		endpoint: cfg.Endpoint,
	}
}

func (u *s3Uploader) Enabled() bool { return true }

func (u *s3Uploader) Upload(ctx context.Context, key string, contentType string, body []byte) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Error("Storage:Upload", "error", err, "key", key)
		return "", err
	}

	if u.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", u.endpoint, u.bucket, key), nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key), nil
}
