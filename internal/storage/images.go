package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/skirsanov/gadgetshop/internal/config"
)

var ErrNotConfigured = errors.New("image storage is not configured")

// ImageStore keeps uploaded product images in an S3-compatible bucket.
type ImageStore struct {
	client *minio.Client
	bucket string
	public string
}

func NewImageStore(cfg *config.Config) (*ImageStore, error) {
	if strings.TrimSpace(cfg.MinioEndpoint) == "" {
		return nil, nil
	}
	if cfg.MinioAccessKey == "" || cfg.MinioSecretKey == "" {
		return nil, errors.New("minio access key and secret key are required")
	}

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}

	scheme := "http"
	if cfg.MinioUseSSL {
		scheme = "https"
	}

	return &ImageStore{
		client: client,
		bucket: cfg.MinioBucket,
		public: fmt.Sprintf("%s://%s/%s", scheme, cfg.MinioEndpoint, cfg.MinioBucket),
	}, nil
}

func (s *ImageStore) EnsureBucket(ctx context.Context) error {
	if s == nil {
		return nil
	}
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

// Put uploads an image and returns its public URL.
func (s *ImageStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if s == nil {
		return "", ErrNotConfigured
	}
	if _, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return "", err
	}
	return s.public + "/" + key, nil
}

func (s *ImageStore) Delete(ctx context.Context, key string) error {
	if s == nil {
		return ErrNotConfigured
	}
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}
