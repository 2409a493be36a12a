package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"studymate/internal/domain"
)

// MinioConfig holds the connection settings for the object store.
// Constructed explicitly and injected; there is no package-level client.
type MinioConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
}

// MinioStore implements ObjectStore on a MinIO/S3 bucket
type MinioStore struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

// NewMinioStore creates the client and ensures the bucket exists
func NewMinioStore(ctx context.Context, cfg MinioConfig, logger *slog.Logger) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
		logger.Info("bucket created", "bucket", cfg.Bucket)
	}

	return &MinioStore{
		client: client,
		bucket: cfg.Bucket,
		logger: logger,
	}, nil
}

// Put streams the content to the bucket under a generated key
func (s *MinioStore) Put(ctx context.Context, content io.Reader, size int64, opts PutOptions) (*StoredObject, error) {
	key := s.objectKey(opts)

	info, err := s.client.PutObject(ctx, s.bucket, key, content, size, minio.PutObjectOptions{
		ContentType: opts.ContentType,
	})
	if err != nil {
		return nil, s.wrapError("put", err)
	}

	return &StoredObject{
		Key:         key,
		URL:         fmt.Sprintf("%s/%s/%s", s.client.EndpointURL(), s.bucket, key),
		ContentType: opts.ContentType,
		Size:        info.Size,
	}, nil
}

// Remove deletes the remote object
func (s *MinioStore) Remove(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return s.wrapError("remove", err)
	}
	return nil
}

// PresignedURL returns a short-lived download URL for the object
func (s *MinioStore) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, nil)
	if err != nil {
		return "", s.wrapError("presign", err)
	}
	return u.String(), nil
}

// objectKey namespaces objects by course and randomizes the basename so
// concurrent uploads of the same filename never collide remotely.
func (s *MinioStore) objectKey(opts PutOptions) string {
	ext := strings.ToLower(filepath.Ext(opts.Filename))
	return fmt.Sprintf("%s/%s%s", opts.CourseID, uuid.New().String(), ext)
}

// wrapError classifies a minio failure as transient (retryable) or permanent
func (s *MinioStore) wrapError(op string, err error) error {
	resp := minio.ToErrorResponse(err)
	// An empty code means the request never got a response (network failure)
	transient := resp.Code == "" || resp.StatusCode >= 500
	return &domain.StorageError{
		Op:        op,
		Transient: transient,
		Err:       err,
	}
}
