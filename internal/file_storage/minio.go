package filestorage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sopheak-dev/agencyflow/internal/config"
	"github.com/sopheak-dev/agencyflow/internal/util"
	"go.uber.org/zap"
)

func NewMinioClient(cfg *config.MinioConfig) (*minio.Client, error) {
	return minio.New(cfg.ENDPOINT, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.ACCESS_KEY, cfg.SECRET_KEY, ""),
		Secure: cfg.USE_SSL,
		Region: "us-east-1",
	})
}

// Object is the content and metadata of a single upload.
type Object struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Storage stores project files in a single bucket, one directory per project.
type Storage struct {
	s3     *minio.Client
	bucket string
	logger *zap.SugaredLogger
}

func NewStorage(s3 *minio.Client, bucket string, logger *zap.SugaredLogger) *Storage {
	return &Storage{s3: s3, bucket: bucket, logger: logger}
}

func GetProjectDirectoryPath(projectId uint) string {
	return fmt.Sprintf("projects/%d", projectId)
}

func (s *Storage) createBucketIfNotExists(ctx context.Context) error {
	exists, err := s.s3.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}

	if !exists {
		err = s.s3.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return err
		}
	}

	return nil
}

// Upload stores the object under directory with a unique name prefix and
// returns the object key.
func (s *Storage) Upload(ctx context.Context, directory string, obj Object) (string, error) {
	if err := s.createBucketIfNotExists(ctx); err != nil {
		return "", fmt.Errorf("failed to create bucket: %w", err)
	}

	key := filepath.Join(directory, util.AddUniquePrefixToFileName(filepath.Base(obj.FileName)))

	info, err := s.s3.PutObject(
		ctx,
		s.bucket,
		key,
		obj.Reader,
		obj.Size,
		minio.PutObjectOptions{
			ContentType: obj.ContentType,
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return info.Key, nil
}

func (s *Storage) Remove(ctx context.Context, key string) error {
	return s.s3.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

// PresignedURL returns a temporary download link for an object key.
func (s *Storage) PresignedURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("object key cannot be empty")
	}

	// 60min expiration time
	presignedURL, err := s.s3.PresignedGetObject(ctx, s.bucket, key, time.Minute*60, nil)
	if err != nil {
		return "", err
	}

	return presignedURL.String(), nil
}
