package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// mediaPrefix каталог объектов медиа автоматизаций в бакете
const mediaPrefix = "automations/"

// MinioConfig параметры подключения к MinIO
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MediaStore хранит медиафайлы каталога в MinIO
type MediaStore struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

// NewMediaStore создает клиент MinIO и бакет, если его нет
func NewMediaStore(ctx context.Context, cfg MinioConfig, logger *zap.Logger) (*MediaStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("storage: failed to create bucket %q: %w", cfg.Bucket, err)
		}
		logger.Info("bucket created", zap.String("bucket", cfg.Bucket))
	}

	return &MediaStore{client: client, bucket: cfg.Bucket, logger: logger}, nil
}

// Upload загружает файл и возвращает ключ объекта
func (s *MediaStore) Upload(ctx context.Context, data []byte, originalFilename string) (string, error) {
	key := objectKey(uuid.New(), originalFilename)

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType(originalFilename),
	})
	if err != nil {
		return "", fmt.Errorf("storage: failed to upload %q: %w", originalFilename, err)
	}

	s.logger.Info("media uploaded", zap.String("key", key), zap.Int("size", len(data)))
	return key, nil
}

// Remove удаляет объект из бакета
func (s *MediaStore) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("storage: failed to remove %q: %w", key, err)
	}
	return nil
}

func objectKey(id uuid.UUID, originalFilename string) string {
	return mediaPrefix + id.String() + strings.ToLower(filepath.Ext(originalFilename))
}

func contentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".mp4":
		return "video/mp4"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
