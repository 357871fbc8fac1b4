package minio_adapter

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"real-estate-service/internal/core/domain"
	"real-estate-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config - политика хранилища изображений. Ограничения применяет сам
// адаптер, до любого сетевого вызова.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool

	MaxBytes          int64
	AllowedExtensions []string
}

// ImageStorage реализует ImageStoragePort поверх MinIO.
type ImageStorage struct {
	client *minio.Client
	bucket string

	maxBytes   int64
	allowedExt map[string]struct{}

	logger port.LoggerPort
}

func NewImageStorage(ctx context.Context, cfg Config, logger port.LoggerPort) (*ImageStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for %s: %w", cfg.Endpoint, err)
	}

	// Создаем бакет, если его еще нет.
	if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
		exists, existsErr := client.BucketExists(ctx, cfg.Bucket)
		if existsErr != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: %w", cfg.Bucket, err)
		}
	}

	s := &ImageStorage{
		client:     client,
		bucket:     cfg.Bucket,
		maxBytes:   cfg.MaxBytes,
		allowedExt: make(map[string]struct{}, len(cfg.AllowedExtensions)),
		logger:     logger.WithFields(port.Fields{"component": "ImageStorage", "bucket": cfg.Bucket}),
	}
	for _, ext := range cfg.AllowedExtensions {
		s.allowedExt[strings.ToLower(ext)] = struct{}{}
	}

	s.logger.Info("MinIO image storage initialized", port.Fields{"endpoint": cfg.Endpoint})
	return s, nil
}

// Upload проверяет политику, кладет объект под сгенерированный ключ
// вида <keyPrefix>/<uuid><ext> и возвращает этот ключ.
func (s *ImageStorage) Upload(ctx context.Context, content []byte, fileName, contentType, keyPrefix string) (string, error) {
	if err := s.validate(content, fileName); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	key := fmt.Sprintf("%s/%s%s", strings.Trim(keyPrefix, "/"), uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(content), int64(len(content)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		s.logger.Error("PutObject failed", err, port.Fields{"key": key})
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	s.logger.Info("Image uploaded", port.Fields{"key": key, "size_bytes": len(content)})
	return key, nil
}

// Delete - best-effort: отсутствие объекта не считается ошибкой
// (RemoveObject в MinIO и так молчит про несуществующий ключ).
func (s *ImageStorage) Delete(ctx context.Context, storedKey string) error {
	err := s.client.RemoveObject(ctx, s.bucket, storedKey, minio.RemoveObjectOptions{})
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" {
			return nil
		}
		s.logger.Error("RemoveObject failed", err, port.Fields{"key": storedKey})
		return fmt.Errorf("failed to delete object %s: %w", storedKey, err)
	}
	return nil
}

func (s *ImageStorage) validate(content []byte, fileName string) error {
	ext := strings.ToLower(filepath.Ext(fileName))
	if _, ok := s.allowedExt[ext]; !ok {
		return fmt.Errorf("%s: %w", ext, domain.ErrUnsupportedImage)
	}
	if s.maxBytes > 0 && int64(len(content)) > s.maxBytes {
		return fmt.Errorf("%d bytes over limit %d: %w", len(content), s.maxBytes, domain.ErrImageTooLarge)
	}
	return nil
}
