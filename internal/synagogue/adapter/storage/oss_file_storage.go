// Package storage implements the blob storage port on Alibaba Cloud OSS.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/caarlos0/env/v6"
	"github.com/google/uuid"

	"synagogue-manager/internal/shared/errors"
	"synagogue-manager/internal/shared/logger"
	"synagogue-manager/internal/synagogue/domain/repository"
)

// OSSConfig holds bucket credentials, loaded from the environment.
type OSSConfig struct {
	Endpoint   string `env:"OSS_ENDPOINT"`
	AccessKey  string `env:"OSS_ACCESS_KEY"`
	SecretKey  string `env:"OSS_SECRET_KEY"`
	Bucket     string `env:"OSS_BUCKET"`
	PublicBase string `env:"OSS_PUBLIC_BASE"` // optional CDN/custom domain
}

// LoadOSSConfig reads the OSS configuration from environment variables.
func LoadOSSConfig() (*OSSConfig, error) {
	cfg := &OSSConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapError(err, "failed to load OSS config")
	}
	return cfg, nil
}

// Enabled reports whether the configuration is complete enough to build a
// client. File uploads are optional; a deployment without a bucket simply
// runs without them.
func (c *OSSConfig) Enabled() bool {
	return c.Endpoint != "" && c.AccessKey != "" && c.SecretKey != "" && c.Bucket != ""
}

var _ repository.FileStorage = (*OSSFileStorage)(nil)

// OSSFileStorage stores uploaded documents in one OSS bucket.
type OSSFileStorage struct {
	bucket     *oss.Bucket
	endpoint   string
	bucketName string
	publicBase string
	log        logger.Logger
}

// NewOSSFileStorage connects to the configured bucket.
func NewOSSFileStorage(cfg *OSSConfig, log logger.Logger) (*OSSFileStorage, error) {
	if !cfg.Enabled() {
		return nil, errors.NewInfrastructureError("incomplete OSS configuration")
	}
	client, err := oss.New(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey)
	if err != nil {
		return nil, errors.WrapError(err, "failed to create OSS client")
	}
	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, errors.WrapError(err, "failed to open OSS bucket")
	}
	return &OSSFileStorage{
		bucket:     bucket,
		endpoint:   cfg.Endpoint,
		bucketName: cfg.Bucket,
		publicBase: strings.TrimRight(cfg.PublicBase, "/"),
		log:        log.WithComponent("oss_storage"),
	}, nil
}

// Upload stores the object and returns its public URL.
func (s *OSSFileStorage) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	opts := []oss.Option{oss.WithContext(ctx)}
	if contentType != "" {
		opts = append(opts, oss.ContentType(contentType))
	}
	if err := s.bucket.PutObject(key, r, opts...); err != nil {
		return "", errors.WrapError(err, "failed to upload object").WithDetail("key", key)
	}
	s.log.WithContext(ctx).Infof("Uploaded object %s", key)
	return s.URL(key), nil
}

// Delete removes the object. OSS treats deleting an absent key as
// success, matching the port contract.
func (s *OSSFileStorage) Delete(ctx context.Context, key string) error {
	if err := s.bucket.DeleteObject(key, oss.WithContext(ctx)); err != nil {
		return errors.WrapError(err, "failed to delete object").WithDetail("key", key)
	}
	s.log.WithContext(ctx).Infof("Deleted object %s", key)
	return nil
}

// URL returns the public URL for a key.
func (s *OSSFileStorage) URL(key string) string {
	if key == "" {
		return ""
	}
	if s.publicBase != "" {
		return s.publicBase + "/" + key
	}
	endpoint := strings.TrimPrefix(strings.TrimPrefix(s.endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.bucketName, endpoint, key)
}

// ReportObjectKey builds the object key for an uploaded financial report
// document, namespaced per synagogue with a random component so repeated
// uploads of the same filename never collide.
func ReportObjectKey(synagogueID, filename string) string {
	base := slugifyFilename(filename)
	return path.Join("synagogues", synagogueID, "financialReports", uuid.NewString()+"-"+base)
}

func slugifyFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '-'
		}
	}, base)
	base = strings.Trim(base, "-")
	if base == "" {
		base = "file"
	}
	return base
}
