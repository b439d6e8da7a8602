package blob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/scottlepp/gen/internal/core/ports"
)

// Config holds MinIO connection settings.
type Config struct {
	Endpoint  string
	Port      int
	UseSSL    bool
	AccessKey string
	SecretKey string
	Bucket    string
	BaseURL   string
}

// FromEnv builds a Config from MINIO_* environment variables. A full URL in
// MINIO_ENDPOINT overrides port and SSL settings.
func FromEnv() (Config, error) {
	cfg := Config{
		Endpoint:  envOr("MINIO_ENDPOINT", "localhost"),
		Port:      9000,
		UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		AccessKey: envOr("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey: envOr("MINIO_SECRET_KEY", "minioadmin"),
		Bucket:    envOr("MINIO_BUCKET_NAME", "fitness-app"),
		BaseURL:   os.Getenv("MINIO_BASE_URL"),
	}
	if p := os.Getenv("MINIO_PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return Config{}, fmt.Errorf("invalid MINIO_PORT %q: %w", p, err)
		}
		cfg.Port = port
	}

	if u, err := url.Parse(cfg.Endpoint); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		cfg.Endpoint = u.Hostname()
		cfg.UseSSL = u.Scheme == "https"
		switch {
		case u.Port() != "":
			cfg.Port, _ = strconv.Atoi(u.Port())
		case cfg.UseSSL:
			cfg.Port = 443
		default:
			cfg.Port = 80
		}
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MinIOStore implements ports.BlobStore against a MinIO (or S3-compatible)
// endpoint.
type MinIOStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

var _ ports.BlobStore = (*MinIOStore)(nil)

func NewMinIOStore(ctx context.Context, cfg Config) (*MinIOStore, error) {
	endpoint := fmt.Sprintf("%s:%d", cfg.Endpoint, cfg.Port)
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s", scheme, endpoint)
	}

	s := &MinIOStore{client: client, bucket: cfg.Bucket, baseURL: baseURL}
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MinIOStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %q: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %q: %w", s.bucket, err)
	}

	// Public read so avatar/post image URLs resolve without signing. Some
	// MinIO deployments forbid policy changes; that is not fatal.
	policy := map[string]any{
		"Version": "2012-10-17",
		"Statement": []map[string]any{{
			"Effect":    "Allow",
			"Principal": map[string]any{"AWS": []string{"*"}},
			"Action":    []string{"s3:GetObject"},
			"Resource":  []string{fmt.Sprintf("arn:aws:s3:::%s/*", s.bucket)},
		}},
	}
	raw, err := json.Marshal(policy)
	if err != nil {
		return fmt.Errorf("marshal bucket policy: %w", err)
	}
	_ = s.client.SetBucketPolicy(ctx, s.bucket, string(raw))
	return nil
}

func (s *MinIOStore) Upload(ctx context.Context, name string, data []byte, opts ports.UploadOptions) (string, error) {
	putOpts := minio.PutObjectOptions{ContentType: opts.ContentType}
	_, err := s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)), putOpts)
	if err != nil {
		return "", fmt.Errorf("upload %q: %w", name, err)
	}
	return fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, name), nil
}

func (s *MinIOStore) Delete(ctx context.Context, name string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}
	return nil
}

func (s *MinIOStore) SignedURL(ctx context.Context, name string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, name, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("sign %q: %w", name, err)
	}
	return u.String(), nil
}
