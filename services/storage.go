package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"minicakes_app_go/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// ErrAssetNotFound is returned when a downloadable asset does not exist
var ErrAssetNotFound = errors.New("asset not found")

// StorageProvider serves downloadable assets such as the e-book
type StorageProvider interface {
	Get(ctx context.Context, key string) (io.ReadCloser, string, error) // Returns reader, content-type, error
	GetSignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)
	GetPublicURL(key string) string
	IsConfigured() bool
}

// Storage is the global storage instance
var Storage StorageProvider

// InitializeStorage sets up the storage provider based on configuration
func InitializeStorage(cfg *config.Config) {
	if cfg.R2AccountID == "" || cfg.R2AccessKeyID == "" || cfg.R2SecretAccessKey == "" || cfg.R2BucketName == "" {
		Storage = NewLocalStorage(cfg.AssetsDir, cfg.AppURL)
		zap.L().Info("Asset storage ready (local filesystem)", zap.String("path", cfg.AssetsDir))
		return
	}

	r2, err := NewR2Storage(cfg)
	if err != nil {
		zap.L().Warn("Failed to initialize R2 storage, falling back to local storage", zap.Error(err))
		Storage = NewLocalStorage(cfg.AssetsDir, cfg.AppURL)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := r2.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(cfg.R2BucketName)}); err != nil {
		zap.L().Warn("R2 bucket connection test failed, falling back to local storage", zap.Error(err))
		Storage = NewLocalStorage(cfg.AssetsDir, cfg.AppURL)
		return
	}

	Storage = r2
	zap.L().Info("Asset storage ready (Cloudflare R2)", zap.String("bucket", cfg.R2BucketName))
}

// R2Storage implements StorageProvider for Cloudflare R2
type R2Storage struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	publicURL string
}

// NewR2Storage creates an R2 client. cfg.R2Endpoint overrides the account endpoint.
func NewR2Storage(cfg *config.Config) (*R2Storage, error) {
	endpoint := cfg.R2Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID)
	}

	creds := credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, "")
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(creds),
		awsconfig.WithRegion("auto"), // R2 uses "auto" region
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &R2Storage{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.R2BucketName,
		publicURL: cfg.R2PublicURL,
	}, nil
}

func (r *R2Storage) IsConfigured() bool {
	return r.client != nil && r.bucket != ""
}

// Get streams an object from R2
func (r *R2Storage) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	result, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get object from R2: %w", err)
	}

	contentType := "application/octet-stream"
	if result.ContentType != nil {
		contentType = *result.ContentType
	}
	return result.Body, contentType, nil
}

// GetSignedURL generates a presigned URL for temporary access
func (r *R2Storage) GetSignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	presigned, err := r.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiration))
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}
	return presigned.URL, nil
}

// GetPublicURL returns the public URL of an object, or "" when the bucket is private
func (r *R2Storage) GetPublicURL(key string) string {
	if r.publicURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s", strings.TrimSuffix(r.publicURL, "/"), key)
}

// LocalStorage serves assets from a directory; the app exposes them under /downloads
type LocalStorage struct {
	baseDir string
	baseURL string
}

func NewLocalStorage(baseDir, baseURL string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (l *LocalStorage) IsConfigured() bool {
	return true
}

// Get opens an asset below the base directory
func (l *LocalStorage) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	clean := filepath.Clean("/" + key)
	file, err := os.Open(filepath.Join(l.baseDir, clean))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: %s", ErrAssetNotFound, key)
		}
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}

	contentType := "application/octet-stream"
	switch strings.ToLower(filepath.Ext(key)) {
	case ".pdf":
		contentType = "application/pdf"
	case ".epub":
		contentType = "application/epub+zip"
	}
	return file, contentType, nil
}

// GetSignedURL for local storage is the public download URL
func (l *LocalStorage) GetSignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	return l.GetPublicURL(key), nil
}

func (l *LocalStorage) GetPublicURL(key string) string {
	return l.baseURL + "/downloads/" + strings.TrimPrefix(key, "/")
}

// EbookDownloadURL is the link mailed to new subscribers
func EbookDownloadURL(ctx context.Context, store StorageProvider, cfg *config.Config) string {
	fallback := strings.TrimSuffix(cfg.AppURL, "/") + "/downloads/" + cfg.EbookKey
	if store == nil || !store.IsConfigured() {
		return fallback
	}
	if url := store.GetPublicURL(cfg.EbookKey); url != "" {
		return url
	}

	ttl := cfg.EbookLinkTTL
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	url, err := store.GetSignedURL(ctx, cfg.EbookKey, ttl)
	if err != nil {
		zap.L().Warn("Failed to sign e-book URL, using app download link", zap.Error(err))
		return fallback
	}
	return url
}
