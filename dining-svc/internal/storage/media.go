package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSMediaStore uploads menu images to a public Cloud Storage bucket.
type GCSMediaStore struct {
	client     *gcs.Client
	BucketName string
	BaseURL    string
}

func NewGCSMediaStore(ctx context.Context, bucket, credentialsFile string) (*GCSMediaStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		if _, err := os.Stat(credentialsFile); err != nil {
			return nil, fmt.Errorf("service account key not found at %s: %w", credentialsFile, err)
		}
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create GCS storage client: %w", err)
	}
	return &GCSMediaStore{
		client:     client,
		BucketName: bucket,
		BaseURL:    "https://storage.googleapis.com/" + bucket,
	}, nil
}

func (s *GCSMediaStore) Upload(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	writer := s.client.Bucket(s.BucketName).Object(name).NewWriter(ctx)
	if contentType != "" {
		writer.ContentType = contentType
	}
	writer.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(writer, body); err != nil {
		_ = writer.Close()
		return "", fmt.Errorf("copy image to gs://%s/%s: %w", s.BucketName, name, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close GCS writer for %s: %w", name, err)
	}
	return s.BaseURL + "/" + name, nil
}

func (s *GCSMediaStore) Close() error {
	return s.client.Close()
}

// LocalMediaStore writes uploads under Dir and serves them from URLPrefix.
// It is the development default.
type LocalMediaStore struct {
	Dir       string
	URLPrefix string
}

func NewLocalMediaStore(dir, urlPrefix string) *LocalMediaStore {
	return &LocalMediaStore{Dir: dir, URLPrefix: strings.TrimRight(urlPrefix, "/")}
}

func (s *LocalMediaStore) Upload(_ context.Context, name, _ string, body io.Reader) (string, error) {
	clean := filepath.Clean("/" + name)[1:]
	target := filepath.Join(s.Dir, clean)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(target)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, body); err != nil {
		return "", err
	}
	return s.URLPrefix + "/" + filepath.ToSlash(clean), nil
}
