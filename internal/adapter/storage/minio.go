// Package storage stores uploaded record files in MinIO/S3.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/sujay090/Dynamic-form-sub001/internal/config"
	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
)

type objectPutter interface {
	PutObject(ctx context.Context, bucket, name string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Store puts uploads into one bucket and returns their public references.
type Store struct {
	client     objectPutter
	bucket     string
	publicBase string
	log        *slog.Logger
	now        func() time.Time
	newID      func() uuid.UUID
}

// New connects to the configured endpoint and makes sure the bucket exists.
func New(ctx context.Context, cfg config.StorageConfig, log *slog.Logger) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
		log.Info("storage bucket created", slog.String("bucket", cfg.Bucket))
	}

	return newStore(client, cfg.Bucket, cfg.PublicBaseURL, log), nil
}

func newStore(client objectPutter, bucket, publicBase string, log *slog.Logger) *Store {
	return &Store{
		client:     client,
		bucket:     bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
		log:        log.With("adapter", "storage"),
		now:        time.Now,
		newID:      uuid.New,
	}
}

// Put uploads the file and returns its reference: the public URL when a
// base URL is configured, otherwise "/<bucket>/<object>".
func (s *Store) Put(ctx context.Context, formType domain.FormType, field string, upload *domain.Upload) (string, error) {
	if upload == nil || upload.Reader == nil {
		return "", domain.NewValidationError(field, "upload has no content")
	}

	name := ObjectName(formType, field, upload.Filename, s.now(), s.newID())
	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	size := upload.Size
	if size <= 0 {
		size = -1
	}

	info, err := s.client.PutObject(ctx, s.bucket, name, upload.Reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "upload failed",
			slog.String("object", name),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("upload %s: %w: %w", field, domain.ErrPersistenceUnavailable, err)
	}

	s.log.DebugContext(ctx, "file uploaded",
		slog.String("object", name),
		slog.Int64("size", info.Size),
	)
	if s.publicBase != "" {
		return s.publicBase + "/" + name, nil
	}
	return "/" + s.bucket + "/" + name, nil
}

// ObjectName builds "<formType>/<field>/<yyyy>/<mm>/<id>-<filename>" with the
// filename reduced to safe characters.
func ObjectName(formType domain.FormType, field, filename string, at time.Time, id uuid.UUID) string {
	base := sanitize(path.Base(strings.ReplaceAll(filename, "\\", "/")))
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("%s/%s/%s/%s-%s", formType, field, at.UTC().Format("2006/01"), id, base)
}

func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)), r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), ".")
}
