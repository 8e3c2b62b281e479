package uploads

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"mulnori/internal/shared/apperror"
	"mulnori/internal/shared/config"
)

type Service interface {
	UploadImage(ctx context.Context, file *multipart.FileHeader) (*UploadResponse, error)
}

type service struct {
	client *minio.Client
	cfg    config.StorageConfig
}

// NewService accepts a nil client when object storage is not configured;
// uploads then fail with a storage error instead of a panic.
func NewService(client *minio.Client, cfg config.StorageConfig) Service {
	return &service{client: client, cfg: cfg}
}

func (s *service) UploadImage(ctx context.Context, file *multipart.FileHeader) (*UploadResponse, error) {
	if s.client == nil {
		return nil, apperror.Storage("object storage is not configured", nil)
	}
	if file.Size > s.cfg.MaxUploadSize {
		return nil, apperror.Validationf("file exceeds the %d byte upload limit", s.cfg.MaxUploadSize)
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperror.Validation("only image uploads are allowed")
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperror.Storage("could not read uploaded file", err)
	}
	defer src.Close()

	// Object names are date-partitioned so bucket listings stay browsable.
	objectName := fmt.Sprintf("%s/%s%s",
		time.Now().UTC().Format("2006/01/02"),
		uuid.NewString(),
		strings.ToLower(filepath.Ext(file.Filename)),
	)

	_, err = s.client.PutObject(ctx, s.cfg.Bucket, objectName, src, file.Size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return nil, apperror.Storage("could not store uploaded file", err)
	}

	return &UploadResponse{
		ObjectName: objectName,
		URL:        s.objectURL(objectName),
		Size:       file.Size,
	}, nil
}

func (s *service) objectURL(objectName string) string {
	if s.cfg.PublicBaseURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.cfg.PublicBaseURL, "/"), objectName)
	}
	scheme := "http"
	if s.cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.Endpoint, s.cfg.Bucket, objectName)
}
