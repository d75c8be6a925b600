package domain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Vovarama1992/spaces_gateway/internal/error_notificator"
	"github.com/Vovarama1992/spaces_gateway/internal/ports"
)

const defaultContentType = "application/octet-stream"

type s3Service struct {
	client        ports.S3Client
	errService    *error_notificator.Service
	presignExpiry time.Duration
}

func NewS3Service(client ports.S3Client, errService *error_notificator.Service, presignExpiry time.Duration) ports.S3Service {
	return &s3Service{
		client:        client,
		errService:    errService,
		presignExpiry: presignExpiry,
	}
}

func (s *s3Service) GeneratePresignedURL(ctx context.Context, req ports.PresignRequest) (*ports.PresignedURLResult, error) {
	if req.BucketName == "" || req.ObjectKey == "" {
		return nil, &ValidationError{Field: "bucket_name, key", Reason: "required"}
	}

	url, err := s.client.PresignPut(ctx, req.BucketName, req.ObjectKey, s.presignExpiry)
	if err != nil {
		s.notify(ctx, "presign", err, fmt.Sprintf("bucket=%s key=%s", req.BucketName, req.ObjectKey))
		return nil, err
	}

	return &ports.PresignedURLResult{URL: url, ExpiresIn: s.presignExpiry}, nil
}

func (s *s3Service) UploadObject(ctx context.Context, req ports.UploadRequest) (*ports.UploadResult, error) {
	if req.FileBytes == nil {
		return nil, ErrNoFile
	}
	if req.Filename == "" {
		return nil, &ValidationError{Field: "filename", Reason: "required"}
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = sniffContentType(req.FileBytes)
	}

	err := s.client.PutObject(ctx, req.Filename, bytes.NewReader(req.FileBytes), int64(len(req.FileBytes)), contentType)
	if err != nil {
		s.notify(ctx, "upload", err, "key="+req.Filename)
		return nil, err
	}

	return &ports.UploadResult{FileURL: s.client.PublicURL(req.Filename)}, nil
}

func (s *s3Service) DeleteObject(ctx context.Context, req ports.DeleteRequest) error {
	if req.Filename == "" {
		return &ValidationError{Field: "filename", Reason: "required"}
	}

	if err := s.client.RemoveObject(ctx, req.Filename); err != nil {
		s.notify(ctx, "delete", err, "key="+req.Filename)
		// удаление знает только один вид ошибки
		if ports.KindOf(err) != ports.Unexpected {
			err = ports.NewStorageError(ports.Unexpected, err)
		}
		return err
	}
	return nil
}

// notify сообщает только о непредвиденных ошибках; отсутствие ключей — это конфигурация.
func (s *s3Service) notify(ctx context.Context, op string, err error, details string) {
	if s.errService == nil || ports.KindOf(err) != ports.Unexpected {
		return
	}
	// удаление заворачивает ошибку ключей в Unexpected
	if errors.Is(err, ports.ErrNoCredentials) || errors.Is(err, ports.ErrPartialCredentials) {
		return
	}
	_ = s.errService.Notify(ctx, op, err, details)
}

func sniffContentType(b []byte) string {
	if len(b) == 0 {
		return defaultContentType
	}
	return http.DetectContentType(b)
}
