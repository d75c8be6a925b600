package ports

import (
	"context"
	"time"
)

type UploadRequest struct {
	// FileBytes == nil значит "файла нет"; пустой срез — законный пустой файл.
	FileBytes   []byte
	Filename    string
	ContentType string
}

type DeleteRequest struct {
	Filename string
}

type PresignRequest struct {
	BucketName string
	ObjectKey  string
}

type PresignedURLResult struct {
	URL       string
	ExpiresIn time.Duration
}

type UploadResult struct {
	FileURL string
}

type S3Service interface {
	GeneratePresignedURL(ctx context.Context, req PresignRequest) (*PresignedURLResult, error)
	UploadObject(ctx context.Context, req UploadRequest) (*UploadResult, error)
	DeleteObject(ctx context.Context, req DeleteRequest) error
}
