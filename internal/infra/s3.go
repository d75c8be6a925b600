package infra

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Vovarama1992/spaces_gateway/internal/config"
	"github.com/Vovarama1992/spaces_gateway/internal/ports"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const aclPublicRead = "public-read"

type s3Client struct {
	client *minio.Client
	bucket string
	origin string
	// credErr — результат проверки ключей при старте, nil если оба заданы
	credErr error
}

// NewS3Client собирает клиента по конфигу. Бакет при старте не проверяется:
// ошибка хранилища возвращается на запрос.
func NewS3Client(cfg *config.Config) (ports.S3Client, error) {
	u, err := url.Parse(cfg.Origin)
	if err != nil {
		return nil, fmt.Errorf("parse origin: %w", err)
	}

	client, err := minio.New(u.Host, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       u.Scheme == "https",
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init S3 client: %w", err)
	}

	return &s3Client{
		client:  client,
		bucket:  cfg.Bucket,
		origin:  strings.TrimRight(cfg.Origin, "/"),
		credErr: classifyCredentials(cfg.AccessKey, cfg.SecretKey),
	}, nil
}

func classifyCredentials(accessKey, secretKey string) error {
	switch {
	case accessKey == "" && secretKey == "":
		return ports.NewStorageError(ports.CredentialsMissing, ports.ErrNoCredentials)
	case accessKey == "" || secretKey == "":
		return ports.NewStorageError(ports.CredentialsIncomplete, ports.ErrPartialCredentials)
	}
	return nil
}

func (s *s3Client) PresignPut(ctx context.Context, bucket, key string, expires time.Duration) (string, error) {
	if s.credErr != nil {
		return "", s.credErr
	}

	// ACL входит в подпись: загрузивший обязан прислать тот же заголовок
	headers := http.Header{}
	headers.Set("x-amz-acl", aclPublicRead)

	u, err := s.client.PresignHeader(ctx, http.MethodPut, bucket, key, expires, nil, headers)
	if err != nil {
		// текст SDK отдаётся клиенту как есть
		return "", ports.NewStorageError(ports.Unexpected, err)
	}
	return u.String(), nil
}

func (s *s3Client) PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if s.credErr != nil {
		return s.credErr
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{"x-amz-acl": aclPublicRead},
	})
	if err != nil {
		return ports.AsUnexpected(err, "upload failed")
	}
	return nil
}

func (s *s3Client) RemoveObject(ctx context.Context, key string) error {
	// у удаления нет отдельных видов ошибок учётных данных
	if s.credErr != nil {
		return ports.NewStorageError(ports.Unexpected, s.credErr)
	}

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil
		}
		return ports.AsUnexpected(err, "delete failed")
	}
	return nil
}

func (s *s3Client) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.origin, s.bucket, escapeKey(key))
}

// escapeKey экранирует сегменты ключа, сохраняя "/".
func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
