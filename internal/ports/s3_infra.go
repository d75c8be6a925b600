package ports

import (
	"context"
	"io"
	"time"
)

// S3Client — низкоуровневый клиент к S3-совместимому хранилищу.
// Ошибки возвращаются как *StorageError.
type S3Client interface {
	// PresignPut подписывает PUT на bucket/key с ACL public-read. Сеть не трогает.
	PresignPut(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
	// PutObject пишет объект в сконфигурированный бакет, объект публичный.
	PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// RemoveObject удаляет ключ из сконфигурированного бакета. Отсутствующий ключ — не ошибка.
	RemoveObject(ctx context.Context, key string) error
	// PublicURL строит адрес origin/bucket/key, у хранилища ничего не спрашивает.
	PublicURL(key string) string
}
