package error_notificator

import "context"

// Notificator — приёмник отчётов о сбоях хранилища.
// operation: presign, upload или delete; details — ключ и бакет запроса.
type Notificator interface {
	Notify(ctx context.Context, operation string, err error, details string) error
}
