package error_notificator

import "context"

// Service передаёт сбои операций шлюза в Notificator.
type Service struct {
	sink Notificator
}

func NewService(sink Notificator) *Service {
	return &Service{sink: sink}
}

// Notify отправляет отчёт о сбое operation; без приёмника ничего не делает.
func (s *Service) Notify(ctx context.Context, operation string, err error, details string) error {
	if s.sink == nil || err == nil {
		return nil
	}
	return s.sink.Notify(ctx, operation, err, details)
}
