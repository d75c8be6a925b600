package error_notificator

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/go-utils/logger"
)

// Infra пишет уведомления в общий лог сервиса.
type Infra struct {
	log     *logger.ZapLogger
	service string
}

func NewInfra(log *logger.ZapLogger, service string) *Infra {
	return &Infra{log: log, service: service}
}

func (i *Infra) Notify(ctx context.Context, operation string, err error, details string) error {
	if i.log == nil {
		return fmt.Errorf("error_notificator: logger is not set")
	}

	i.log.Log(logger.LogEntry{
		Level:   "error",
		Message: fmt.Sprintf("%s failed: %s", operation, details),
		Error:   err,
		Service: i.service,
	})
	return nil
}
