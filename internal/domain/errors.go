package domain

import (
	"errors"
	"fmt"
)

// ErrNoFile — в запросе нет файла вовсе (пустой файл допустим).
var ErrNoFile = errors.New("no file provided")

// ValidationError — плохие входные данные, к хранилищу не обращались.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.Is(err, ErrNoFile) || errors.As(err, &ve)
}
