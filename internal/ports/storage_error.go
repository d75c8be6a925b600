package ports

import (
	"errors"
	"fmt"
)

type StorageErrorKind int

const (
	Unexpected StorageErrorKind = iota
	CredentialsMissing
	CredentialsIncomplete
)

func (k StorageErrorKind) String() string {
	switch k {
	case CredentialsMissing:
		return "credentials_missing"
	case CredentialsIncomplete:
		return "credentials_incomplete"
	default:
		return "unexpected"
	}
}

var (
	ErrNoCredentials      = errors.New("credentials not found")
	ErrPartialCredentials = errors.New("incomplete credentials")
)

// StorageError — единственный тип ошибки, который хранилище отдаёт наружу.
type StorageError struct {
	Kind StorageErrorKind
	Err  error
}

func NewStorageError(kind StorageErrorKind, err error) *StorageError {
	return &StorageError{Kind: kind, Err: err}
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

// KindOf достаёт вид ошибки; всё, что не *StorageError, считается Unexpected.
func KindOf(err error) StorageErrorKind {
	var se *StorageError
	if errors.As(err, &se) {
		return se.Kind
	}
	return Unexpected
}

// AsUnexpected заворачивает ошибку в Unexpected, если она ещё не типизирована.
func AsUnexpected(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return NewStorageError(Unexpected, fmt.Errorf(format+": %w", append(args, err)...))
}
