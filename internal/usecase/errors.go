package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	repo "github.com/Larissa2801/Projeto-UaiFood-Back/internal/repository"
)

// ErrorKind is the closed set of failures a usecase can report.
type ErrorKind string

const (
	KindValidationFailed  ErrorKind = "VALIDATION_FAILED"
	KindUnauthorized      ErrorKind = "UNAUTHORIZED"
	KindForbidden         ErrorKind = "FORBIDDEN"
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindReferenceNotFound ErrorKind = "REFERENCE_NOT_FOUND"
	KindConflict          ErrorKind = "CONFLICT"
	KindTransactionFailed ErrorKind = "TRANSACTION_FAILED"
)

type AppError struct {
	Kind    ErrorKind
	Message string
	//set for KindReferenceNotFound
	Entity string
	RefID  int64
	Err    error
}

func (e *AppError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Is matches the bare sentinels below by kind, so
// errors.Is(err, ErrForbidden) holds for every forbidden error.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok || t.Message != "" {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrValidationFailed  = &AppError{Kind: KindValidationFailed}
	ErrUnauthorized      = &AppError{Kind: KindUnauthorized}
	ErrForbidden         = &AppError{Kind: KindForbidden}
	ErrNotFound          = &AppError{Kind: KindNotFound}
	ErrReferenceNotFound = &AppError{Kind: KindReferenceNotFound}
	ErrConflict          = &AppError{Kind: KindConflict}
	ErrTransactionFailed = &AppError{Kind: KindTransactionFailed}
)

func NewAppError(kind ErrorKind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func Validation(format string, args ...any) error {
	return &AppError{Kind: KindValidationFailed, Message: fmt.Sprintf(format, args...)}
}

func Forbidden() error {
	return &AppError{Kind: KindForbidden, Message: "forbidden"}
}

func NotFound(entity string) error {
	return &AppError{Kind: KindNotFound, Message: entity + " not found", Entity: entity}
}

func ReferenceNotFound(entity string, id int64) error {
	msg := fmt.Sprintf("%s %d does not exist", entity, id)
	if id <= 0 {
		msg = "referenced " + entity + " does not exist"
	}
	return &AppError{Kind: KindReferenceNotFound, Message: msg, Entity: entity, RefID: id}
}

func AsAppError(err error) (*AppError, bool) {
	var ae *AppError
	ok := errors.As(err, &ae)
	return ae, ok
}

// KindOf returns "" for errors that did not come from a usecase.
func KindOf(err error) ErrorKind {
	if ae, ok := AsAppError(err); ok {
		return ae.Kind
	}
	return ""
}

// fromRepoError turns repository errors into usecase errors. entity names
// the row the caller was looking for when ErrNotFound comes back.
// Anything unexpected is logged and reported as a failed transaction.
func fromRepoError(ctx context.Context, op string, entity string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsAppError(err); ok {
		return err
	}
	if errors.Is(err, repo.ErrNotFound) {
		return NotFound(entity)
	}
	var ref *repo.ReferenceError
	if errors.As(err, &ref) {
		return ReferenceNotFound(ref.Entity, ref.ID)
	}
	if errors.Is(err, repo.ErrConflict) {
		return &AppError{Kind: KindConflict, Message: entity + " conflicts with existing data", Err: err}
	}
	slog.ErrorContext(ctx, "persistence failure", "op", op, "error", err)
	return &AppError{Kind: KindTransactionFailed, Message: op + " failed", Err: err}
}
