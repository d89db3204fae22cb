// Package apperr is the error taxonomy of the data-access core. Callers
// branch on Kind, never on error text; Postgres failures are classified
// by SQLSTATE.
package apperr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Kind string

const (
	KindValidation       Kind = "validation"
	KindNotFound         Kind = "not_found"
	KindPermissionDenied Kind = "permission_denied"
	KindConflict         Kind = "conflict"
	// KindAborted marks a concurrent-modification abort; the cascade
	// engine retries it once before surfacing a conflict.
	KindAborted  Kind = "transaction_aborted"
	KindInternal Kind = "internal"
)

type Error struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Kind)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Kind)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Kind)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind Kind, op, message string) error {
	return &Error{Kind: kind, Op: strings.TrimSpace(op), Message: strings.TrimSpace(message)}
}

// Wrap annotates an existing error with a kind and message. Nil in,
// nil out; an empty message falls back to the cause's text.
func Wrap(kind Kind, op, message string, err error) error {
	if err == nil {
		return nil
	}
	message = strings.TrimSpace(message)
	if message == "" {
		message = err.Error()
	}
	return &Error{Kind: kind, Op: strings.TrimSpace(op), Message: message, Cause: err}
}

func Validation(op, message string) error       { return New(KindValidation, op, message) }
func NotFound(op, message string) error         { return New(KindNotFound, op, message) }
func PermissionDenied(op, message string) error { return New(KindPermissionDenied, op, message) }
func Conflict(op, message string) error         { return New(KindConflict, op, message) }
func Aborted(op, message string) error          { return New(KindAborted, op, message) }

// KindOf extracts the kind, defaulting to KindInternal for untyped errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Kind == kind
}

// MapDB classifies storage failures into the taxonomy. Errors already
// carrying a kind pass through untouched.
func MapDB(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return Wrap(KindNotFound, op, "", err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Wrap(KindConflict, op, "", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Wrap(KindAborted, op, "", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return Wrap(KindConflict, op, "", err) // unique_violation
		case "23503", "23502", "23514":
			return Wrap(KindValidation, op, "", err) // fk / not-null / check
		case "40001", "40P01", "55P03":
			return Wrap(KindAborted, op, "", err) // serialization/deadlock/lock_not_available
		}
	}

	return Wrap(KindInternal, op, "", err)
}
