package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestKindOf(t *testing.T) {
	if got := KindOf(Validation("op", "bad field")); got != KindValidation {
		t.Fatalf("KindOf validation: got %q", got)
	}
	if got := KindOf(errors.New("plain")); got != KindInternal {
		t.Fatalf("KindOf untyped: got %q", got)
	}
	wrapped := fmt.Errorf("outer: %w", NotFound("op", "gone"))
	if !IsKind(wrapped, KindNotFound) {
		t.Fatalf("IsKind should see through wrapping")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(KindConflict, "op", "duplicate", nil) != nil {
		t.Fatalf("Wrap(nil) must be nil")
	}
	if MapDB("op", nil) != nil {
		t.Fatalf("MapDB(nil) must be nil")
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(KindInternal, "op", "hash password", cause)
	if !IsKind(err, KindInternal) {
		t.Fatalf("Wrap lost its kind")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("Wrap must keep the cause reachable via errors.Is")
	}
	var appErr *Error
	if !errors.As(err, &appErr) || appErr.Message != "hash password" {
		t.Fatalf("Wrap dropped the message: %+v", appErr)
	}

	fallback := Wrap(KindConflict, "op", "", cause)
	if errors.As(fallback, &appErr); appErr.Message != "boom" {
		t.Fatalf("empty message must fall back to the cause text, got %q", appErr.Message)
	}
}

func TestMapDB(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"record not found", gorm.ErrRecordNotFound, KindNotFound},
		{"duplicated key", gorm.ErrDuplicatedKey, KindConflict},
		{"canceled", context.Canceled, KindAborted},
		{"unique violation", &pgconn.PgError{Code: "23505"}, KindConflict},
		{"fk violation", &pgconn.PgError{Code: "23503"}, KindValidation},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, KindAborted},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, KindAborted},
		{"unknown", errors.New("boom"), KindInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := KindOf(MapDB("op", tc.err))
			if got != tc.want {
				t.Fatalf("MapDB(%v): got %q, want %q", tc.err, got, tc.want)
			}
		})
	}
}

func TestMapDBPassThrough(t *testing.T) {
	orig := Aborted("cascade", "membership changed")
	mapped := MapDB("op", orig)
	if mapped != orig {
		t.Fatalf("typed errors must pass through MapDB untouched")
	}
}
