package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// Kind classifies a data access failure
type Kind string

const (
	KindUnknown          Kind = "unknown"
	KindNotFound         Kind = "not_found"
	KindPermissionDenied Kind = "permission_denied"
	KindTransient        Kind = "transient"
	KindValidation       Kind = "validation"
)

// CodeUndefinedTable is the SQLSTATE for a missing table or view
const CodeUndefinedTable = "42P01"

// Error is the typed failure returned by every Client implementation
type Error struct {
	Kind       Kind
	Code       string
	Message    string
	Collection string
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Collection != "" {
		b.WriteString(" on ")
		b.WriteString(e.Collection)
	}
	if e.Code != "" {
		b.WriteString(" [")
		b.WriteString(e.Code)
		b.WriteString("]")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds an Error of the given kind
func NewError(kind Kind, collection, code, message string) *Error {
	return &Error{Kind: kind, Collection: collection, Code: code, Message: message}
}

// KindOf returns the Kind of err, KindUnknown when err is not an *Error
func KindOf(err error) Kind {
	var dsErr *Error
	if errors.As(err, &dsErr) {
		return dsErr.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a NotFound failure
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// Classify converts a driver error into an *Error for the collection.
// Errors that are already classified are returned unchanged.
func Classify(collection string, err error) *Error {
	if err == nil {
		return nil
	}

	var dsErr *Error
	if errors.As(err, &dsErr) {
		return dsErr
	}

	e := &Error{Kind: KindUnknown, Collection: collection, Message: err.Error(), Err: err}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		e.Kind = KindTransient
		e.Code = "timeout"
		return e
	}

	if errors.Is(err, sql.ErrNoRows) {
		e.Kind = KindNotFound
		return e
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		e.Code = pgErr.Code
		e.Message = pgErr.Message
		e.Kind = kindForSQLState(pgErr.Code)
		return e
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		e.Code = fmt.Sprintf("sqlite:%d", int(liteErr.Code))
		e.Kind = kindForSQLite(liteErr)
		if e.Kind == KindNotFound {
			e.Code = CodeUndefinedTable
		}
		return e
	}

	return e
}

// kindForSQLState maps PostgreSQL SQLSTATE codes to kinds
func kindForSQLState(code string) Kind {
	switch {
	case code == CodeUndefinedTable, code == "42883":
		return KindNotFound
	case code == "42501":
		return KindPermissionDenied
	case strings.HasPrefix(code, "23"), strings.HasPrefix(code, "22"):
		return KindValidation
	case strings.HasPrefix(code, "08"), code == "40001", code == "40P01",
		strings.HasPrefix(code, "53"), strings.HasPrefix(code, "57P0"):
		return KindTransient
	}
	return KindUnknown
}

// kindForSQLite maps sqlite result codes and messages to kinds
func kindForSQLite(err sqlite3.Error) Kind {
	switch err.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return KindTransient
	case sqlite3.ErrConstraint, sqlite3.ErrMismatch, sqlite3.ErrTooBig:
		return KindValidation
	case sqlite3.ErrReadonly, sqlite3.ErrPerm, sqlite3.ErrAuth:
		return KindPermissionDenied
	}

	msg := err.Error()
	if strings.Contains(msg, "no such table") || strings.Contains(msg, "no such view") {
		return KindNotFound
	}
	return KindUnknown
}
