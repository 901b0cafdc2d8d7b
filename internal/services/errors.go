package services

import (
	"errors"
	"net/http"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Kind classifies a failure for the transport layer.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindInvalidCredentials
	KindDuplicateCredential
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindStore
)

// Error is the error type returned by every service operation.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Status maps the error kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindInvalidCredentials, KindDuplicateCredential:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func notFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// storeError surfaces the driver message verbatim.
func storeError(err error) *Error {
	return &Error{Kind: KindStore, Message: err.Error(), Err: err}
}

var errInvalidCredentials = &Error{Kind: KindInvalidCredentials, Message: "Invalid credentials"}

var errDuplicateCredential = &Error{Kind: KindDuplicateCredential, Message: "Username or email already exists"}

// IsKind reports whether err is a service Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var serr *Error
	return errors.As(err, &serr) && serr.Kind == kind
}

// isUniqueViolation recognises unique-constraint failures from both drivers.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return true
		}
		// primary result code only, when extended codes are off
		return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "UNIQUE")
	}
	return false
}

// isForeignKeyViolation recognises rows referencing a missing parent, here a
// user deleted while still holding a token.
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
			return true
		}
		return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "FOREIGN KEY")
	}
	return false
}

// storeWriteError maps an insert failure on an owned table.
func storeWriteError(err error) *Error {
	if isForeignKeyViolation(err) {
		return notFound("User not found")
	}
	return storeError(err)
}
