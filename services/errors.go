package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Error codes surfaced by the booking core. Routes map these onto
// HTTP statuses; see the handlers in routes/.

type ErrCode string

const (
	ErrNotFound     ErrCode = "NOT_FOUND"
	ErrInvalidRange ErrCode = "INVALID_RANGE"
	ErrConflict     ErrCode = "CONFLICT"
	ErrForbidden    ErrCode = "FORBIDDEN"
	ErrInvalidState ErrCode = "INVALID_STATE"
)

type codedError struct {
	code   ErrCode
	detail string
}

func (e codedError) Error() string {
	if e.detail == "" {
		return string(e.code)
	}
	return fmt.Sprintf("%s: %s", e.code, e.detail)
}
func (e codedError) Code() ErrCode { return e.code }

func makeErr(c ErrCode, detail string) error { return codedError{code: c, detail: detail} }

// Code extracts the error code, or "" for uncoded errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Detail returns the human-readable part of a coded error.
func Detail(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// ConflictError carries the specific days that blocked a request so
// callers can show "sold out on June 2" instead of a bare 409.
type ConflictError struct {
	Days []time.Time
}

func (e *ConflictError) Error() string {
	if len(e.Days) == 0 {
		return "requested dates are not available"
	}
	parts := make([]string, 0, len(e.Days))
	for _, d := range e.Days {
		parts = append(parts, d.Format("2006-01-02"))
	}
	return "requested dates are not available: " + strings.Join(parts, ", ")
}

func (e *ConflictError) Code() ErrCode { return ErrConflict }

// ConflictDays extracts the blocked days from a conflict error, if any.
func ConflictDays(err error) []time.Time {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce.Days
	}
	return nil
}
