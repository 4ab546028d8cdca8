// Package errors is the project error type. Import it as perr.
// An *Error carries a stable code for clients, a message for people, and optionally
// the request field and the operation that produced it
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode is the machine facing error class. Values are part of the wire format
type ErrorCode uint16

const (
	ErrorCodeUnknown         ErrorCode = iota // unclassified
	ErrorCodePanic                            // recovered panic
	ErrorCodeUnavailable                      // a backing store is missing or down
	ErrorCodeInvalidArgument                  // well formed input the system cannot use
	ErrorCodeValidation                       // request failed struct validation
	ErrorCodeJSON                             // request body is not the expected JSON
	ErrorCodeNotFound                         // no such rewrite table
	ErrorCodeDuplicateKey                     // unique constraint hit
	ErrorCodeDB                               // any other database failure
	ErrorCodeConfig                           // link categories cannot be compiled
	ErrorCodeInvariant                        // display offsets broken after a transform pass
)

var statusByCode = map[ErrorCode]int{
	ErrorCodeUnavailable:     http.StatusServiceUnavailable,
	ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
	ErrorCodeConfig:          http.StatusUnprocessableEntity,
	ErrorCodeValidation:      http.StatusBadRequest,
	ErrorCodeJSON:            http.StatusBadRequest,
	ErrorCodeNotFound:        http.StatusNotFound,
	ErrorCodeDuplicateKey:    http.StatusConflict,
}

// Status is the HTTP status for c; unmapped codes are 500
func (c ErrorCode) Status() int {
	if s, ok := statusByCode[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error is the structured error. It is immutable; the With helpers return copies
type Error struct {
	code  ErrorCode
	msg   string
	field string
	op    string
	orig  error
}

// Wire is the JSON form of an error in API responses
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.orig == nil:
		return e.msg
	default:
		return e.msg + ": " + e.orig.Error()
	}
}

func (e *Error) Unwrap() error { return e.orig }

// Code returns the error class
func (e *Error) Code() ErrorCode { return e.code }

// Field names the offending request field, if any
func (e *Error) Field() string { return e.field }

// Op names the operation that failed, if set
func (e *Error) Op() string { return e.op }

// As finds the first *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// CodeOf returns err's code, ErrorCodeUnknown for foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus maps any error to a response status
func HTTPStatus(err error) int { return CodeOf(err).Status() }

// WireFrom renders err for a response body. Only the message of an *Error is exposed,
// never its wrapped cause; foreign errors are reported as unknown
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return Wire{Code: e.code, Message: e.msg, Field: e.field}
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// Root unwraps err down to its innermost cause
func Root(err error) error {
	for {
		next := stderrs.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func edit(err error, fn func(*Error)) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	fn(&c)
	return &c
}

// WithField returns a copy of err naming the request field; foreign errors pass through
func WithField(err error, field string) error {
	return edit(err, func(e *Error) { e.field = field })
}

// WithOp returns a copy of err naming the operation; foreign errors pass through
func WithOp(err error, op string) error {
	return edit(err, func(e *Error) { e.op = op })
}

// New returns an *Error with code and msg
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf is New with a format
func Newf(code ErrorCode, format string, a ...any) error {
	return New(code, fmt.Sprintf(format, a...))
}

// Wrap returns an *Error with code and msg around orig
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf is Wrap with a format
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return Wrap(orig, code, fmt.Sprintf(format, a...))
}

func NotFoundf(format string, a ...any) error    { return Newf(ErrorCodeNotFound, format, a...) }
func InvalidArgf(format string, a ...any) error  { return Newf(ErrorCodeInvalidArgument, format, a...) }
func JSONErrf(format string, a ...any) error     { return Newf(ErrorCodeJSON, format, a...) }
func PanicErrf(format string, a ...any) error    { return Newf(ErrorCodePanic, format, a...) }
func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }

// Configf reports an unusable link category configuration
func Configf(format string, a ...any) error { return Newf(ErrorCodeConfig, format, a...) }

// Invariantf reports item offsets that do not address the display text
func Invariantf(format string, a ...any) error { return Newf(ErrorCodeInvariant, format, a...) }
