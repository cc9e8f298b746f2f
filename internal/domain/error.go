package domain

import (
	"errors"
	"fmt"
)

// Machine-readable error codes. Each maps to one HTTP status in the
// handler layer.
const (
	EINVALID      = "invalid"          // 400, bad or missing input
	EUNAUTHORIZED = "unauthorized"     // 401, missing or bad credentials
	EPAYMENT      = "payment_required" // 402, payment provider failure
	EFORBIDDEN    = "forbidden"        // 403, authenticated but not allowed
	ENOTFOUND     = "not_found"        // 404
	ECONFLICT     = "conflict"         // 409, e.g. duplicate template name
	ERATELIMIT    = "rate_limit"       // 429
	EINTERNAL     = "internal"         // 500, details never reach the client
)

// genericMessage replaces internal error text in anything user-facing.
const genericMessage = "An internal error occurred. Please try again later."

// Error is the application error type. Code drives the HTTP status,
// Message is safe to show users, Op names the failing operation for
// logs, and Err carries the underlying cause for wrapping.
type Error struct {
	Code    string
	Message string
	Op      string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// asDomain digs through wrapping for an *Error.
func asDomain(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// ErrorCode returns err's code, EINTERNAL for non-domain errors, and ""
// for nil.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	if e := asDomain(err); e != nil {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the user-facing message. Internal and unknown
// errors get the generic message so details stay in the logs.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if e := asDomain(err); e != nil && e.Code != EINTERNAL {
		return e.Message
	}
	return genericMessage
}

// ErrorOp returns the operation name for logging, if any.
func ErrorOp(err error) string {
	if e := asDomain(err); e != nil {
		return e.Op
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code string) bool {
	return ErrorCode(err) == code
}

// Errorf builds a domain error with a formatted message, e.g.
// Errorf(EINVALID, "invoice.create", "unsupported currency %q", c).
func Errorf(code, op, format string, args ...interface{}) error {
	return &Error{Code: code, Op: op, Message: fmt.Sprintf(format, args...)}
}

// WrapError attaches a code, op, and user-facing message to an existing
// error, keeping the cause reachable via errors.Is. Nil in, nil out.
func WrapError(err error, code, op, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Op: op, Message: message, Err: err}
}

// NotFound builds an ENOTFOUND error naming the missing resource.
func NotFound(op, resource, identifier string) error {
	return Errorf(ENOTFOUND, op, "%s not found: %s", resource, identifier)
}

// Unauthorized builds an EUNAUTHORIZED error.
func Unauthorized(op, message string) error {
	return &Error{Code: EUNAUTHORIZED, Op: op, Message: message}
}

// Forbidden builds an EFORBIDDEN error.
func Forbidden(op, message string) error {
	return &Error{Code: EFORBIDDEN, Op: op, Message: message}
}

// Invalid builds an EINVALID error.
func Invalid(op, message string) error {
	return &Error{Code: EINVALID, Op: op, Message: message}
}

// Conflict builds an ECONFLICT error.
func Conflict(op, message string) error {
	return &Error{Code: ECONFLICT, Op: op, Message: message}
}

// Internal wraps a cause as EINTERNAL. The message is for logs only;
// users see the generic message.
func Internal(err error, op, message string) error {
	return &Error{Code: EINTERNAL, Op: op, Message: message, Err: err}
}
