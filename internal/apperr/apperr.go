package apperr

import "errors"

// Error codes for the domain layer. Handlers map these to HTTP statuses.
const (
	CodeValidation         = "validation"
	CodeDuplicateKey       = "duplicate_key"
	CodeInvalidCredentials = "invalid_credentials"
	CodeUnauthorized       = "unauthorized"
	CodeNotFound           = "not_found"
	CodePersistence        = "persistence"
)

// Error is a domain error carrying a machine code and a user-facing message.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates a domain error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Validation creates a user-correctable input error.
func Validation(message string) *Error {
	return New(CodeValidation, message)
}

// Duplicate creates a uniqueness-violation error.
func Duplicate(message string) *Error {
	return New(CodeDuplicateKey, message)
}

// NotFound creates a missing-entity error.
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// Persistence creates a generic backend-failure error. The message is safe
// to show to callers; driver detail stays in the server log.
func Persistence(message string) *Error {
	return New(CodePersistence, message)
}

// ErrInvalidCredentials is returned on every login failure, whether the
// username is unknown or the password is wrong.
var ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid credentials")

// ErrUnauthorized is returned when the caller is anonymous or the session
// role does not match the required role.
var ErrUnauthorized = New(CodeUnauthorized, "Unauthorized")

// Is reports whether err is a domain error with the given code.
func Is(err error, code string) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}

// CodeOf returns the domain code of err, or CodePersistence for unknown errors.
func CodeOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodePersistence
}
