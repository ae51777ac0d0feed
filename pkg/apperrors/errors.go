package apperrors

import "fmt"

// Error codes reported in the uniform error body.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_SERVER_ERROR"
)

// Issue is a single per-field validation failure attached to a ValidationError.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a domain error carrying the HTTP status the boundary handler maps
// it to. Everything the service and middleware layers raise on purpose is one
// of these; anything else becomes a generic 500 at the boundary.
type Error struct {
	Code    string
	Message string
	Status  int
	Issues  []Issue
}

func (e *Error) Error() string { return e.Message }

// NewValidation reports input that failed schema validation. issues may be nil
// for param/query failures; body failures attach per-field issues.
func NewValidation(message string, issues []Issue) *Error {
	return &Error{Code: CodeValidation, Message: message, Status: 400, Issues: issues}
}

// NewUnauthorized reports a missing or invalid authentication token.
func NewUnauthorized(message string) *Error {
	return &Error{Code: CodeUnauthorized, Message: message, Status: 401}
}

// NewNotFound reports that the named entity does not exist.
func NewNotFound(entity string) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s not found", entity), Status: 404}
}

// NewConflict reports a uniqueness constraint violation.
func NewConflict(message string) *Error {
	return &Error{Code: CodeConflict, Message: message, Status: 409}
}

// NewInternal reports an unrecoverable fault with no detail leaked to the caller.
func NewInternal() *Error {
	return &Error{Code: CodeInternal, Message: "An unexpected error occurred", Status: 500}
}
