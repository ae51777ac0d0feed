package response

import (
	"github.com/igorsily/users-api/pkg/apperrors"
)

// ErrorBody is the uniform error payload returned by the API boundary.
// Body-validation failures additionally carry the per-field issues list.
type ErrorBody struct {
	Error      string            `json:"error"`
	Message    string            `json:"message"`
	StatusCode int               `json:"statusCode"`
	Issues     []apperrors.Issue `json:"issues,omitempty"`
}

// FromAppError builds the wire payload for a domain error.
func FromAppError(e *apperrors.Error) ErrorBody {
	return ErrorBody{
		Error:      e.Code,
		Message:    e.Message,
		StatusCode: e.Status,
		Issues:     e.Issues,
	}
}

// Internal is the fallback payload for unrecognized failures. No internal
// detail is leaked to the caller.
func Internal() ErrorBody {
	return FromAppError(apperrors.NewInternal())
}
