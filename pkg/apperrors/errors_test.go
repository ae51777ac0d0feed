package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	assert.Equal(t, 400, NewValidation("Validation failed", nil).Status)
	assert.Equal(t, 401, NewUnauthorized("Invalid or missing token").Status)
	assert.Equal(t, 404, NewNotFound("User").Status)
	assert.Equal(t, 409, NewConflict("Email already exists").Status)
	assert.Equal(t, 500, NewInternal().Status)
}

func TestNotFoundMessage(t *testing.T) {
	err := NewNotFound("User")
	assert.Equal(t, "User not found", err.Message)
	assert.Equal(t, CodeNotFound, err.Code)
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("handling request: %w", NewConflict("Username already exists"))

	var appErr *Error
	assert.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, 409, appErr.Status)
	assert.Equal(t, "Username already exists", appErr.Message)
}

func TestValidationIssues(t *testing.T) {
	issues := []Issue{{Field: "password", Message: "must be at least 8 characters long"}}
	err := NewValidation("Validation failed", issues)
	assert.Len(t, err.Issues, 1)
	assert.Equal(t, "password", err.Issues[0].Field)
}
