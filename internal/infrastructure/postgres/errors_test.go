package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igorsily/users-api/internal/domain/repository"
)

func TestTranslateErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	err := translateError(fmt.Errorf("insert users: %w", pgErr))

	var uv *repository.UniqueViolationError
	require.True(t, errors.As(err, &uv))
	assert.Equal(t, "users_email_key", uv.Constraint)
}

func TestTranslateErrorPassThrough(t *testing.T) {
	orig := errors.New("connection refused")
	assert.Equal(t, orig, translateError(orig))

	otherPg := &pgconn.PgError{Code: "23503", ConstraintName: "some_fk"}
	var uv *repository.UniqueViolationError
	assert.False(t, errors.As(translateError(otherPg), &uv))
}
