package repository

import "fmt"

// UniqueViolationError is the storage-level failure raised when an insert
// races past the service's uniqueness pre-checks and hits a unique
// constraint. The service translates it into a ConflictError using the
// constraint name.
type UniqueViolationError struct {
	Constraint string
	Err        error
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("unique constraint %q violated: %v", e.Constraint, e.Err)
}

func (e *UniqueViolationError) Unwrap() error { return e.Err }
