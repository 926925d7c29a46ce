package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingEmail indicates a user reference has no email address.
	// Users without an email cannot be created or linked.
	ErrMissingEmail = errors.New("user has no email")

	// ErrUnknownCategoryKind indicates an unrecognised category kind.
	ErrUnknownCategoryKind = errors.New("unknown category kind")
)

// SkipError marks a record excluded from migration because it fails the
// company-name precondition. It is an expected outcome, counted separately
// from errors, and carries enough context for a human to locate the record
// in the source base.
type SkipError struct {
	RecordID        string
	Reason          string
	AvailableFields []string
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("record %s skipped: %s", e.RecordID, e.Reason)
}

// IsSkip reports whether err is a SkipError and returns it if so.
func IsSkip(err error) (*SkipError, bool) {
	var skip *SkipError
	if errors.As(err, &skip) {
		return skip, true
	}
	return nil, false
}
