package domain

import (
	"errors"
	"fmt"
)

// Typed failures surfaced to callers. Services wrap these with %w so the
// HTTP layer can map them to status codes with errors.Is.
var (
	ErrValidation            = errors.New("validation failed")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrNotFound              = errors.New("not found")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrAlreadyMember         = errors.New("already a member of this group")
	ErrOwnerEnrollmentFailed = errors.New("group created but owner enrollment failed")
	ErrUpstreamUnavailable   = errors.New("upstream unavailable")
)

// OwnerEnrollmentError reports a group whose row was created but whose owner
// could not be enrolled. GroupID names the existing group so the caller
// retries enrollment against it instead of creating the group again.
type OwnerEnrollmentError struct {
	GroupID string
	Err     error
}

func (e *OwnerEnrollmentError) Error() string {
	return fmt.Sprintf("group %s created but owner enrollment failed: %v", e.GroupID, e.Err)
}

func (e *OwnerEnrollmentError) Unwrap() error { return ErrOwnerEnrollmentFailed }
