package engine

import (
	"errors"
	"fmt"

	"adventuremap/internal/quest"
)

// ErrNotFound matches every NotFoundError via errors.Is.
var ErrNotFound = errors.New("quest not found")

// ValidationError rejects user input before anything changes.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

// NotFoundError reports an id that is absent, or present but not in the
// status the operation needs. Want is empty when any status is accepted.
type NotFoundError struct {
	ID   string
	Want quest.Status
}

func (e *NotFoundError) Error() string {
	if e.Want == "" {
		return fmt.Sprintf("quest %q not found", e.ID)
	}
	return fmt.Sprintf("quest %q not found in %s", e.ID, e.Want)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// PersistenceError means the durable slot could not be read or written.
// On writes the in-memory change has already been applied.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// CorruptSessionError means the stored snapshot was unreadable and has been
// discarded; the session continues empty.
type CorruptSessionError struct {
	Err error
}

func (e *CorruptSessionError) Error() string {
	return fmt.Sprintf("stored session is corrupt and was cleared: %v", e.Err)
}

func (e *CorruptSessionError) Unwrap() error { return e.Err }

// IsNonFatal reports errors that leave a usable session behind.
func IsNonFatal(err error) bool {
	var pe *PersistenceError
	var ce *CorruptSessionError
	return errors.As(err, &pe) || errors.As(err, &ce)
}
