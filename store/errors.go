package store

import (
	"errors"
	"fmt"
)

// Business-rule failures. Handlers map these to 4xx responses with
// success=false; anything else is treated as a storage failure and rolls
// back.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrRecordNotFound = errors.New("attendance record not found")
	ErrDeviceNotFound = errors.New("device not found")
	ErrDuplicateUser  = errors.New("user already exists")
	ErrEmptySnapshot  = errors.New("device user list is empty, aborting for safety")
)

// SlotConflictError reports the first requested slot that is already owned
// by another user. Checks run in ascending input order, so Slot is the first
// conflict found, not an aggregate.
type SlotConflictError struct {
	Slot  int64
	Owner string
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("Slot ID %d is already occupied by %s", e.Slot, e.Owner)
}

// SlotMismatchError guards deletions: the caller-supplied slot set must match
// the stored set exactly (order-independent) or nothing is deleted.
type SlotMismatchError struct {
	Expected []int64
	Got      []int64
}

func (e *SlotMismatchError) Error() string {
	return fmt.Sprintf("Slot ID mismatch: Expected %v, got %v", e.Expected, e.Got)
}
