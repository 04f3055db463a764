package inventory

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrOutOfRange is matched by every *OutOfRangeError.
var ErrOutOfRange = errors.New("slot index out of range")

// OutOfRangeError reports an access to a slot outside [0, Size).
type OutOfRangeError struct {
	Index int
	Size  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("slot %d out of range [0, %d)", e.Index, e.Size)
}

func (e *OutOfRangeError) Is(target error) bool { return target == ErrOutOfRange }

// ListenerError wraps the failure of a single listener.
type ListenerError struct {
	Inventory uuid.UUID
	ID        ListenerID
	Err       error
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("inventory %s: listener %d: %v", e.Inventory, e.ID, e.Err)
}

func (e *ListenerError) Unwrap() error { return e.Err }
