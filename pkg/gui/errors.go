package gui

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyInventory is returned when cycling over an inventory with no slots.
	ErrEmptyInventory = errors.New("inventory has no slots")
	// ErrInventoryGone is returned when clicking a slot whose inventory was collected.
	ErrInventoryGone = errors.New("inventory no longer exists")
	// ErrCyclicLink is matched by every *CyclicLinkError.
	ErrCyclicLink = errors.New("cyclic slot link")
)

// CyclicLinkError reports a LinkElement chain that loops back on itself.
// Chain lists the linked slot indices in the order they were followed.
type CyclicLinkError struct {
	Chain []int
}

func (e *CyclicLinkError) Error() string {
	parts := make([]string, len(e.Chain))
	for i, s := range e.Chain {
		parts[i] = fmt.Sprint(s)
	}
	return "cyclic slot link: " + strings.Join(parts, " -> ")
}

func (e *CyclicLinkError) Is(target error) bool { return target == ErrCyclicLink }
