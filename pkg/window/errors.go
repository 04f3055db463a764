package window

import (
	"errors"
	"fmt"
)

var (
	// ErrNotShown is returned by operations that need the window to be shown.
	ErrNotShown = errors.New("window is not shown")
	// ErrReentrantTransition is returned when Show, Close or Remove is called
	// from inside another lifecycle transition of the same window, typically
	// from a close handler.
	ErrReentrantTransition = errors.New("reentrant window transition")

	ErrNoHost        = errors.New("window manager has no host")
	ErrNoViewer      = errors.New("window builder has no viewer")
	ErrNoGui         = errors.New("window builder has no gui")
	ErrGuiSize       = errors.New("gui size does not fit the window")
	ErrViewerOffline = errors.New("viewer is not online")
)

// HandlerError wraps the failure of one close handler. Index is the
// handler's position in registration order.
type HandlerError struct {
	Index int
	Err   error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("close handler %d: %v", e.Index, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }
