package slider

import "errors"

var (
	// ErrGestureActive is returned by BeginDrag while another drag is open.
	ErrGestureActive = errors.New("slider: gesture already active")
	// ErrNoGesture is returned by ApplyDragDelta when no drag is open.
	ErrNoGesture = errors.New("slider: no active gesture")
	// ErrProgressLocked is returned when dragging the progress indicator is disabled.
	ErrProgressLocked = errors.New("slider: progress indicator is not draggable")
	// ErrUnknownHandle is returned for a handle value outside the known set.
	ErrUnknownHandle = errors.New("slider: unknown handle")
)
