package slider

import "fmt"

// Handle identifies which part of the slider a gesture is moving.
type Handle int

const (
	// HandleStart is the left trim handle.
	HandleStart Handle = iota
	// HandleEnd is the right trim handle.
	HandleEnd
	// HandleProgress is the playback indicator.
	HandleProgress
	// HandleWholeRange moves start, end and progress together.
	HandleWholeRange
)

// String returns the handle name used in logs and the status line.
func (h Handle) String() string {
	switch h {
	case HandleStart:
		return "start"
	case HandleEnd:
		return "end"
	case HandleProgress:
		return "progress"
	case HandleWholeRange:
		return "range"
	default:
		return fmt.Sprintf("handle(%d)", int(h))
	}
}

// Listener receives slider notifications. All methods are called
// synchronously from the goroutine that drives the controller.
type Listener interface {
	// ValueChanged reports the trimmed range in seconds.
	ValueChanged(startSeconds, endSeconds float64)
	// ProgressChanged reports a new progress position in seconds.
	ProgressChanged(seconds float64)
	// GestureStarted fires when a drag session opens.
	GestureStarted()
	// GestureEnded fires when a drag session closes.
	GestureEnded()
}

// Listeners fans notifications out to several listeners in order.
type Listeners []Listener

func (ls Listeners) ValueChanged(startSeconds, endSeconds float64) {
	for _, l := range ls {
		l.ValueChanged(startSeconds, endSeconds)
	}
}

func (ls Listeners) ProgressChanged(seconds float64) {
	for _, l := range ls {
		l.ProgressChanged(seconds)
	}
}

func (ls Listeners) GestureStarted() {
	for _, l := range ls {
		l.GestureStarted()
	}
}

func (ls Listeners) GestureEnded() {
	for _, l := range ls {
		l.GestureEnded()
	}
}

// nopListener is installed when no listener is configured.
type nopListener struct{}

func (nopListener) ValueChanged(float64, float64) {}
func (nopListener) ProgressChanged(float64)       {}
func (nopListener) GestureStarted()               {}
func (nopListener) GestureEnded()                 {}
