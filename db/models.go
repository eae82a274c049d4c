package db

import "time"

// Export statuses.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusComplete   = "complete"
	StatusError      = "error"
)

// Export represents a row in the exports table.
type Export struct {
	ID         string
	VideoPath  string
	Start      float64
	End        float64
	OutputPath string
	Reencode   bool
	Status     string
	Error      string
	Filesize   int64
	CreatedAt  time.Time
	StartedAt  *time.Time
	FinishedAt *time.Time
}

// Duration returns the trimmed length in seconds.
func (e Export) Duration() float64 {
	return e.End - e.Start
}

// Done reports whether the export reached a terminal status.
func (e Export) Done() bool {
	return e.Status == StatusComplete || e.Status == StatusError
}
