// Package slider implements the range slider controller behind the trim view:
// start and end trim cursors, a progress cursor, span constraints and the
// gesture handling that moves them.
//
// Cursors live in percentage space [0,100]. Callers feed track-width and
// drag deltas in pixels (terminal cells for the TUI) and read a Layout back.
// A Controller is not safe for concurrent use; drive it from a single
// goroutine (the bubbletea Update loop).
package slider

import (
	"context"
	"math"

	"go.uber.org/zap"
)

// DefaultMinSpan is the minimum trim span in seconds used by DefaultConfig.
const DefaultMinSpan = 1.0

// Config holds the user-tunable slider behaviour.
// Changing it affects future drags only; cursors are not rewritten.
type Config struct {
	// MinSpan is the smallest allowed span between start and end, in seconds.
	MinSpan float64 `yaml:"min_span"`
	// MaxSpan is the largest allowed span in seconds. 0 means unbounded.
	MaxSpan float64 `yaml:"max_span"`
	// ProgressDraggable allows the user to drag the progress indicator.
	ProgressDraggable bool `yaml:"progress_draggable"`
	// ProgressSticky pins progress to start while the whole range is dragged.
	ProgressSticky bool `yaml:"progress_sticky"`
	// TimeLabelsSticky pins the time labels to the track edges.
	TimeLabelsSticky bool `yaml:"time_labels_sticky"`
}

// DefaultConfig returns the stock slider configuration.
func DefaultConfig() Config {
	return Config{
		MinSpan:           DefaultMinSpan,
		ProgressDraggable: true,
	}
}

// normalized clamps negative or NaN spans to zero.
func (c Config) normalized() Config {
	if c.MinSpan < 0 || math.IsNaN(c.MinSpan) {
		c.MinSpan = 0
	}
	if c.MaxSpan < 0 || math.IsNaN(c.MaxSpan) {
		c.MaxSpan = 0
	}
	return c
}

// gesture is the open drag session.
type gesture struct {
	handle Handle
}

// Controller owns the three cursors and resolves gestures against the
// configured span constraints.
type Controller struct {
	timeline Timeline
	cfg      Config

	// percentages in [0,100]
	start    float64
	end      float64
	progress float64

	// seconds given while the duration was still unknown
	pendingStart *float64
	pendingEnd   *float64

	session  *gesture
	listener Listener
	log      *zap.Logger

	asset        string
	thumbs       ThumbnailProvider
	deliver      func(Thumbnail)
	generation   uint64
	cancelThumbs context.CancelFunc
}

// Option configures a Controller.
type Option func(*Controller)

// WithListener installs the notification listener.
func WithListener(l Listener) Option {
	return func(c *Controller) {
		if l != nil {
			c.listener = l
		}
	}
}

// WithConfig sets the initial configuration.
func WithConfig(cfg Config) Option {
	return func(c *Controller) {
		c.cfg = cfg.normalized()
	}
}

// WithLogger sets the logger used for gesture and thumbnail diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithThumbnails wires the thumbnail provider and the function that receives
// generated thumbnails. deliver is called from a background goroutine.
func WithThumbnails(p ThumbnailProvider, deliver func(Thumbnail)) Option {
	return func(c *Controller) {
		c.thumbs = p
		c.deliver = deliver
	}
}

// New creates a controller with start=0%, end=100% and progress=0%.
func New(opts ...Option) *Controller {
	c := &Controller{
		cfg:      DefaultConfig(),
		end:      100,
		listener: nopListener{},
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetConfig replaces the configuration for subsequent drags.
func (c *Controller) SetConfig(cfg Config) {
	c.cfg = cfg.normalized()
	c.log.Debug("slider config updated",
		zap.Float64("min_span", c.cfg.MinSpan),
		zap.Float64("max_span", c.cfg.MaxSpan))
}

// Config returns the active configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// SetDuration binds the media duration in seconds.
//
// Positions set through SetStartPosition/SetEndPosition while the duration
// was 0 are re-derived here once a positive duration is known, and progress
// is reset to the new start.
func (c *Controller) SetDuration(seconds float64) {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}
	c.timeline.Duration = seconds
	if seconds > 0 {
		c.applyPending()
	}
	c.refreshThumbnails()
}

// applyPending re-derives positions that were set before the duration arrived.
func (c *Controller) applyPending() {
	if c.pendingStart == nil && c.pendingEnd == nil {
		return
	}
	if c.pendingStart != nil {
		c.start = clampPercent(c.timeline.PercentageFromSeconds(*c.pendingStart))
	}
	if c.pendingEnd != nil {
		c.end = clampPercent(c.timeline.PercentageFromSeconds(*c.pendingEnd))
	}
	if c.start > c.end {
		c.start = c.end
	}
	c.progress = c.start
	c.pendingStart, c.pendingEnd = nil, nil
	c.log.Debug("re-derived pending positions",
		zap.Float64("start_pct", c.start),
		zap.Float64("end_pct", c.end))
}

// SetAsset records the media asset used for thumbnails and refreshes them.
func (c *Controller) SetAsset(asset string) {
	if asset == c.asset {
		return
	}
	c.asset = asset
	c.refreshThumbnails()
}

// OnSizeChanged updates the track width in pixels. Thumbnails are refreshed
// when the width actually changes.
func (c *Controller) OnSizeChanged(width float64) {
	if width < 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		width = 0
	}
	if width == c.timeline.TrackWidth {
		return
	}
	c.timeline.TrackWidth = width
	c.refreshThumbnails()
}

// SetStartPosition moves the start cursor to seconds and resets progress to it.
// Host driven: no notification is emitted.
func (c *Controller) SetStartPosition(seconds float64) {
	if c.timeline.Duration <= 0 {
		s := seconds
		c.pendingStart = &s
	} else {
		c.pendingStart = nil
	}
	c.start = clamp(c.timeline.PercentageFromSeconds(seconds), 0, c.end)
	c.progress = c.start
}

// SetEndPosition moves the end cursor to seconds and pulls progress back if
// it is now past the end. Host driven: no notification is emitted.
func (c *Controller) SetEndPosition(seconds float64) {
	if c.timeline.Duration <= 0 {
		s := seconds
		c.pendingEnd = &s
	} else {
		c.pendingEnd = nil
	}
	c.end = clamp(c.timeline.PercentageFromSeconds(seconds), c.start, 100)
	if c.progress > c.end {
		c.progress = c.end
	}
}

// UpdateProgress moves the progress cursor from the playback clock.
//
// It is ignored while a gesture is active. Reaching the end of the trimmed
// range resets progress to start and emits ProgressChanged; ordinary updates
// are silent so the host does not seek in response to its own clock.
func (c *Controller) UpdateProgress(seconds float64) {
	if c.session != nil || c.timeline.Duration <= 0 {
		return
	}
	if seconds >= c.timeline.SecondsFromPercentage(c.end) {
		c.progress = c.start
		c.listener.ProgressChanged(c.timeline.SecondsFromPercentage(c.progress))
		return
	}
	c.progress = clamp(c.timeline.PercentageFromSeconds(seconds), c.start, c.end)
}

// Timeline returns the current duration and track width.
func (c *Controller) Timeline() Timeline { return c.timeline }

// Duration returns the bound media duration in seconds.
func (c *Controller) Duration() float64 { return c.timeline.Duration }

// TrackWidth returns the track width in pixels.
func (c *Controller) TrackWidth() float64 { return c.timeline.TrackWidth }

// Asset returns the media asset used for thumbnails.
func (c *Controller) Asset() string { return c.asset }

// StartPercent returns the start cursor in percentage space.
func (c *Controller) StartPercent() float64 { return c.start }

// EndPercent returns the end cursor in percentage space.
func (c *Controller) EndPercent() float64 { return c.end }

// ProgressPercent returns the progress cursor in percentage space.
func (c *Controller) ProgressPercent() float64 { return c.progress }

// Start returns the start of the trimmed range in seconds.
func (c *Controller) Start() float64 { return c.timeline.SecondsFromPercentage(c.start) }

// End returns the end of the trimmed range in seconds.
func (c *Controller) End() float64 { return c.timeline.SecondsFromPercentage(c.end) }

// Progress returns the progress position in seconds.
func (c *Controller) Progress() float64 { return c.timeline.SecondsFromPercentage(c.progress) }

// Span returns end minus start in seconds.
func (c *Controller) Span() float64 { return c.End() - c.Start() }

// Dragging reports the handle of the open gesture, if any.
func (c *Controller) Dragging() (Handle, bool) {
	if c.session == nil {
		return 0, false
	}
	return c.session.handle, true
}

// Close cancels any in-flight thumbnail generation.
func (c *Controller) Close() {
	if c.cancelThumbs != nil {
		c.cancelThumbs()
		c.cancelThumbs = nil
	}
}
