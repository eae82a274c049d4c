package slider

import (
	"math"

	"go.uber.org/zap"
)

// BeginDrag opens a gesture session for handle and emits GestureStarted.
// Opening a second session without ending the first is a caller bug and
// fails with ErrGestureActive.
func (c *Controller) BeginDrag(h Handle) error {
	if h < HandleStart || h > HandleWholeRange {
		return ErrUnknownHandle
	}
	if c.session != nil {
		return ErrGestureActive
	}
	if h == HandleProgress && !c.cfg.ProgressDraggable {
		return ErrProgressLocked
	}
	c.session = &gesture{handle: h}
	c.log.Debug("gesture started", zap.Stringer("handle", h))
	c.listener.GestureStarted()
	return nil
}

// ApplyDragDelta moves the dragged handle by deltaPixels. Deltas are
// incremental: the caller resets its measured translation after each call.
func (c *Controller) ApplyDragDelta(deltaPixels float64) error {
	if c.session == nil {
		return ErrNoGesture
	}
	if c.timeline.TrackWidth <= 0 || math.IsNaN(deltaPixels) || math.IsInf(deltaPixels, 0) {
		return nil
	}

	switch h := c.session.handle; h {
	case HandleStart, HandleEnd:
		c.dragTrimHandle(h, deltaPixels)
	case HandleProgress:
		c.dragProgress(deltaPixels)
	case HandleWholeRange:
		c.dragRange(deltaPixels)
	}
	return nil
}

// EndDrag closes the session and emits GestureEnded. Without a session it
// does nothing.
func (c *Controller) EndDrag() {
	if c.session == nil {
		return
	}
	h := c.session.handle
	c.session = nil
	c.log.Debug("gesture ended",
		zap.Stringer("handle", h),
		zap.Float64("start", c.Start()),
		zap.Float64("end", c.End()))
	c.listener.GestureEnded()
}

// CancelDrag ends the session when input is lost mid-drag.
func (c *Controller) CancelDrag() {
	c.EndDrag()
}

// dragTrimHandle moves the start or end cursor, applying the min-span,
// degenerate-duration and max-span passes in pixel space.
func (c *Controller) dragTrimHandle(h Handle, delta float64) {
	tl := c.timeline
	minSpan := tl.PercentageFromSeconds(c.cfg.MinSpan)
	maxSpan := tl.PercentageFromSeconds(c.cfg.MaxSpan)
	degenerate := tl.Duration < c.cfg.MinSpan
	spanCapped := c.cfg.MaxSpan > 0 && tl.Duration > c.cfg.MaxSpan

	var dragged float64
	if h == HandleStart {
		pos := clamp(tl.PositionFromPercentage(c.start)+delta, 0, tl.TrackWidth)
		minBound := tl.PositionFromPercentage(c.end - minSpan)
		maxBound := tl.PositionFromPercentage(c.end - maxSpan)

		if degenerate {
			pos = 0
		} else if pos > minBound {
			pos = minBound
		}
		if spanCapped && pos < maxBound {
			pos = maxBound
		}

		c.start = clamp(tl.PercentageFromPosition(pos), 0, c.end)
		dragged = c.start
	} else {
		pos := clamp(tl.PositionFromPercentage(c.end)+delta, 0, tl.TrackWidth)
		minBound := tl.PositionFromPercentage(c.start + minSpan)
		maxBound := tl.PositionFromPercentage(c.start + maxSpan)

		if degenerate {
			pos = tl.TrackWidth
		} else if pos < minBound {
			pos = minBound
		}
		if spanCapped && pos > maxBound {
			pos = maxBound
		}

		c.end = clamp(tl.PercentageFromPosition(pos), c.start, 100)
		dragged = c.end
	}

	c.emitValue()
	c.setProgress(dragged)
}

// dragProgress moves the progress cursor, never leaving the trimmed span.
func (c *Controller) dragProgress(delta float64) {
	tl := c.timeline
	lo := tl.PositionFromPercentage(c.start)
	hi := tl.PositionFromPercentage(c.end)
	pos := clamp(tl.PositionFromPercentage(c.progress)+delta, lo, hi)

	c.progress = clamp(tl.PercentageFromPosition(pos), c.start, c.end)
	c.listener.ProgressChanged(tl.SecondsFromPercentage(c.progress))
}

// dragRange translates all three cursors. Overflow past either edge is
// taken back from the delta so the span width does not change.
func (c *Controller) dragRange(delta float64) {
	shift := c.timeline.PercentageFromPosition(delta)
	if c.start+shift < 0 {
		shift = -c.start
	}
	if c.end+shift > 100 {
		shift = 100 - c.end
	}

	c.start = clampPercent(c.start + shift)
	c.end = clamp(c.end+shift, c.start, 100)

	next := c.progress + shift
	if c.cfg.ProgressSticky {
		next = c.start
	}

	c.emitValue()
	c.setProgress(next)
}

// setProgress commits a progress value and notifies only on change.
func (c *Controller) setProgress(pct float64) {
	pct = clamp(pct, c.start, c.end)
	if pct == c.progress {
		return
	}
	c.progress = pct
	c.listener.ProgressChanged(c.timeline.SecondsFromPercentage(pct))
}

func (c *Controller) emitValue() {
	c.listener.ValueChanged(
		c.timeline.SecondsFromPercentage(c.start),
		c.timeline.SecondsFromPercentage(c.end),
	)
}
