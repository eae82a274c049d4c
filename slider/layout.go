package slider

import (
	"math"

	"github.com/user/video-trim-cli/pkg/timeutil"
)

// Layout is everything the view needs to draw the slider: cursor positions in
// pixels, the trimmed range in seconds and the two time labels.
type Layout struct {
	StartX    float64
	EndX      float64
	ProgressX float64

	StartSeconds    float64
	EndSeconds      float64
	ProgressSeconds float64

	// StartLabel shows the progress time once playback is past the start.
	StartLabel  string
	EndLabel    string
	StartLabelX float64
	EndLabelX   float64
}

// Layout computes the current layout. labelWidth is the rendered width of a
// time label and is used to centre or pin the labels.
func (c *Controller) Layout(labelWidth float64) Layout {
	tl := c.timeline
	l := Layout{
		StartX:          tl.PositionFromPercentage(c.start),
		EndX:            tl.PositionFromPercentage(c.end),
		ProgressX:       tl.PositionFromPercentage(c.progress),
		StartSeconds:    tl.SecondsFromPercentage(c.start),
		EndSeconds:      tl.SecondsFromPercentage(c.end),
		ProgressSeconds: tl.SecondsFromPercentage(c.progress),
	}

	if c.progress > c.start {
		l.StartLabel = timeutil.FormatSeconds(l.ProgressSeconds)
	} else {
		l.StartLabel = timeutil.FormatSeconds(l.StartSeconds)
	}
	l.EndLabel = timeutil.FormatSeconds(l.EndSeconds)

	maxX := math.Max(tl.TrackWidth-labelWidth, 0)
	if c.cfg.TimeLabelsSticky {
		l.StartLabelX = 0
		l.EndLabelX = maxX
	} else {
		l.StartLabelX = clamp(l.StartX-labelWidth/2, 0, maxX)
		l.EndLabelX = clamp(l.EndX-labelWidth/2, 0, maxX)
	}
	return l
}

// HitTest maps a pointer position on the track to the handle it grabs.
// Trim handles win within tolerance pixels; progress wins only when strictly
// closer than both; anywhere else inside the span grabs the whole range.
func (c *Controller) HitTest(x, tolerance float64) (Handle, bool) {
	tl := c.timeline
	if tl.TrackWidth <= 0 {
		return 0, false
	}
	startX := tl.PositionFromPercentage(c.start)
	endX := tl.PositionFromPercentage(c.end)
	progressX := tl.PositionFromPercentage(c.progress)

	ds := math.Abs(x - startX)
	de := math.Abs(x - endX)
	dp := math.Abs(x - progressX)

	best := math.Inf(1)
	var hit Handle
	found := false

	if ds <= tolerance {
		hit, best, found = HandleStart, ds, true
	}
	// on a tie the end handle wins unless it is pinned to the right edge
	if de <= tolerance && (de < best || (de == best && (x > endX || (x == endX && endX < tl.TrackWidth)))) {
		hit, best, found = HandleEnd, de, true
	}
	if c.cfg.ProgressDraggable && dp < 1 && dp < best {
		hit, found = HandleProgress, true
	}
	if found {
		return hit, true
	}
	if x >= startX && x <= endX {
		return HandleWholeRange, true
	}
	return 0, false
}
