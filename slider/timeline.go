package slider

import "math"

// Timeline maps between seconds, percentage space and track pixels.
// Duration is the media length in seconds (0 when no media is bound) and
// TrackWidth is the rendered track width in pixels (terminal cells in the TUI).
type Timeline struct {
	Duration   float64
	TrackWidth float64
}

// PercentageFromSeconds converts seconds to a percentage of the duration.
// Returns 0 when the duration is unknown.
func (t Timeline) PercentageFromSeconds(seconds float64) float64 {
	if t.Duration <= 0 {
		return 0
	}
	return seconds * 100 / t.Duration
}

// SecondsFromPercentage converts a percentage back to seconds.
// Returns 0 when the duration is unknown.
func (t Timeline) SecondsFromPercentage(pct float64) float64 {
	if t.Duration <= 0 {
		return 0
	}
	return t.Duration * pct / 100
}

// PositionFromPercentage converts a percentage to a track position in pixels.
func (t Timeline) PositionFromPercentage(pct float64) float64 {
	if t.TrackWidth <= 0 {
		return 0
	}
	return pct * t.TrackWidth / 100
}

// PercentageFromPosition converts a track position in pixels to a percentage.
// Returns 0 when the track has no width.
func (t Timeline) PercentageFromPosition(pos float64) float64 {
	if t.TrackWidth <= 0 {
		return 0
	}
	return pos * 100 / t.TrackWidth
}

// clampPercent bounds a percentage to [0,100], mapping NaN to 0.
func clampPercent(pct float64) float64 {
	return clamp(pct, 0, 100)
}

// clamp bounds v to [lo,hi]. NaN collapses to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
