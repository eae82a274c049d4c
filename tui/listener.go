package tui

import (
	"go.uber.org/zap"
)

// Player is the playback surface the TUI drives. *mpv.Client implements it.
type Player interface {
	IsConnected() bool
	GetTimePos() (float64, error)
	GetDuration() (float64, error)
	GetPaused() (bool, error)
	Seek(seconds float64) error
	Pause() error
	Play() error
	SetABLoop(a, b float64) error
	ClearABLoop() error
}

// playerListener turns slider notifications into player commands.
type playerListener struct {
	m *Model
}

func (l playerListener) connected() bool {
	return l.m.player != nil && l.m.player.IsConnected()
}

// ValueChanged keeps the A-B loop in step with the trimmed range.
func (l playerListener) ValueChanged(start, end float64) {
	if !l.m.loop || !l.connected() {
		return
	}
	if err := l.m.player.SetABLoop(start, end); err != nil {
		l.m.log.Warn("failed to update loop", zap.Error(err))
	}
}

// ProgressChanged seeks the player to the new progress position.
func (l playerListener) ProgressChanged(seconds float64) {
	if !l.connected() {
		return
	}
	if err := l.m.player.Seek(seconds); err != nil {
		l.m.log.Warn("seek failed", zap.Float64("seconds", seconds), zap.Error(err))
	}
}

// GestureStarted pauses playback for the duration of the drag.
func (l playerListener) GestureStarted() {
	if !l.connected() {
		return
	}
	if err := l.m.player.Pause(); err != nil {
		l.m.log.Warn("pause failed", zap.Error(err))
		return
	}
	l.m.paused = true
}

func (l playerListener) GestureEnded() {
	l.m.log.Debug("trim range",
		zap.Float64("start", l.m.slider.Start()),
		zap.Float64("end", l.m.slider.End()))
}
