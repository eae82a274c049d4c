package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/user/video-trim-cli/config"
	"github.com/user/video-trim-cli/db"
	"github.com/user/video-trim-cli/slider"
)

// tickMsg is a message sent on every tick interval to poll the player.
type tickMsg time.Time

// clearResultMsg clears the result line if no newer result replaced it.
type clearResultMsg struct {
	seq int
}

// thumbnailMsg carries one generated thumbnail.
type thumbnailMsg struct {
	thumb slider.Thumbnail
}

// thumbsDoneMsg is sent when a thumbnail generation finishes.
type thumbsDoneMsg struct {
	generation uint64
}

// exportUpdateMsg carries an export row after a status change.
type exportUpdateMsg struct {
	export db.Export
}

// exportProgressMsg carries ffmpeg progress for a running export.
type exportProgressMsg struct {
	id       string
	fraction float64
}

// configReloadedMsg carries a configuration re-read from disk.
type configReloadedMsg struct {
	cfg *config.Config
}

// eventQueueSize bounds how many background events may wait for the UI.
const eventQueueSize = 64

// events funnels messages from background goroutines (thumbnails, exports,
// config watcher) into the bubbletea loop.
type events struct {
	ch   chan tea.Msg
	done chan struct{}
}

func newEvents() *events {
	return &events{
		ch:   make(chan tea.Msg, eventQueueSize),
		done: make(chan struct{}),
	}
}

// send blocks until the UI accepts msg or the events are closed.
func (e *events) send(msg tea.Msg) {
	select {
	case e.ch <- msg:
	case <-e.done:
	}
}

// close unblocks pending senders. Safe to call once.
func (e *events) close() {
	close(e.done)
}

// waitForEvent returns a tea.Cmd that waits for the next background message.
func waitForEvent(e *events) tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-e.ch:
			return msg
		case <-e.done:
			return nil
		}
	}
}

// notifyingProvider reports when a generation has delivered its last frame.
type notifyingProvider struct {
	inner slider.ThumbnailProvider
	done  func(generation uint64)
}

func (p notifyingProvider) Generate(ctx context.Context, req slider.ThumbnailRequest) (<-chan slider.Thumbnail, error) {
	ch, err := p.inner.Generate(ctx, req)
	if err != nil {
		p.done(req.Generation)
		return nil, err
	}
	out := make(chan slider.Thumbnail)
	go func() {
		defer close(out)
		for th := range ch {
			out <- th
		}
		p.done(req.Generation)
	}()
	return out, nil
}
