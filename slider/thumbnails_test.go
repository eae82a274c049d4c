package slider

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider records requests and emits one thumbnail per request.
type fakeProvider struct {
	mu       sync.Mutex
	requests []ThumbnailRequest
	ctxs     []context.Context
	err      error
}

func (p *fakeProvider) Generate(ctx context.Context, req ThumbnailRequest) (<-chan Thumbnail, error) {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	p.ctxs = append(p.ctxs, ctx)
	p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	ch := make(chan Thumbnail, 1)
	ch <- Thumbnail{Index: 0, OffsetPixels: 0, WidthPixels: req.TrackWidth}
	close(ch)
	return ch, nil
}

func (p *fakeProvider) snapshot() ([]ThumbnailRequest, []context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ThumbnailRequest(nil), p.requests...), append([]context.Context(nil), p.ctxs...)
}

func receive(t *testing.T, ch <-chan Thumbnail) Thumbnail {
	t.Helper()
	select {
	case th := <-ch:
		return th
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for thumbnail")
		return Thumbnail{}
	}
}

func TestThumbnailsNeedAssetDurationAndWidth(t *testing.T) {
	p := &fakeProvider{}
	got := make(chan Thumbnail, 4)
	c := New(WithThumbnails(p, func(th Thumbnail) { got <- th }))

	c.SetDuration(120)
	c.OnSizeChanged(80)
	assert.Equal(t, uint64(0), c.ThumbnailGeneration(), "no asset yet")

	c.SetAsset("/videos/match.mp4")
	th := receive(t, got)

	assert.Equal(t, uint64(1), th.Generation)
	assert.Equal(t, 80.0, th.WidthPixels)
	reqs, _ := p.snapshot()
	require.Len(t, reqs, 1)
	assert.Equal(t, ThumbnailRequest{Asset: "/videos/match.mp4", Duration: 120, TrackWidth: 80, Generation: 1}, reqs[0])
	c.Close()
}

func TestThumbnailsRefreshOnResizeCancelsPrevious(t *testing.T) {
	p := &fakeProvider{}
	got := make(chan Thumbnail, 4)
	c := New(WithThumbnails(p, func(th Thumbnail) { got <- th }))
	c.SetAsset("a.mp4")
	c.OnSizeChanged(40)
	c.SetDuration(60)
	receive(t, got)

	c.OnSizeChanged(40)
	assert.Equal(t, uint64(1), c.ThumbnailGeneration(), "same width does not refresh")

	c.OnSizeChanged(100)
	th := receive(t, got)
	assert.Equal(t, uint64(2), th.Generation)

	_, ctxs := p.snapshot()
	require.Len(t, ctxs, 2)
	assert.Error(t, ctxs[0].Err(), "previous request is cancelled")

	c.Close()
	assert.Error(t, ctxs[1].Err())
}

func TestThumbnailProviderErrorIsTolerated(t *testing.T) {
	p := &fakeProvider{err: errors.New("ffmpeg missing")}
	c := New(WithThumbnails(p, func(Thumbnail) { t.Error("unexpected delivery") }))
	c.SetAsset("a.mp4")
	c.OnSizeChanged(40)
	c.SetDuration(60)

	assert.Eventually(t, func() bool {
		reqs, _ := p.snapshot()
		return len(reqs) == 1
	}, time.Second, 10*time.Millisecond)

	drag(t, c, HandleStart, 10)
	assert.InDelta(t, 25.0, c.StartPercent(), tolerance)
}
