package slider

import (
	"context"
	"image"

	"go.uber.org/zap"
)

// ThumbnailRequest describes one thumbnail refresh.
type ThumbnailRequest struct {
	Asset      string
	Duration   float64
	TrackWidth float64
	// Generation increases with every refresh so receivers can drop stale frames.
	Generation uint64
}

// Thumbnail is a preview frame positioned along the track.
type Thumbnail struct {
	Generation   uint64
	Index        int
	OffsetPixels float64
	WidthPixels  float64
	Seconds      float64
	Image        image.Image
}

// ThumbnailProvider generates preview frames for a media asset. The returned
// channel yields thumbnails as they become ready and is closed when the
// provider is done or ctx is cancelled.
type ThumbnailProvider interface {
	Generate(ctx context.Context, req ThumbnailRequest) (<-chan Thumbnail, error)
}

// ThumbnailGeneration returns the generation of the latest refresh.
func (c *Controller) ThumbnailGeneration() uint64 {
	return c.generation
}

// RefreshThumbnails forces a new thumbnail request for the current asset,
// duration and width.
func (c *Controller) RefreshThumbnails() {
	c.refreshThumbnails()
}

// refreshThumbnails cancels the previous request and starts a new one in the
// background. Nothing in the trim math waits on thumbnails.
func (c *Controller) refreshThumbnails() {
	if c.thumbs == nil || c.deliver == nil {
		return
	}
	if c.asset == "" || c.timeline.Duration <= 0 || c.timeline.TrackWidth <= 0 {
		return
	}

	if c.cancelThumbs != nil {
		c.cancelThumbs()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancelThumbs = cancel
	c.generation++

	req := ThumbnailRequest{
		Asset:      c.asset,
		Duration:   c.timeline.Duration,
		TrackWidth: c.timeline.TrackWidth,
		Generation: c.generation,
	}
	provider, deliver, log := c.thumbs, c.deliver, c.log

	go func() {
		ch, err := provider.Generate(ctx, req)
		if err != nil {
			log.Warn("thumbnail generation failed",
				zap.String("asset", req.Asset),
				zap.Uint64("generation", req.Generation),
				zap.Error(err))
			return
		}
		for th := range ch {
			if ctx.Err() != nil {
				continue
			}
			th.Generation = req.Generation
			deliver(th)
		}
	}()
}
