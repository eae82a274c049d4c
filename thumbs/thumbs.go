// Package thumbs generates filmstrip thumbnails with ffmpeg for the slider.
package thumbs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"os/exec"
	"sort"

	"github.com/nfnt/resize"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/user/video-trim-cli/pkg/timeutil"
	"github.com/user/video-trim-cli/slider"
)

// FrameExtractor grabs a single frame at seconds from asset.
type FrameExtractor func(ctx context.Context, asset string, seconds float64) (image.Image, error)

// Slot is one thumbnail position along the track.
type Slot struct {
	Index        int
	OffsetPixels float64
	WidthPixels  float64
	Seconds      float64
}

// Generator implements slider.ThumbnailProvider. Frames are extracted in
// parallel, at most Workers at a time, and scaled to one pixel per cell
// column and two pixels per row (half-block rendering).
type Generator struct {
	CellWidth int // track cells per thumbnail
	Rows      int // terminal rows per thumbnail
	Workers   int
	Extract   FrameExtractor
	Log       *zap.Logger
}

// NewGenerator returns a Generator that shells out to ffmpegPath.
func NewGenerator(ffmpegPath string, cellWidth, workers int, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		CellWidth: cellWidth,
		Rows:      2,
		Workers:   workers,
		Extract:   FFmpegExtractor(ffmpegPath),
		Log:       log,
	}
}

// Plan splits the track into thumbnail slots. Each slot samples the frame at
// its horizontal centre; the last slot may be narrower.
func Plan(duration, trackWidth float64, cellWidth int) []Slot {
	if duration <= 0 || trackWidth <= 0 || cellWidth <= 0 {
		return nil
	}
	w := float64(cellWidth)
	count := int(math.Ceil(trackWidth / w))
	slots := make([]Slot, 0, count)
	for i := 0; i < count; i++ {
		offset := float64(i) * w
		width := math.Min(w, trackWidth-offset)
		seconds := duration * (offset + width/2) / trackWidth
		// seeking to the very end yields no frame
		seconds = math.Min(seconds, math.Max(duration-0.1, 0))
		slots = append(slots, Slot{Index: i, OffsetPixels: offset, WidthPixels: width, Seconds: seconds})
	}
	return slots
}

// Generate implements slider.ThumbnailProvider. The returned channel is
// closed once every slot has been attempted or ctx is cancelled. Frames that
// fail to extract are logged and skipped.
func (g *Generator) Generate(ctx context.Context, req slider.ThumbnailRequest) (<-chan slider.Thumbnail, error) {
	if g.Extract == nil {
		return nil, errors.New("thumbs: no frame extractor")
	}
	slots := Plan(req.Duration, req.TrackWidth, g.CellWidth)
	out := make(chan slider.Thumbnail, len(slots))

	workers := g.Workers
	if workers < 1 {
		workers = 1
	}
	rows := g.Rows
	if rows < 1 {
		rows = 1
	}
	log := g.Log
	if log == nil {
		log = zap.NewNop()
	}

	go func() {
		defer close(out)
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(workers)
		for _, slot := range slots {
			if egCtx.Err() != nil {
				break
			}
			eg.Go(func() error {
				img, err := g.Extract(egCtx, req.Asset, slot.Seconds)
				if err != nil {
					if egCtx.Err() != nil {
						return egCtx.Err()
					}
					log.Warn("thumbnail frame failed",
						zap.String("asset", req.Asset),
						zap.Float64("seconds", slot.Seconds),
						zap.Error(err))
					return nil
				}
				th := slider.Thumbnail{
					Generation:   req.Generation,
					Index:        slot.Index,
					OffsetPixels: slot.OffsetPixels,
					WidthPixels:  slot.WidthPixels,
					Seconds:      slot.Seconds,
					Image:        Scale(img, int(math.Ceil(slot.WidthPixels)), rows*2),
				}
				select {
				case out <- th:
					return nil
				case <-egCtx.Done():
					return egCtx.Err()
				}
			})
		}
		if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			log.Debug("thumbnail generation stopped", zap.Error(err))
		}
	}()
	return out, nil
}

// Collect runs a request to completion and returns the thumbnails ordered by
// index. Used by the headless thumbs command.
func Collect(ctx context.Context, p slider.ThumbnailProvider, req slider.ThumbnailRequest) ([]slider.Thumbnail, error) {
	ch, err := p.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	var all []slider.Thumbnail
	for th := range ch {
		all = append(all, th)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Index < all[j].Index })
	return all, ctx.Err()
}

// Scale resizes img to exactly width x height pixels.
func Scale(img image.Image, width, height int) image.Image {
	if width < 1 || height < 1 {
		return img
	}
	return resize.Resize(uint(width), uint(height), img, resize.Bilinear)
}

// FFmpegExtractor extracts frames by piping a single PNG out of ffmpeg.
func FFmpegExtractor(ffmpegPath string) FrameExtractor {
	return func(ctx context.Context, asset string, seconds float64) (image.Image, error) {
		args := []string{
			"-v", "error",
			"-ss", timeutil.FormatFFmpeg(seconds),
			"-i", asset,
			"-frames:v", "1",
			"-vf", "scale=160:-2",
			"-f", "image2pipe",
			"-vcodec", "png",
			"-",
		}
		cmd := exec.CommandContext(ctx, ffmpegPath, args...)
		var out, stderr bytes.Buffer
		cmd.Stdout = &out
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			return nil, fmt.Errorf("ffmpeg frame at %s: %w: %s", timeutil.FormatFFmpeg(seconds), err, bytes.TrimSpace(stderr.Bytes()))
		}
		img, err := png.Decode(&out)
		if err != nil {
			return nil, fmt.Errorf("decode frame at %s: %w", timeutil.FormatFFmpeg(seconds), err)
		}
		return img, nil
	}
}
