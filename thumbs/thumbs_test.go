package thumbs

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/video-trim-cli/slider"
)

func solid(c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 32, 18))
	for y := 0; y < 18; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestPlan(t *testing.T) {
	slots := Plan(100, 20, 8)
	require.Len(t, slots, 3)

	assert.Equal(t, Slot{Index: 0, OffsetPixels: 0, WidthPixels: 8, Seconds: 20}, slots[0])
	assert.Equal(t, Slot{Index: 1, OffsetPixels: 8, WidthPixels: 8, Seconds: 60}, slots[1])
	assert.Equal(t, 16.0, slots[2].OffsetPixels)
	assert.Equal(t, 4.0, slots[2].WidthPixels)
	assert.InDelta(t, 90.0, slots[2].Seconds, 1e-9)
}

func TestPlanClampsToEnd(t *testing.T) {
	slots := Plan(0.05, 4, 8)
	require.Len(t, slots, 1)
	assert.Equal(t, 0.0, slots[0].Seconds)
}

func TestPlanEmptyInputs(t *testing.T) {
	assert.Nil(t, Plan(0, 20, 8))
	assert.Nil(t, Plan(100, 0, 8))
	assert.Nil(t, Plan(100, 20, 0))
}

func TestParseProbe(t *testing.T) {
	d, err := parseProbe([]byte(`{"format":{"duration":"312.480000"}}`))
	require.NoError(t, err)
	assert.InDelta(t, 312.48, d, 1e-9)

	_, err = parseProbe([]byte(`{"format":{}}`))
	assert.Error(t, err)
	_, err = parseProbe([]byte(`not json`))
	assert.Error(t, err)
}

func TestGenerateDeliversScaledFrames(t *testing.T) {
	var mu sync.Mutex
	var seen []float64
	g := &Generator{
		CellWidth: 5,
		Rows:      2,
		Workers:   2,
		Extract: func(_ context.Context, asset string, seconds float64) (image.Image, error) {
			mu.Lock()
			seen = append(seen, seconds)
			mu.Unlock()
			return solid(color.RGBA{R: 200, A: 255}), nil
		},
	}

	req := slider.ThumbnailRequest{Asset: "a.mp4", Duration: 40, TrackWidth: 20, Generation: 7}
	all, err := Collect(context.Background(), g, req)
	require.NoError(t, err)
	require.Len(t, all, 4)

	for i, th := range all {
		assert.Equal(t, i, th.Index)
		assert.Equal(t, uint64(7), th.Generation)
		assert.Equal(t, image.Rect(0, 0, 5, 4), th.Image.Bounds())
	}
	assert.ElementsMatch(t, []float64{5, 15, 25, 35}, seen)
}

func TestGenerateSkipsFailedFrames(t *testing.T) {
	g := &Generator{
		CellWidth: 10,
		Workers:   1,
		Extract: func(_ context.Context, _ string, seconds float64) (image.Image, error) {
			if seconds > 10 {
				return nil, errors.New("corrupt frame")
			}
			return solid(color.White), nil
		},
	}

	all, err := Collect(context.Background(), g, slider.ThumbnailRequest{Asset: "a.mp4", Duration: 20, TrackWidth: 20})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 0, all[0].Index)
}

func TestGenerateRespectsWorkerLimit(t *testing.T) {
	var running, peak int32
	g := &Generator{
		CellWidth: 1,
		Workers:   3,
		Extract: func(_ context.Context, _ string, _ float64) (image.Image, error) {
			n := atomic.AddInt32(&running, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&running, -1)
			return solid(color.Black), nil
		},
	}

	all, err := Collect(context.Background(), g, slider.ThumbnailRequest{Asset: "a.mp4", Duration: 60, TrackWidth: 12})
	require.NoError(t, err)
	assert.Len(t, all, 12)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
}

func TestGenerateStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	g := &Generator{
		CellWidth: 1,
		Workers:   1,
		Extract: func(ctx context.Context, _ string, _ float64) (image.Image, error) {
			cancel()
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}

	ch, err := g.Generate(ctx, slider.ThumbnailRequest{Asset: "a.mp4", Duration: 60, TrackWidth: 50})
	require.NoError(t, err)

	done := make(chan int)
	go func() {
		n := 0
		for range ch {
			n++
		}
		done <- n
	}()
	select {
	case n := <-done:
		assert.Equal(t, 0, n)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestGenerateWithoutExtractor(t *testing.T) {
	_, err := (&Generator{}).Generate(context.Background(), slider.ThumbnailRequest{})
	assert.Error(t, err)
}
