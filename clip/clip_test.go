package clip

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/video-trim-cli/db"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name      string
		video     string
		outputDir string
		start     float64
		end       float64
		reencode  bool
		want      string
	}{
		{"next to source", "/videos/Match Day.MKV", "", 62, 3725.5, false, "/videos/Match_Day_trim_0-01-02_1-02-05.mkv"},
		{"custom dir reencode", "/videos/game.mov", "/tmp/out", 0, 15, true, "/tmp/out/game_trim_0-00-00_0-00-15.mp4"},
		{"no extension", "/videos/raw", "", 1, 2, false, "/videos/raw_trim_0-00-01_0-00-02.mp4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(tt.want), OutputPath(tt.video, tt.outputDir, tt.start, tt.end, tt.reencode))
		})
	}
}

func TestIsVideoFile(t *testing.T) {
	for _, p := range []string{"a.mp4", "/x/y/B.MOV", "clip.webm", "match.mkv", "cam.MTS"} {
		assert.True(t, IsVideoFile(p), p)
	}
	for _, p := range []string{"notes.txt", "mp4", "/x/video.mp4/readme", "archive.mp4.zip", ""} {
		assert.False(t, IsVideoFile(p), p)
	}
}

func TestJobValidate(t *testing.T) {
	ok := Job{VideoPath: "in.mp4", OutputPath: "out.mp4", Start: 1, End: 2}
	assert.NoError(t, ok.Validate())

	bad := []Job{
		{OutputPath: "out.mp4", Start: 1, End: 2},
		{VideoPath: "in.mp4", Start: 1, End: 2},
		{VideoPath: "in.mp4", OutputPath: "out.mp4", Start: -1, End: 2},
		{VideoPath: "in.mp4", OutputPath: "out.mp4", Start: 2, End: 2},
		{VideoPath: "in.mp4", OutputPath: "./in.mp4", Start: 1, End: 2},
	}
	for _, j := range bad {
		assert.Error(t, j.Validate(), "%+v", j)
	}
}

func TestJobArgs(t *testing.T) {
	copyArgs := Job{VideoPath: "in.mp4", OutputPath: "out.mp4", Start: 10, End: 25.5}.Args()
	assert.Equal(t, []string{
		"-y", "-v", "error", "-nostats", "-progress", "pipe:1",
		"-ss", "10.000", "-i", "in.mp4", "-t", "15.500",
		"-c", "copy", "-avoid_negative_ts", "make_zero",
		"out.mp4",
	}, copyArgs)

	encodeArgs := Job{VideoPath: "in.mp4", OutputPath: "out.mp4", Start: 0, End: 1, Reencode: true}.Args()
	assert.Contains(t, strings.Join(encodeArgs, " "), "-c:v libx264 -preset fast -c:a aac out.mp4")
}

func TestParseProgressLine(t *testing.T) {
	f, ok := parseProgressLine("out_time_us=5000000", 10)
	assert.True(t, ok)
	assert.InDelta(t, 0.5, f, 1e-9)

	f, ok = parseProgressLine("out_time_ms=20000000", 10)
	assert.True(t, ok)
	assert.Equal(t, 1.0, f)

	f, ok = parseProgressLine("progress=end", 10)
	assert.True(t, ok)
	assert.Equal(t, 1.0, f)

	for _, line := range []string{"progress=continue", "frame=12", "out_time_us=N/A", "garbage"} {
		_, ok := parseProgressLine(line, 10)
		assert.False(t, ok, line)
	}
	_, ok = parseProgressLine("out_time_us=1", 0)
	assert.False(t, ok)
}

func TestReadProgress(t *testing.T) {
	var got []float64
	readProgress(strings.NewReader("frame=1\nout_time_us=1000000\nout_time_us=3000000\nprogress=end\n"), 4, func(f float64) {
		got = append(got, f)
	})
	assert.Equal(t, []float64{0.25, 0.75, 1}, got)
}

func newProcessor(t *testing.T, run RunFunc) (*Processor, *recorder) {
	t.Helper()
	database, err := db.OpenPath(filepath.Join(t.TempDir(), "data.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	rec := &recorder{}
	p := &Processor{
		DB:         database,
		FFmpegPath: "ffmpeg",
		Interval:   10 * time.Millisecond,
		Run:        run,
		OnUpdate:   rec.update,
		OnProgress: rec.progress,
	}
	return p, rec
}

type recorder struct {
	mu        sync.Mutex
	statuses  []string
	fractions []float64
}

func (r *recorder) update(e db.Export) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, e.Status)
}

func (r *recorder) progress(_ string, f float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fractions = append(r.fractions, f)
}

func (r *recorder) snapshot() ([]string, []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.statuses...), append([]float64(nil), r.fractions...)
}

func TestProcessorCompletesExport(t *testing.T) {
	var gotJob Job
	p, rec := newProcessor(t, func(_ context.Context, ffmpeg string, job Job, onProgress ProgressFunc) (int64, error) {
		gotJob = job
		onProgress(0.5)
		onProgress(1)
		return 4096, nil
	})

	id, err := p.Enqueue(Job{VideoPath: "in.mp4", OutputPath: "out.mp4", Start: 3, End: 9, Reencode: true})
	require.NoError(t, err)
	e, err := db.SelectExportByID(p.DB, id)
	require.NoError(t, err)

	require.NoError(t, p.Process(context.Background(), e))

	assert.Equal(t, Job{VideoPath: "in.mp4", OutputPath: "out.mp4", Start: 3, End: 9, Reencode: true}, gotJob)
	statuses, fractions := rec.snapshot()
	assert.Equal(t, []string{db.StatusProcessing, db.StatusComplete}, statuses)
	assert.Equal(t, []float64{0.5, 1}, fractions)

	done, err := db.SelectExportByID(p.DB, id)
	require.NoError(t, err)
	assert.Equal(t, int64(4096), done.Filesize)
}

func TestProcessorRecordsFailure(t *testing.T) {
	p, rec := newProcessor(t, func(context.Context, string, Job, ProgressFunc) (int64, error) {
		return 0, errors.New("ffmpeg failed: invalid data")
	})

	id, err := p.Enqueue(Job{VideoPath: "in.mp4", OutputPath: "out.mp4", Start: 0, End: 1})
	require.NoError(t, err)
	e, err := db.SelectExportByID(p.DB, id)
	require.NoError(t, err)

	assert.EqualError(t, p.Process(context.Background(), e), "ffmpeg failed: invalid data")

	statuses, _ := rec.snapshot()
	assert.Equal(t, []string{db.StatusProcessing, db.StatusError}, statuses)
	failed, err := db.SelectExportByID(p.DB, id)
	require.NoError(t, err)
	assert.Equal(t, "ffmpeg failed: invalid data", failed.Error)

	assert.ErrorIs(t, p.Process(context.Background(), e), db.ErrNotClaimed)
}

func TestProcessorWorkerDrainsQueue(t *testing.T) {
	p, _ := newProcessor(t, func(context.Context, string, Job, ProgressFunc) (int64, error) {
		return 1, nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := p.Enqueue(Job{VideoPath: "in.mp4", OutputPath: "out.mp4", Start: float64(i), End: float64(i + 1)})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	assert.Eventually(t, func() bool {
		for _, id := range ids {
			e, err := db.SelectExportByID(p.DB, id)
			if err != nil || e.Status != db.StatusComplete {
				return false
			}
		}
		return true
	}, 3*time.Second, 20*time.Millisecond)
}
