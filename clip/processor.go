package clip

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/user/video-trim-cli/db"
)

// RunFunc performs one export. Export is the production implementation.
type RunFunc func(ctx context.Context, ffmpegPath string, job Job, onProgress ProgressFunc) (int64, error)

// Processor is the background export worker. It polls the exports table for
// pending rows and runs them one at a time.
type Processor struct {
	DB         *sql.DB
	FFmpegPath string
	Log        *zap.Logger
	// Interval between polls of an empty queue. Defaults to 2s.
	Interval time.Duration
	// OnUpdate is called after each status change with the fresh row.
	OnUpdate func(db.Export)
	// OnProgress is called with ffmpeg progress for the running export.
	OnProgress func(id string, fraction float64)
	// Run defaults to Export.
	Run RunFunc

	wake chan struct{}
}

func (p *Processor) init() {
	if p.Log == nil {
		p.Log = zap.NewNop()
	}
	if p.Interval <= 0 {
		p.Interval = 2 * time.Second
	}
	if p.Run == nil {
		p.Run = Export
	}
	if p.wake == nil {
		p.wake = make(chan struct{}, 1)
	}
}

// Enqueue records a pending export and wakes the worker.
func (p *Processor) Enqueue(job Job) (string, error) {
	p.init()
	id, err := db.InsertExport(p.DB, db.NewExport{
		VideoPath:  job.VideoPath,
		Start:      job.Start,
		End:        job.End,
		OutputPath: job.OutputPath,
		Reencode:   job.Reencode,
	}, time.Now())
	if err != nil {
		return "", err
	}
	p.Log.Info("export queued",
		zap.String("id", id),
		zap.String("video", job.VideoPath),
		zap.Float64("start", job.Start),
		zap.Float64("end", job.End))
	select {
	case p.wake <- struct{}{}:
	default:
	}
	return id, nil
}

// Start launches a goroutine that continuously polls for pending exports and
// processes them. Exports left processing by a crashed run are requeued
// first. The goroutine exits when ctx is cancelled.
func (p *Processor) Start(ctx context.Context) {
	p.init()
	if n, err := db.ResetStaleExports(p.DB); err != nil {
		p.Log.Warn("failed to requeue stale exports", zap.Error(err))
	} else if n > 0 {
		p.Log.Info("requeued stale exports", zap.Int64("count", n))
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			next, err := db.SelectNextPendingExport(p.DB)
			if err != nil {
				p.Log.Warn("export queue poll failed", zap.Error(err))
			}
			if err != nil || next == nil {
				select {
				case <-ctx.Done():
					return
				case <-p.wake:
				case <-time.After(p.Interval):
				}
				continue
			}

			if err := p.Process(ctx, next); err != nil && !errors.Is(err, db.ErrNotClaimed) {
				p.Log.Warn("export failed", zap.String("id", next.ID), zap.Error(err))
			}
		}
	}()
}

// Process claims and runs a single pending export, recording the outcome.
// The returned error is the export failure, already stored on the row.
func (p *Processor) Process(ctx context.Context, e *db.Export) error {
	p.init()
	if err := db.MarkExportProcessing(p.DB, e.ID, time.Now()); err != nil {
		return err
	}
	p.notify(e.ID)

	job := Job{
		VideoPath:  e.VideoPath,
		Start:      e.Start,
		End:        e.End,
		OutputPath: e.OutputPath,
		Reencode:   e.Reencode,
	}
	started := time.Now()
	size, err := p.Run(ctx, p.FFmpegPath, job, func(f float64) {
		if p.OnProgress != nil {
			p.OnProgress(e.ID, f)
		}
	})
	if err != nil {
		return p.fail(e.ID, err)
	}

	if err := db.MarkExportComplete(p.DB, e.ID, time.Now(), size); err != nil {
		return err
	}
	p.Log.Info("export complete",
		zap.String("id", e.ID),
		zap.String("output", e.OutputPath),
		zap.Int64("bytes", size),
		zap.Duration("took", time.Since(started)))
	p.notify(e.ID)
	return nil
}

func (p *Processor) fail(id string, cause error) error {
	if err := db.MarkExportError(p.DB, id, time.Now(), cause.Error()); err != nil {
		p.Log.Error("failed to record export error", zap.String("id", id), zap.Error(err))
	}
	p.notify(id)
	return cause
}

func (p *Processor) notify(id string) {
	if p.OnUpdate == nil {
		return
	}
	e, err := db.SelectExportByID(p.DB, id)
	if err != nil {
		p.Log.Warn("failed to reload export", zap.String("id", id), zap.Error(err))
		return
	}
	p.OnUpdate(*e)
}
