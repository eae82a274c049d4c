package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotClaimed is returned by MarkExportProcessing when another worker
// already picked the export up.
var ErrNotClaimed = errors.New("export is no longer pending")

// Timestamps are stored as fixed-width UTC text so they sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// NewExport describes an export to queue.
type NewExport struct {
	VideoPath  string
	Start      float64
	End        float64
	OutputPath string
	Reencode   bool
}

// InsertExport queues an export with a fresh UUID and returns its ID.
func InsertExport(db *sql.DB, e NewExport, createdAt time.Time) (string, error) {
	if e.End <= e.Start {
		return "", fmt.Errorf("insert export: end %.3f is not after start %.3f", e.End, e.Start)
	}
	id := uuid.NewString()
	_, err := db.Exec(InsertExportSQL, id, e.VideoPath, e.Start, e.End, e.OutputPath, e.Reencode, formatTime(createdAt))
	if err != nil {
		return "", fmt.Errorf("insert export: %w", err)
	}
	return id, nil
}

// MarkExportProcessing claims a pending export. Returns ErrNotClaimed if it
// is not pending anymore.
func MarkExportProcessing(db *sql.DB, id string, startedAt time.Time) error {
	res, err := db.Exec(MarkExportProcessingSQL, formatTime(startedAt), id)
	if err != nil {
		return fmt.Errorf("mark export processing: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark export processing: %w", err)
	}
	if n == 0 {
		return ErrNotClaimed
	}
	return nil
}

// MarkExportComplete marks an export complete with the output file size.
func MarkExportComplete(db *sql.DB, id string, finishedAt time.Time, filesize int64) error {
	_, err := db.Exec(MarkExportCompleteSQL, formatTime(finishedAt), filesize, id)
	if err != nil {
		return fmt.Errorf("mark export complete: %w", err)
	}
	return nil
}

// MarkExportError marks an export failed with the given message.
func MarkExportError(db *sql.DB, id string, errorAt time.Time, msg string) error {
	_, err := db.Exec(MarkExportErrorSQL, formatTime(errorAt), msg, id)
	if err != nil {
		return fmt.Errorf("mark export error: %w", err)
	}
	return nil
}

// ResetStaleExports requeues exports left processing by a previous run.
func ResetStaleExports(db *sql.DB) (int64, error) {
	res, err := db.Exec(ResetStaleExportsSQL)
	if err != nil {
		return 0, fmt.Errorf("reset stale exports: %w", err)
	}
	return res.RowsAffected()
}

// DeleteExport removes an export row.
func DeleteExport(db *sql.DB, id string) error {
	if _, err := db.Exec(DeleteExportSQL, id); err != nil {
		return fmt.Errorf("delete export: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExport(row rowScanner) (*Export, error) {
	var (
		e                 Export
		created           string
		started, finished sql.NullString
	)
	err := row.Scan(&e.ID, &e.VideoPath, &e.Start, &e.End, &e.OutputPath, &e.Reencode,
		&e.Status, &e.Error, &e.Filesize, &created, &started, &finished)
	if err != nil {
		return nil, err
	}
	if e.CreatedAt, err = parseTime(created); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if e.StartedAt, err = parseNullTime(started); err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	if e.FinishedAt, err = parseNullTime(finished); err != nil {
		return nil, fmt.Errorf("parse finished_at: %w", err)
	}
	return &e, nil
}

// SelectExportByID returns a single export by ID.
func SelectExportByID(db *sql.DB, id string) (*Export, error) {
	e, err := scanExport(db.QueryRow(SelectExportByIDSQL, id))
	if err != nil {
		return nil, fmt.Errorf("select export %s: %w", id, err)
	}
	return e, nil
}

// SelectNextPendingExport returns the oldest pending export, or nil if the
// queue is empty.
func SelectNextPendingExport(db *sql.DB) (*Export, error) {
	e, err := scanExport(db.QueryRow(SelectNextPendingExportSQL))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select next pending export: %w", err)
	}
	return e, nil
}

// SelectExports returns the most recent exports, newest first. An empty
// videoPath lists exports for every video.
func SelectExports(db *sql.DB, videoPath string, limit int) ([]Export, error) {
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}
	rows, err := db.Query(SelectExportsSQL, videoPath, videoPath, limit)
	if err != nil {
		return nil, fmt.Errorf("select exports: %w", err)
	}
	defer rows.Close()

	var exports []Export
	for rows.Next() {
		e, err := scanExport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan export: %w", err)
		}
		exports = append(exports, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exports: %w", err)
	}
	return exports, nil
}
