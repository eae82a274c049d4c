package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/video-trim-cli/slider"
)

func TestResolveVideo(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "Match.MP4")
	require.NoError(t, os.WriteFile(video, nil, 0o644))
	notes := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notes, nil, 0o644))

	got, err := resolveVideo(video)
	require.NoError(t, err)
	assert.Equal(t, video, got)

	_, err = resolveVideo(filepath.Join(dir, "missing.mp4"))
	assert.ErrorContains(t, err, "video file not found")

	_, err = resolveVideo(dir)
	assert.ErrorContains(t, err, "is a directory")

	_, err = resolveVideo(notes)
	assert.ErrorContains(t, err, "not a recognised video file")
}

func TestRulerSkipsCrowdedLabels(t *testing.T) {
	strip := []slider.Thumbnail{
		{OffsetPixels: 0, Seconds: 0},
		{OffsetPixels: 4, Seconds: 30},
		{OffsetPixels: 8, Seconds: 60},
		{OffsetPixels: 16, Seconds: 90},
	}

	assert.Equal(t, "|00:00  |01:00  |01:30", ruler(strip, 22))
}

func TestShortPath(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("out", "a.mp4"), shortPath(filepath.Join(wd, "out", "a.mp4")))
	assert.Equal(t, "/elsewhere/a.mp4", shortPath("/elsewhere/a.mp4"))
}
