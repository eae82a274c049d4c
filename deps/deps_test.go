package deps

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckMissingBinary(t *testing.T) {
	err := CheckFfmpeg(filepath.Join(t.TempDir(), "no-such-ffmpeg"))
	require.Error(t, err)

	var depErr *DependencyError
	require.True(t, errors.As(err, &depErr))
	assert.Equal(t, "ffmpeg", depErr.Name)
	assert.Equal(t, FfmpegInstallURL, depErr.InstallURL)
	assert.Contains(t, err.Error(), "no-such-ffmpeg")
}

func TestCheckExecutableByPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix executable bit")
	}
	bin := filepath.Join(t.TempDir(), "ffprobe")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\nexit 0\n"), 0o755))

	s := Check(Tool{Name: "ffprobe", Binary: bin, InstallURL: FfmpegInstallURL})
	assert.NoError(t, s.Err)
	assert.Equal(t, bin, s.Path)
	assert.NoError(t, CheckFfprobe(bin))
}

func TestToolsDefaultsAndMissing(t *testing.T) {
	tools := Tools("", "/custom/ffprobe")
	require.Len(t, tools, 3)
	assert.Equal(t, "mpv", tools[0].Binary)
	assert.Equal(t, "ffmpeg", tools[1].Binary)
	assert.Equal(t, "/custom/ffprobe", tools[2].Binary)

	statuses := []Status{
		{Tool: tools[0], Path: "/usr/bin/mpv"},
		{Tool: tools[2], Err: &DependencyError{Name: "ffprobe"}},
	}
	missing := Missing(statuses)
	require.Len(t, missing, 1)
	assert.EqualError(t, missing[0], "ffprobe not found. Install from: ")
}
