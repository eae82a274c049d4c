package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00:00"},
		{59.99, "00:59"},
		{61, "01:01"},
		{3599.9, "59:59"},
		{3600, "1:00:00"},
		{3723.7, "1:02:03"},
		{86400 + 65, "01:05"},
		{-5, "00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSeconds(tt.in), "FormatSeconds(%v)", tt.in)
	}
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "0:01:30", FormatTime(90))
	assert.Equal(t, "1:11:22", FormatTime(4282))
	assert.Equal(t, "0:00:00", FormatTime(-1))
}

func TestFormatFFmpeg(t *testing.T) {
	assert.Equal(t, "12.500", FormatFFmpeg(12.5))
	assert.Equal(t, "0.000", FormatFFmpeg(-3))
}

func TestParseTimeToSeconds(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1:02:03", 3723},
		{"02:30", 150},
		{"1:02.5", 62.5},
		{"90", 90},
		{" 12.25 ", 12.25},
	}
	for _, tt := range tests {
		got, err := ParseTimeToSeconds(tt.in)
		require.NoError(t, err, tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, tt.in)
	}
}

func TestParseTimeToSecondsRejects(t *testing.T) {
	for _, in := range []string{"", "abc", "1:2:3:4", "1:75", "-4", "0:61:00"} {
		_, err := ParseTimeToSeconds(in)
		assert.Error(t, err, in)
	}
}
