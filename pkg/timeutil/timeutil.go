package timeutil

import (
	"fmt"
	"math"
	"strings"
)

// FormatSeconds formats a slider time label: H:MM:SS from one hour up,
// MM:SS below. Components are truncated, not rounded, and hours wrap at one day.
func FormatSeconds(totalSeconds float64) string {
	if totalSeconds < 0 || math.IsNaN(totalSeconds) || math.IsInf(totalSeconds, 0) {
		totalSeconds = 0
	}
	hours := int(math.Mod(totalSeconds, 86400) / 3600)
	minutes := int(math.Mod(totalSeconds, 3600) / 60)
	seconds := int(math.Mod(totalSeconds, 60))

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// FormatTime formats seconds as H:MM:SS (e.g. 0:01:30, 1:11:22).
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalSeconds := int(seconds)
	hours := totalSeconds / 3600
	mins := (totalSeconds % 3600) / 60
	secs := totalSeconds % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
}

// FormatFFmpeg formats seconds with millisecond precision for ffmpeg -ss/-t.
func FormatFFmpeg(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%.3f", seconds)
}

// ParseTimeToSeconds parses a time string in HH:MM:SS, MM:SS, or raw seconds format.
// Uses colon count: 2 colons = H:M:S, 1 colon = M:S, 0 colons = raw seconds.
// The seconds field may carry a fraction (1:02.5).
func ParseTimeToSeconds(timeStr string) (float64, error) {
	timeStr = strings.TrimSpace(timeStr)
	colons := strings.Count(timeStr, ":")

	switch colons {
	case 2:
		var hours, minutes int
		var seconds float64
		if n, err := fmt.Sscanf(timeStr, "%d:%d:%f", &hours, &minutes, &seconds); n == 3 && err == nil && validClock(minutes, seconds) {
			return float64(hours*3600+minutes*60) + seconds, nil
		}
	case 1:
		var minutes int
		var seconds float64
		if n, err := fmt.Sscanf(timeStr, "%d:%f", &minutes, &seconds); n == 2 && err == nil && minutes >= 0 && seconds >= 0 && seconds < 60 {
			return float64(minutes*60) + seconds, nil
		}
	case 0:
		var secs float64
		if n, err := fmt.Sscanf(timeStr, "%f", &secs); n == 1 && err == nil && secs >= 0 {
			return secs, nil
		}
	}

	return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got '%s'", timeStr)
}

func validClock(minutes int, seconds float64) bool {
	return minutes >= 0 && minutes < 60 && seconds >= 0 && seconds < 60
}
