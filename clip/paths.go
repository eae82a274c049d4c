package clip

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// unsafeChars matches characters not safe for filenames: / \ : * ? < > | and spaces
var unsafeChars = regexp.MustCompile(`[/\\:*?<>|\s]`)

// sanitize replaces unsafe filename characters with underscores.
func sanitize(s string) string {
	return unsafeChars.ReplaceAllString(s, "_")
}

// FormatTimestamp converts seconds to H-MM-SS (hyphens instead of colons for filenames).
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%d-%02d-%02d", h, m, s)
}

// OutputPath returns the export path for a trimmed range:
// {outputDir}/{videoName}_trim_{start}_{end}{ext}. An empty outputDir puts
// the file next to the source video. Stream copies keep the source
// container; re-encodes are written as .mp4.
func OutputPath(videoPath, outputDir string, start, end float64, reencode bool) string {
	if outputDir == "" {
		outputDir = filepath.Dir(videoPath)
	}
	ext := filepath.Ext(videoPath)
	name := sanitize(strings.TrimSuffix(filepath.Base(videoPath), ext))
	if reencode || ext == "" {
		ext = ".mp4"
	}
	filename := fmt.Sprintf("%s_trim_%s_%s%s", name, FormatTimestamp(start), FormatTimestamp(end), strings.ToLower(ext))
	return filepath.Join(outputDir, filename)
}
