package clip

import (
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// VideoPattern lists the container extensions mpv and ffmpeg handle here.
const VideoPattern = "*.{mp4,m4v,mov,mkv,webm,avi,mpg,mpeg,ts,mts,flv,wmv}"

var videoGlob = glob.MustCompile(VideoPattern)

// IsVideoFile reports whether path has a known video extension (case-insensitive).
func IsVideoFile(path string) bool {
	return videoGlob.Match(strings.ToLower(filepath.Base(path)))
}
