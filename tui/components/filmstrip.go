package components

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/video-trim-cli/slider"
	"github.com/user/video-trim-cli/tui/styles"
)

// halfBlock draws two vertical pixels per cell: foreground on top,
// background below.
const halfBlock = "▀"

// Filmstrip renders thumbnails as rows lines of width cells. Each cell shows
// two image pixels using the upper half block. Cells without a thumbnail are
// left blank.
func Filmstrip(thumbs []slider.Thumbnail, width, rows int) []string {
	if width <= 0 || rows <= 0 {
		return nil
	}

	// owner[c] is the thumbnail covering cell c
	owner := make([]*slider.Thumbnail, width)
	for i := range thumbs {
		th := &thumbs[i]
		if th.Image == nil {
			continue
		}
		from := int(th.OffsetPixels)
		to := int(th.OffsetPixels + th.WidthPixels)
		for c := max(from, 0); c < to && c < width; c++ {
			owner[c] = th
		}
	}

	blank := lipgloss.NewStyle().Background(styles.DarkPurple).Render(" ")
	lines := make([]string, rows)
	for r := 0; r < rows; r++ {
		var b strings.Builder
		for c := 0; c < width; c++ {
			th := owner[c]
			if th == nil {
				b.WriteString(blank)
				continue
			}
			x := c - int(th.OffsetPixels)
			top := pixel(th.Image, x, 2*r)
			bottom := pixel(th.Image, x, 2*r+1)
			b.WriteString(lipgloss.NewStyle().
				Foreground(top).
				Background(bottom).
				Render(halfBlock))
		}
		lines[r] = b.String()
	}
	return lines
}

// pixel returns the colour at (x, y) relative to the image origin, clamped
// to the image bounds.
func pixel(img image.Image, x, y int) lipgloss.Color {
	b := img.Bounds()
	x = min(max(b.Min.X+x, b.Min.X), b.Max.X-1)
	y = min(max(b.Min.Y+y, b.Min.Y), b.Max.Y-1)
	return hexColor(img.At(x, y))
}

func hexColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}
