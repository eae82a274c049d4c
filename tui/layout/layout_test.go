package layout

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeColumnWidths(t *testing.T) {
	left, right, split := ComputeColumnWidths(80)
	assert.False(t, split)
	assert.Equal(t, 80, left)
	assert.Equal(t, 80, right)

	left, right, split = ComputeColumnWidths(121)
	assert.True(t, split)
	assert.Equal(t, 48, left)
	assert.Equal(t, 72, right)
	assert.Equal(t, 120, left+right)
}

func TestPadToWidth(t *testing.T) {
	assert.Equal(t, "ab  ", PadToWidth("ab", 4))
	assert.Equal(t, "abc", PadToWidth("abcdef", 3))
	assert.Equal(t, "", PadToWidth("abc", 0))
	assert.Equal(t, 4, lipgloss.Width(PadToWidth("日本語", 4)))
}

func TestNormalizeLines(t *testing.T) {
	in := []string{"a", "b", "c"}
	assert.Equal(t, []string{"a", "b"}, NormalizeLines(in, 2))
	assert.Equal(t, []string{"a", "b", "c", ""}, NormalizeLines(in, 4))
	assert.Empty(t, NormalizeLines(in, -1))
}

func TestJoinColumns(t *testing.T) {
	out := ansi.Strip(JoinColumns(
		Column{Content: "a\nb\nc", Width: 3},
		Column{Content: "x", Width: 2},
	))

	assert.Equal(t, "a  │x \nb  │  \nc  │  ", out)
}

func TestContainerPadsToBox(t *testing.T) {
	out := Container{Width: 4, Height: 3}.Render("ab\ncdefg")

	assert.Equal(t, "ab  \ncdef\n    ", out)
}

func TestContainerKeepsFooter(t *testing.T) {
	content := strings.Join([]string{"status", "track", "panel1", "panel2", "panel3", "controls"}, "\n")

	lines := strings.Split(ansi.Strip(Container{Width: 10, Height: 4, Footer: 1}.Render(content)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "status    ", lines[0])
	assert.Equal(t, "track     ", lines[1])
	assert.Equal(t, "↓ 3 more  ", lines[2])
	assert.Equal(t, "controls  ", lines[3])
}

func TestContainerEmpty(t *testing.T) {
	assert.Empty(t, Container{Width: 0, Height: 5}.Render("x"))
}
