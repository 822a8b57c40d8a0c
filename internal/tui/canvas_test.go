package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestCanvas_TextClips(t *testing.T) {
	cv := newCanvas(6, 2, lipgloss.NewStyle())
	style := lipgloss.NewStyle().Bold(true)

	cv.text(3, 0, "hello", &style)
	cv.text(-2, 1, "abcd", &style)
	cv.set(10, 10, 'x', &style)

	lines := strings.Split(xansi.Strip(cv.String()), "\n")
	assert.Equal(t, []string{"   hel", "cd    "}, lines)
}

func TestCanvas_Box(t *testing.T) {
	cv := newCanvas(6, 4, lipgloss.NewStyle())
	style := lipgloss.NewStyle()

	cv.box(rect{x: 1, y: 0, w: 4, h: 3}, lipgloss.RoundedBorder(), &style, &style)

	lines := strings.Split(xansi.Strip(cv.String()), "\n")
	assert.Equal(t, []string{
		" ╭──╮ ",
		" │  │ ",
		" ╰──╯ ",
		"      ",
	}, lines)
}

func TestCanvas_LaterDrawsCover(t *testing.T) {
	cv := newCanvas(5, 3, lipgloss.NewStyle())
	style := lipgloss.NewStyle()

	cv.text(0, 1, "xxxxx", &style)
	cv.box(rect{x: 1, y: 0, w: 3, h: 3}, lipgloss.NormalBorder(), &style, &style)

	lines := strings.Split(xansi.Strip(cv.String()), "\n")
	assert.Equal(t, "x│ │x", lines[1])
}

func TestRect_Contains(t *testing.T) {
	r := rect{x: 2, y: 3, w: 4, h: 2}

	assert.True(t, r.contains(2, 3))
	assert.True(t, r.contains(5, 4))
	assert.False(t, r.contains(6, 4), "right edge is exclusive")
	assert.False(t, r.contains(2, 5), "bottom edge is exclusive")
	assert.False(t, r.contains(1, 3))
}
