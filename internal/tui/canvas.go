package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// rect is a cell rectangle on the canvas.
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

type cell struct {
	r     rune
	style *lipgloss.Style
}

// canvas is a fixed-size grid of styled cells. Slides are composited onto it
// back to front, then it is flattened into one string per row.
type canvas struct {
	w, h  int
	cells [][]cell
	base  lipgloss.Style
}

func newCanvas(w, h int, base lipgloss.Style) *canvas {
	cells := make([][]cell, h)
	for y := range cells {
		row := make([]cell, w)
		for x := range row {
			row[x] = cell{r: ' '}
		}
		cells[y] = row
	}
	return &canvas{w: w, h: h, cells: cells, base: base}
}

// set writes one cell, silently clipping outside the canvas.
func (c *canvas) set(x, y int, r rune, style *lipgloss.Style) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = cell{r: r, style: style}
}

// text writes s starting at (x, y) on a single row.
func (c *canvas) text(x, y int, s string, style *lipgloss.Style) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r, style)
	}
}

// fill paints every cell of r with ch.
func (c *canvas) fill(r rect, ch rune, style *lipgloss.Style) {
	for y := r.y; y < r.y+r.h; y++ {
		for x := r.x; x < r.x+r.w; x++ {
			c.set(x, y, ch, style)
		}
	}
}

// box draws a border around r and clears its interior.
func (c *canvas) box(r rect, b lipgloss.Border, borderStyle, fillStyle *lipgloss.Style) {
	if r.w < 2 || r.h < 2 {
		return
	}
	c.fill(rect{r.x + 1, r.y + 1, r.w - 2, r.h - 2}, ' ', fillStyle)

	right, bottom := r.x+r.w-1, r.y+r.h-1
	for x := r.x + 1; x < right; x++ {
		c.set(x, r.y, firstRune(b.Top), borderStyle)
		c.set(x, bottom, firstRune(b.Bottom), borderStyle)
	}
	for y := r.y + 1; y < bottom; y++ {
		c.set(r.x, y, firstRune(b.Left), borderStyle)
		c.set(right, y, firstRune(b.Right), borderStyle)
	}
	c.set(r.x, r.y, firstRune(b.TopLeft), borderStyle)
	c.set(right, r.y, firstRune(b.TopRight), borderStyle)
	c.set(r.x, bottom, firstRune(b.BottomLeft), borderStyle)
	c.set(right, bottom, firstRune(b.BottomRight), borderStyle)
}

// String renders the grid, grouping consecutive cells that share a style.
// Unset style properties fall back to the canvas base style.
func (c *canvas) String() string {
	var sb strings.Builder
	var run strings.Builder

	for y, row := range c.cells {
		var current *lipgloss.Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			st := c.base
			if current != nil {
				st = current.Inherit(c.base)
			}
			sb.WriteString(st.Render(run.String()))
			run.Reset()
		}

		for x, cl := range row {
			if x > 0 && cl.style != current {
				flush()
			}
			current = cl.style
			run.WriteRune(cl.r)
		}
		flush()

		if y < len(c.cells)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return ' '
}
