package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-constellation/internal/starfield"
)

// A terminal cell stands in for a block of pixels so the starfield can keep
// its pixel-unit geometry.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

const (
	glyphMeteorHead = '•'
	glyphStarSmall  = '·'
	glyphStarLarge  = '∗'
	glyphStarGold   = '✦'
)

type cell struct {
	ch   rune
	fg   colorful.Color
	bg   colorful.Color
	bold bool
}

// Canvas is a grid of styled terminal cells. It implements
// starfield.Surface and starfield.Resizable.
type Canvas struct {
	cols, rows int
	cells      []cell
}

var (
	_ starfield.Surface   = (*Canvas)(nil)
	_ starfield.Resizable = (*Canvas)(nil)
)

// NewCanvas returns a blank cols x rows canvas.
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.resizeCells(cols, rows)
	return c
}

func (c *Canvas) resizeCells(cols, rows int) {
	c.cols, c.rows = max(cols, 0), max(rows, 0)
	c.cells = make([]cell, c.cols*c.rows)
	c.Clear()
}

// Cols returns the width in cells.
func (c *Canvas) Cols() int { return c.cols }

// Rows returns the height in cells.
func (c *Canvas) Rows() int { return c.rows }

// Size reports the canvas size in pixels.
func (c *Canvas) Size() (float64, float64) {
	return float64(c.cols) * CellWidth, float64(c.rows) * CellHeight
}

// Resize fits the canvas to a pixel viewport.
func (c *Canvas) Resize(width, height float64) {
	cols := int(width / CellWidth)
	rows := int(height / CellHeight)
	if cols == c.cols && rows == c.rows {
		return
	}
	c.resizeCells(cols, rows)
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = cell{ch: ' '}
	}
}

// FillRadialGradient paints every cell's background by its pixel distance
// from (cx, cy), blending inner to outer over radius.
func (c *Canvas) FillRadialGradient(cx, cy, radius float64, inner, outer string) {
	in, out := parseHex(inner), parseHex(outer)
	for row := range c.rows {
		for col := range c.cols {
			px := (float64(col) + 0.5) * CellWidth
			py := (float64(row) + 0.5) * CellHeight
			t := 1.0
			if radius > 0 {
				t = math.Min(math.Hypot(px-cx, py-cy)/radius, 1)
			}
			c.cells[row*c.cols+col].bg = in.BlendRgb(out, t)
		}
	}
}

// DrawStar plots a background star, blended against the cell background by
// the star's alpha.
func (c *Canvas) DrawStar(s starfield.Star) {
	col, row, ok := c.cellAt(s.X, s.Y)
	if !ok {
		return
	}
	ch := glyphStarSmall
	switch {
	case strings.EqualFold(s.Color, starfield.GoldColor):
		ch = glyphStarGold
	case s.Size >= 1.5:
		ch = glyphStarLarge
	}
	cl := &c.cells[row*c.cols+col]
	cl.ch = ch
	cl.fg = cl.bg.BlendRgb(parseHex(s.Color), s.Alpha()).Clamped()
}

// DrawMeteor draws a streak from the meteor's tail to its head, brightening
// toward the head.
func (c *Canvas) DrawMeteor(m starfield.Meteor) {
	tx, ty := m.Tail()
	steps := int(math.Max(math.Abs(m.X-tx)/CellWidth, math.Abs(m.Y-ty)/CellHeight))
	steps = max(steps, 1)

	trail := '╲'
	if (m.VX < 0) != (m.VY < 0) {
		trail = '╱'
	}
	white := parseHex("#ffffff")

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		col, row, ok := c.cellAt(tx+(m.X-tx)*t, ty+(m.Y-ty)*t)
		if !ok {
			continue
		}
		cl := &c.cells[row*c.cols+col]
		cl.ch = trail
		if i == steps {
			cl.ch = glyphMeteorHead
		}
		cl.fg = cl.bg.BlendRgb(white, m.Opacity*t).Clamped()
	}
}

// Present is a no-op; a Canvas is read back with Render.
func (c *Canvas) Present() {}

func (c *Canvas) cellAt(x, y float64) (int, int, bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row := int(x/CellWidth), int(y/CellHeight)
	if col >= c.cols || row >= c.rows {
		return 0, 0, false
	}
	return col, row, true
}

// Set writes a glyph into a cell, keeping its background. Out-of-range
// cells are ignored.
func (c *Canvas) Set(col, row int, ch rune, fg string) {
	c.set(col, row, ch, fg, false)
}

// SetBold is Set with a bold glyph.
func (c *Canvas) SetBold(col, row int, ch rune, fg string) {
	c.set(col, row, ch, fg, true)
}

func (c *Canvas) set(col, row int, ch rune, fg string, bold bool) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return
	}
	cl := &c.cells[row*c.cols+col]
	cl.ch = ch
	cl.fg = parseHex(fg)
	cl.bold = bold
}

// SetText writes s left to right starting at (col, row), clipped to the row.
func (c *Canvas) SetText(col, row int, s, fg string) {
	for i, r := range []rune(s) {
		c.Set(col+i, row, r, fg)
	}
}

// Rune returns the glyph at a cell, or 0 outside the canvas.
func (c *Canvas) Rune(col, row int) rune {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return 0
	}
	return c.cells[row*c.cols+col].ch
}

// Clone returns an independent copy.
func (c *Canvas) Clone() *Canvas {
	out := &Canvas{cols: c.cols, rows: c.rows, cells: make([]cell, len(c.cells))}
	copy(out.cells, c.cells)
	return out
}

// Render styles the grid for the terminal. Runs of cells sharing a style
// are rendered together.
func (c *Canvas) Render() string {
	var b strings.Builder
	for row := range c.rows {
		line := c.cells[row*c.cols : (row+1)*c.cols]
		start := 0
		for i := 1; i <= len(line); i++ {
			if i < len(line) && sameStyle(line[i], line[start]) {
				continue
			}
			b.WriteString(styleFor(line[start]).Render(runString(line[start:i])))
			start = i
		}
		if row < c.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func sameStyle(a, b cell) bool {
	return a.fg.Hex() == b.fg.Hex() && a.bg.Hex() == b.bg.Hex() && a.bold == b.bold
}

func styleFor(cl cell) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(cl.fg.Hex())).
		Background(lipgloss.Color(cl.bg.Hex())).
		Bold(cl.bold)
}

func runString(cells []cell) string {
	rs := make([]rune, len(cells))
	for i, cl := range cells {
		rs[i] = cl.ch
	}
	return string(rs)
}

// parseHex falls back to black for malformed colours.
func parseHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}
	}
	return c
}
