package chart

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/litescript/ls-constellation/internal/astro"
)

// ASCIIConfig sizes the plain chart.
type ASCIIConfig struct {
	Width  int
	Height int
	Labels bool
}

// DefaultASCIIConfig fits a standard 80-column terminal.
func DefaultASCIIConfig() ASCIIConfig {
	return ASCIIConfig{Width: 60, Height: 20, Labels: true}
}

// WriteASCII draws c as plain text: edges as dots, clickable stars as '@'
// with their section, other stars as '*' or '+' by brightness.
func WriteASCII(w io.Writer, c astro.Constellation, cfg ASCIIConfig) {
	if cfg.Width < 10 || cfg.Height < 5 {
		cfg = DefaultASCIIConfig()
	}
	grid := make([][]rune, cfg.Height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", cfg.Width))
	}
	put := func(x, y int, r rune) {
		if y >= 0 && y < cfg.Height && x >= 0 && x < cfg.Width {
			grid[y][x] = r
		}
	}

	positions := astro.ScreenPositions(c)
	cell := func(id string) (int, int, bool) {
		p, ok := positions[id]
		if !ok {
			return 0, 0, false
		}
		x, y := p.ToCell(cfg.Width, cfg.Height)
		return x, y, true
	}

	for _, e := range c.Edges {
		x0, y0, ok0 := cell(e.From)
		x1, y1, ok1 := cell(e.To)
		if !ok0 || !ok1 {
			continue
		}
		steps := max(absInt(x1-x0), absInt(y1-y0))
		for i := 1; i < steps; i++ {
			t := float64(i) / float64(steps)
			put(x0+int(math.Round(float64(x1-x0)*t)), y0+int(math.Round(float64(y1-y0)*t)), '.')
		}
	}

	for _, s := range c.Stars {
		x, y, ok := cell(s.ID)
		if !ok {
			continue
		}
		switch {
		case s.Clickable:
			put(x, y, '@')
			if cfg.Labels {
				for i, r := range s.Section {
					put(x+2+i, y, r)
				}
			}
		case s.Mag < 3:
			put(x, y, '*')
		default:
			put(x, y, '+')
		}
	}

	fmt.Fprintf(w, "%s %s  (%s)\n", c.Name, c.Symbol, c.DateRange)
	border := "+" + strings.Repeat("-", cfg.Width) + "+"
	fmt.Fprintln(w, border)
	for _, row := range grid {
		fmt.Fprintf(w, "|%s|\n", string(row))
	}
	fmt.Fprintln(w, border)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
