package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-constellation/internal/astro"
	"github.com/litescript/ls-constellation/internal/section"
)

const (
	// Star glyphs by magnitude
	glyphStarBright  = '✶' // mag < 1.5
	glyphStarMedium  = '✸' // mag 1.5-3.0
	glyphStarDim     = '•' // mag 3.0-4.0
	glyphStarVeryDim = '·' // mag > 4.0

	glyphClickable = '✦'
	glyphFocused   = '◆'
	glyphEdge      = '·'

	colorStarBright  = "#ffffff"
	colorStarMedium  = "#d0d0d0"
	colorStarDim     = "#a0a0a0"
	colorStarVeryDim = "#7a7a7a"
	colorEdge        = "#5b5b8a"
	colorClickable   = "#d0c8ff"
	colorFocused     = "#fde047"
)

// SkyModel draws the selected constellation over the starfield and tracks
// which clickable star has keyboard focus.
type SkyModel struct {
	catalog  *astro.Catalog
	observer astro.Observer

	con       astro.Constellation
	positions map[string]astro.ScreenPosition

	// Focus walks the clickable stars, brightest first.
	focusable []astro.Star
	focusIdx  int
}

// NewSkyModel creates a sky view over catalog.
func NewSkyModel(catalog *astro.Catalog, observer astro.Observer) SkyModel {
	return SkyModel{catalog: catalog, observer: observer}
}

// SetConstellation switches to the constellation with the given id. Unknown
// ids leave an empty sky.
func (m SkyModel) SetConstellation(id string) SkyModel {
	con, _ := m.catalog.ByID(id)
	m.con = con
	m.positions = astro.ScreenPositions(con)
	m.focusable = con.ClickableStars()
	m.focusIdx = 0
	return m
}

// Constellation returns the constellation on display.
func (m SkyModel) Constellation() astro.Constellation {
	return m.con
}

// Focused returns the clickable star with focus.
func (m SkyModel) Focused() (astro.Star, bool) {
	if len(m.focusable) == 0 {
		return astro.Star{}, false
	}
	return m.focusable[m.focusIdx], true
}

func (m SkyModel) FocusNext() SkyModel {
	if len(m.focusable) > 0 {
		m.focusIdx = (m.focusIdx + 1) % len(m.focusable)
	}
	return m
}

func (m SkyModel) FocusPrev() SkyModel {
	if len(m.focusable) > 0 {
		m.focusIdx = (m.focusIdx + len(m.focusable) - 1) % len(m.focusable)
	}
	return m
}

// FocusSection moves focus to the star bound to a section, if any.
func (m SkyModel) FocusSection(id string) SkyModel {
	star, ok := m.con.StarForSection(id)
	if !ok {
		return m
	}
	for i, s := range m.focusable {
		if s.ID == star.ID {
			m.focusIdx = i
			break
		}
	}
	return m
}

// Draw overlays the stick figure and its stars onto c.
func (m SkyModel) Draw(c *Canvas) {
	cols, rows := c.Cols(), c.Rows()
	if cols == 0 || rows == 0 {
		return
	}

	cellOf := func(id string) (int, int, bool) {
		p, ok := m.positions[id]
		if !ok {
			return 0, 0, false
		}
		x, y := p.ToCell(cols, rows)
		return x, y, true
	}

	for _, e := range m.con.Edges {
		x0, y0, ok0 := cellOf(e.From)
		x1, y1, ok1 := cellOf(e.To)
		if !ok0 || !ok1 {
			continue
		}
		drawDotted(c, x0, y0, x1, y1)
	}

	focused, hasFocus := m.Focused()
	for _, s := range m.con.Stars {
		x, y, ok := cellOf(s.ID)
		if !ok {
			continue
		}
		switch {
		case hasFocus && s.ID == focused.ID:
			// drawn last so its label wins
		case s.Clickable:
			c.SetBold(x, y, glyphClickable, colorClickable)
			c.SetText(x+2, y, sectionTitle(s.Section), colorClickable)
		default:
			glyph, color := starGlyph(s.Mag)
			c.Set(x, y, glyph, color)
		}
	}

	if hasFocus {
		if x, y, ok := cellOf(focused.ID); ok {
			c.SetBold(x, y, glyphFocused, colorFocused)
			c.SetText(x+2, y, "◄ "+focused.Name+" · "+sectionTitle(focused.Section), colorFocused)
		}
	}
}

// drawDotted marks every other cell on the segment between two cells,
// leaving the endpoints for the stars.
func drawDotted(c *Canvas, x0, y0, x1, y1 int) {
	dx, dy := x1-x0, y1-y0
	steps := max(abs(dx), abs(dy))
	for i := 1; i < steps; i++ {
		if i%2 != 0 {
			continue
		}
		x := x0 + int(math.Round(float64(dx*i)/float64(steps)))
		y := y0 + int(math.Round(float64(dy*i)/float64(steps)))
		c.Set(x, y, glyphEdge, colorEdge)
	}
}

// starGlyph returns the glyph and color for a star by magnitude.
// Brighter stars (lower magnitude) get more prominent symbols.
func starGlyph(mag float64) (rune, string) {
	switch {
	case mag < 1.5:
		return glyphStarBright, colorStarBright
	case mag < 3.0:
		return glyphStarMedium, colorStarMedium
	case mag < 4.0:
		return glyphStarDim, colorStarDim
	default:
		return glyphStarVeryDim, colorStarVeryDim
	}
}

func sectionTitle(id string) string {
	if k, ok := section.Parse(id); ok {
		return k.String()
	}
	return id
}

// Header names the constellation on display.
func (m SkyModel) Header() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	if m.con.ID == "" {
		return dimStyle.Render("No constellation selected")
	}
	return fmt.Sprintf("%s %s  %s",
		titleStyle.Render(m.con.Name),
		m.con.Symbol,
		dimStyle.Render(m.con.DateRange))
}

// Status describes the focused star and where it sits in the observer's sky
// at now.
func (m SkyModel) Status(now time.Time) string {
	s, ok := m.Focused()
	if !ok {
		return "No stars to explore"
	}

	horiz, sky := astro.StarSky(s, m.observer, now)
	line := fmt.Sprintf(">>> %s · %s | mag %.2f | Az:%.0f° El:%.0f° (%s)",
		s.Name, sectionTitle(s.Section), s.Mag, horiz.AzDeg, horiz.ElDeg, sky)

	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	out := accentStyle.Render(line)
	if m.observer.Name != "" {
		dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorClickable))
		out += dimStyle.Render("  from " + m.observer.Name)
	}
	return out
}

// Legend lists the clickable stars in focus order.
func (m SkyModel) Legend() string {
	parts := make([]string, len(m.focusable))
	for i, s := range m.focusable {
		parts[i] = s.Name + "→" + sectionTitle(s.Section)
	}
	return strings.Join(parts, "  ")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
