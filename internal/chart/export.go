// Package chart renders a constellation for non-interactive output: a JSON
// export, a section table and a plain ASCII chart.
package chart

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-constellation/internal/astro"
)

// Export is the JSON-serializable form of a projected constellation.
type Export struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Symbol      string         `json:"symbol"`
	DateRange   string         `json:"date_range"`
	GeneratedAt time.Time      `json:"generated_at"`
	Observer    ObserverExport `json:"observer"`
	Brightest   string         `json:"brightest,omitempty"`
	Stars       []StarExport   `json:"stars"`
	Edges       []EdgeExport   `json:"edges"`
}

// ObserverExport is the location altitudes are computed for.
type ObserverExport struct {
	Name string  `json:"name,omitempty"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// StarExport is one star with its screen position and current altitude.
type StarExport struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	RA        float64 `json:"ra_deg"`
	Dec       float64 `json:"dec_deg"`
	Mag       float64 `json:"mag"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Clickable bool    `json:"clickable"`
	Section   string  `json:"section,omitempty"`
	Azimuth   float64 `json:"azimuth"`
	Elevation float64 `json:"elevation"`
	Sky       string  `json:"sky"`
}

// EdgeExport is a stick-figure line. Lines with an unknown endpoint are
// dropped.
type EdgeExport struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// NewExport projects c and evaluates every star for obs at t.
func NewExport(c astro.Constellation, obs astro.Observer, t time.Time) *Export {
	positions := astro.ScreenPositions(c)
	export := &Export{
		ID:          c.ID,
		Name:        c.Name,
		Symbol:      c.Symbol,
		DateRange:   c.DateRange,
		GeneratedAt: t,
		Observer:    ObserverExport{Name: obs.Name, Lat: obs.LatDeg, Lon: obs.LonDeg},
		Stars:       make([]StarExport, 0, len(c.Stars)),
		Edges:       make([]EdgeExport, 0, len(c.Edges)),
	}
	if s, ok := c.Brightest(); ok {
		export.Brightest = s.ID
	}

	for _, s := range c.Stars {
		p := positions[s.ID]
		horiz, sky := astro.StarSky(s, obs, t)
		export.Stars = append(export.Stars, StarExport{
			ID:        s.ID,
			Name:      s.Name,
			RA:        s.RAdeg,
			Dec:       s.DecDeg,
			Mag:       s.Mag,
			X:         p.X,
			Y:         p.Y,
			Clickable: s.Clickable,
			Section:   s.Section,
			Azimuth:   horiz.AzDeg,
			Elevation: horiz.ElDeg,
			Sky:       sky.String(),
		})
	}

	for _, e := range c.Edges {
		_, okFrom := positions[e.From]
		_, okTo := positions[e.To]
		if okFrom && okTo {
			export.Edges = append(export.Edges, EdgeExport(e))
		}
	}
	return export
}

// WriteJSON writes the export as indented JSON.
func (e *Export) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// SectionRow is one line of the section table.
type SectionRow struct {
	Section string
	Star    string
	Mag     float64
	Alt     float64
	Sky     astro.Sky
}

// SectionRows lists the clickable stars, brightest first.
func SectionRows(c astro.Constellation, obs astro.Observer, t time.Time) []SectionRow {
	stars := c.ClickableStars()
	rows := make([]SectionRow, 0, len(stars))
	for _, s := range stars {
		horiz, sky := astro.StarSky(s, obs, t)
		rows = append(rows, SectionRow{
			Section: s.Section,
			Star:    s.Name,
			Mag:     s.Mag,
			Alt:     horiz.ElDeg,
			Sky:     sky,
		})
	}
	return rows
}

// WriteSectionTable writes the clickable stars as a text table.
func WriteSectionTable(w io.Writer, c astro.Constellation, obs astro.Observer, t time.Time) {
	rows := SectionRows(c, obs, t)

	fmt.Fprintf(w, "%s %s @ %s\n", c.Name, c.Symbol, t.Format(time.RFC3339))
	fmt.Fprintln(w, strings.Repeat("─", 60))

	if len(rows) == 0 {
		fmt.Fprintln(w, "No clickable stars")
		return
	}

	fmt.Fprintf(w, "%-12s %-16s %6s %7s  %s\n", "Section", "Star", "Mag", "Alt", "Sky")
	fmt.Fprintln(w, strings.Repeat("─", 60))
	for _, r := range rows {
		fmt.Fprintf(w, "%-12s %-16s %6.2f %6.1f°  %s\n",
			truncateStr(r.Section, 12),
			truncateStr(r.Star, 16),
			r.Mag,
			r.Alt,
			r.Sky,
		)
	}
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
