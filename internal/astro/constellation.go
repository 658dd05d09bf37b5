package astro

import "sort"

// Star is one named star belonging to a zodiac constellation.
type Star struct {
	ID     string  // Unique within its constellation
	Name   string  // Display name (e.g., "Hamal")
	RAdeg  float64 // Right Ascension in degrees (0-360)
	DecDeg float64 // Declination in degrees (-90 to +90)
	Mag    float64 // Apparent visual magnitude (lower = brighter)

	// Derived once by AssignSections.
	Clickable bool
	Section   string // Set iff Clickable
}

// Edge connects two stars of the same constellation with a line.
// Endpoints referring to unknown ids are skipped when drawing.
type Edge struct {
	From string
	To   string
}

// Constellation is one zodiac constellation with its stars and stick figure.
type Constellation struct {
	ID        string
	Name      string
	Symbol    string
	DateRange string
	Stars     []Star
	Edges     []Edge
}

// AssignSections ranks stars by ascending magnitude and binds the brightest
// len(sections) of them, in rank order, to the given section ids.
//
// Ties keep their authored order. The input slice is not modified; the
// returned slice preserves the authored order.
func AssignSections(raw []Star, sections []string) []Star {
	ranked := make([]int, len(raw))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return raw[ranked[a]].Mag < raw[ranked[b]].Mag
	})

	rankOf := make([]int, len(raw))
	for rank, idx := range ranked {
		rankOf[idx] = rank
	}

	out := make([]Star, len(raw))
	for i, s := range raw {
		rank := rankOf[i]
		s.Clickable = rank < len(sections)
		s.Section = ""
		if s.Clickable {
			s.Section = sections[rank]
		}
		out[i] = s
	}
	return out
}

// Star returns the first star with the given id.
func (c Constellation) Star(id string) (Star, bool) {
	for _, s := range c.Stars {
		if s.ID == id {
			return s, true
		}
	}
	return Star{}, false
}

// ClickableStars returns the clickable stars, brightest first.
func (c Constellation) ClickableStars() []Star {
	var out []Star
	for _, s := range c.Stars {
		if s.Clickable {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Mag < out[b].Mag
	})
	return out
}

// StarForSection returns the clickable star bound to a section.
func (c Constellation) StarForSection(section string) (Star, bool) {
	for _, s := range c.Stars {
		if s.Clickable && s.Section == section {
			return s, true
		}
	}
	return Star{}, false
}

// Brightest returns the star with the lowest magnitude.
// The second result is false for an empty constellation.
func (c Constellation) Brightest() (Star, bool) {
	if len(c.Stars) == 0 {
		return Star{}, false
	}
	best := c.Stars[0]
	for _, s := range c.Stars[1:] {
		if s.Mag < best.Mag {
			best = s
		}
	}
	return best, true
}

// Catalog holds the zodiac constellations in calendar order.
type Catalog struct {
	constellations []Constellation
	byID           map[string]int
}

// NewCatalog indexes the given constellations by id. On duplicate ids the
// first entry wins.
func NewCatalog(constellations []Constellation) *Catalog {
	c := &Catalog{
		constellations: constellations,
		byID:           make(map[string]int, len(constellations)),
	}
	for i, con := range constellations {
		if _, dup := c.byID[con.ID]; !dup {
			c.byID[con.ID] = i
		}
	}
	return c
}

// ByID looks up a constellation.
func (c *Catalog) ByID(id string) (Constellation, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Constellation{}, false
	}
	return c.constellations[i], true
}

// All returns every constellation, Aries first.
func (c *Catalog) All() []Constellation {
	out := make([]Constellation, len(c.constellations))
	copy(out, c.constellations)
	return out
}

// IDs returns constellation ids in calendar order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.constellations))
	for i, con := range c.constellations {
		ids[i] = con.ID
	}
	return ids
}
