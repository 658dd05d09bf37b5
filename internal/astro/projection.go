package astro

import "math"

const (
	// Screen window, in percent of the viewport, that projected stars span.
	screenMin = 15.0
	screenMax = 85.0

	// Each axis is widened by padFraction of its range, never less than
	// minPadDeg, so single-star or flat constellations stay finite.
	padFraction = 0.3
	minPadDeg   = 2.0
)

// ScreenPosition is a projected position in viewport percent (0-100).
type ScreenPosition struct {
	X float64
	Y float64
}

// ScreenPositions maps every star of a constellation to viewport percent.
//
// RA grows left to right and declination grows upward (north up). Stars
// land inside [15, 85] on both axes. The result is empty for an empty
// constellation.
func ScreenPositions(c Constellation) map[string]ScreenPosition {
	return ProjectStars(c.Stars)
}

// ProjectStars is ScreenPositions over a bare star list. Later stars with a
// duplicate id overwrite earlier ones.
func ProjectStars(stars []Star) map[string]ScreenPosition {
	positions := make(map[string]ScreenPosition, len(stars))
	if len(stars) == 0 {
		return positions
	}

	minRA, maxRA := stars[0].RAdeg, stars[0].RAdeg
	minDec, maxDec := stars[0].DecDeg, stars[0].DecDeg
	for _, s := range stars[1:] {
		minRA = math.Min(minRA, s.RAdeg)
		maxRA = math.Max(maxRA, s.RAdeg)
		minDec = math.Min(minDec, s.DecDeg)
		maxDec = math.Max(maxDec, s.DecDeg)
	}

	raPad := math.Max((maxRA-minRA)*padFraction, minPadDeg)
	decPad := math.Max((maxDec-minDec)*padFraction, minPadDeg)
	minRA -= raPad
	maxRA += raPad
	minDec -= decPad
	maxDec += decPad

	span := screenMax - screenMin
	for _, s := range stars {
		positions[s.ID] = ScreenPosition{
			X: (s.RAdeg-minRA)/(maxRA-minRA)*span + screenMin,
			Y: (maxDec-s.DecDeg)/(maxDec-minDec)*span + screenMin,
		}
	}
	return positions
}

// ToCell converts a percent position to a cell on a width x height grid.
// The result is clamped to the grid.
func (p ScreenPosition) ToCell(width, height int) (int, int) {
	x := int(math.Round(p.X / 100 * float64(width-1)))
	y := int(math.Round(p.Y / 100 * float64(height-1)))
	return clampInt(x, 0, width-1), clampInt(y, 0, height-1)
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
