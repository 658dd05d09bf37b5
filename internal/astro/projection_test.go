package astro

import (
	"math"
	"testing"
)

func TestProjectStarsExample(t *testing.T) {
	stars := []Star{
		{ID: "A", RAdeg: 10, DecDeg: 0},
		{ID: "B", RAdeg: 20, DecDeg: 10},
		{ID: "C", RAdeg: 15, DecDeg: 5},
	}
	pos := ProjectStars(stars)

	// Range 10 on both axes -> pad 3 -> window [7, 23] and [-3, 13].
	tests := []struct {
		id   string
		x, y float64
	}{
		{"A", 28.125, 71.875},
		{"B", 71.875, 28.125},
		{"C", 50, 50},
	}
	for _, tt := range tests {
		got := pos[tt.id]
		if math.Abs(got.X-tt.x) > 1e-9 || math.Abs(got.Y-tt.y) > 1e-9 {
			t.Errorf("ProjectStars()[%s] = (%v, %v), want (%v, %v)", tt.id, got.X, got.Y, tt.x, tt.y)
		}
	}
}

func TestProjectStarsDegenerate(t *testing.T) {
	tests := []struct {
		name  string
		stars []Star
	}{
		{"single star", []Star{{ID: "a", RAdeg: 100, DecDeg: 20}}},
		{"same RA", []Star{{ID: "a", RAdeg: 100, DecDeg: 20}, {ID: "b", RAdeg: 100, DecDeg: 30}}},
		{"same Dec", []Star{{ID: "a", RAdeg: 100, DecDeg: 20}, {ID: "b", RAdeg: 110, DecDeg: 20}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for id, p := range ProjectStars(tt.stars) {
				if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
					t.Errorf("%s: non-finite position %v", id, p)
				}
			}
		})
	}

	// Single star lands dead centre.
	p := ProjectStars([]Star{{ID: "a", RAdeg: 100, DecDeg: 20}})["a"]
	if p.X != 50 || p.Y != 50 {
		t.Errorf("single star = %v, want (50, 50)", p)
	}
}

func TestProjectStarsEmpty(t *testing.T) {
	if got := ProjectStars(nil); len(got) != 0 {
		t.Errorf("ProjectStars(nil) = %v, want empty", got)
	}
}

func TestScreenPositionsInWindow(t *testing.T) {
	for _, c := range ZodiacCatalog().All() {
		pos := ScreenPositions(c)
		if len(pos) != len(c.Stars) {
			t.Errorf("%s: %d positions for %d stars", c.ID, len(pos), len(c.Stars))
		}
		for id, p := range pos {
			if p.X < screenMin || p.X > screenMax || p.Y < screenMin || p.Y > screenMax {
				t.Errorf("%s/%s: position %v outside [15, 85]", c.ID, id, p)
			}
		}
	}
}

func TestScreenPositionsOrientation(t *testing.T) {
	aries, _ := ZodiacCatalog().ByID("aries")
	pos := ScreenPositions(aries)

	// 41 Ari has the highest RA and Dec; Mesarthim the lowest RA.
	if pos["41ari"].X <= pos["mesarthim"].X {
		t.Error("higher RA should be further right")
	}
	if pos["41ari"].Y >= pos["pi_ari"].Y {
		t.Error("higher Dec should be further up")
	}
}

func TestScreenPositionsDeterministic(t *testing.T) {
	virgo, _ := ZodiacCatalog().ByID("virgo")
	a := ScreenPositions(virgo)
	b := ScreenPositions(virgo)
	for id, p := range a {
		if b[id] != p {
			t.Errorf("%s: %v != %v", id, p, b[id])
		}
	}
}

func TestToCell(t *testing.T) {
	tests := []struct {
		pos          ScreenPosition
		w, h         int
		wantX, wantY int
	}{
		{ScreenPosition{0, 0}, 101, 51, 0, 0},
		{ScreenPosition{50, 50}, 101, 51, 50, 25},
		{ScreenPosition{100, 100}, 101, 51, 100, 50},
		{ScreenPosition{150, -10}, 10, 10, 9, 0},
		{ScreenPosition{50, 50}, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		x, y := tt.pos.ToCell(tt.w, tt.h)
		if x != tt.wantX || y != tt.wantY {
			t.Errorf("%v.ToCell(%d, %d) = (%d, %d), want (%d, %d)", tt.pos, tt.w, tt.h, x, y, tt.wantX, tt.wantY)
		}
	}
}
