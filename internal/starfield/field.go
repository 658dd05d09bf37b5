// Package starfield animates the decorative background: drifting stars and
// periodic meteor showers.
//
// A Field holds the simulation and draws one frame per call onto a Surface.
// Frames never overlap; the caller (a bubbletea tick or an Animator) owns
// the cadence.
package starfield

import (
	"math"
	"math/rand/v2"
	"time"
)

const (
	// ShowerInterval is the minimum wall-clock gap between meteor showers.
	ShowerInterval = 15 * time.Second
	// ShowerSize is the number of meteors per shower.
	ShowerSize = 3

	MeteorSpeed  = 12.0  // px per frame
	MeteorLength = 120.0 // px

	spawnMargin    = 100.0 // showers start and end this far outside the surface
	cullMargin     = 200.0 // meteors past this margin are dropped
	clusterSpread  = 80.0  // perpendicular gap between meteors of a shower
	clusterStagger = 40.0  // along-track gap between meteors of a shower
	lifeBuffer     = 20    // extra frames beyond the crossing time
)

// Background gradient stops, centre to edge.
const (
	BackgroundInner = "#0a0a1a"
	BackgroundOuter = "#000000"
)

// GoldColor marks the rare gold layer-3 stars.
const GoldColor = "#fde047"

// Most stars are cool white.
var starPalette = []string{"#f8fafc", "#f8fafc", "#f8fafc", "#dcfce7", "#ede9fe"}

// Config tunes the starfield.
type Config struct {
	StarCount int
	// ParallaxStrength is accepted and carried but has no visual effect.
	ParallaxStrength float64
	DriftSpeed       float64
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		StarCount:        300,
		ParallaxStrength: 0.005,
		DriftSpeed:       1,
	}
}

// Star is a background point. Layer 1 is slow, small and dim; layer 3 is
// fast, large and bright.
type Star struct {
	X, Y  float64
	Size  float64
	Color string
	Speed float64 // px per frame
	Layer int
}

// Alpha returns the star's draw opacity.
func (s Star) Alpha() float64 {
	return 0.5 + float64(s.Layer)*0.15
}

// Meteor is a short-lived streak.
type Meteor struct {
	X, Y    float64
	VX, VY  float64
	Length  float64
	Opacity float64
	Life    int
	MaxLife int
}

// Tail returns the far end of the streak drawn behind the head.
func (m Meteor) Tail() (x, y float64) {
	return m.X - unit(m.VX)*m.Length, m.Y - unit(m.VY)*m.Length*0.5
}

func unit(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v / math.Abs(v)
}

// Surface is something a frame can be drawn onto. Sizes are in pixels.
type Surface interface {
	Size() (width, height float64)
	Clear()
	FillRadialGradient(cx, cy, radius float64, inner, outer string)
	DrawMeteor(m Meteor)
	DrawStar(s Star)
}

// Field is the starfield simulation. It is not safe for concurrent use.
type Field struct {
	cfg        Config
	rng        *rand.Rand
	stars      []Star
	meteors    []Meteor
	lastShower time.Time
}

// NewField populates cfg.StarCount stars over a width x height area. The
// first shower fires ShowerInterval after now. A nil rng uses a randomly
// seeded source.
func NewField(cfg Config, width, height float64, now time.Time, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	f := &Field{
		cfg:        cfg,
		rng:        rng,
		stars:      make([]Star, 0, max(cfg.StarCount, 0)),
		lastShower: now,
	}
	for range cfg.StarCount {
		f.stars = append(f.stars, f.newStar(width, height))
	}
	return f
}

func (f *Field) newStar(width, height float64) Star {
	layer := 3
	switch {
	case f.rng.Float64() < 0.6:
		layer = 1
	case f.rng.Float64() < 0.9:
		layer = 2
	}

	var size, speed float64
	switch layer {
	case 1:
		size, speed = 0.5, 0.02
	case 2:
		size, speed = 1, 0.05
	default:
		size, speed = 1.5, 0.08
	}

	color := GoldColor
	if layer != 3 || f.rng.Float64() <= 0.9 {
		color = starPalette[f.rng.IntN(len(starPalette))]
	}

	return Star{
		X:     f.rng.Float64() * width,
		Y:     f.rng.Float64() * height,
		Size:  size,
		Color: color,
		Speed: speed * f.cfg.DriftSpeed,
		Layer: layer,
	}
}

// Config returns the field's tuning.
func (f *Field) Config() Config { return f.cfg }

// Stars returns a copy of the background stars.
func (f *Field) Stars() []Star {
	return append([]Star(nil), f.stars...)
}

// Meteors returns a copy of the active meteors.
func (f *Field) Meteors() []Meteor {
	return append([]Meteor(nil), f.meteors...)
}

// Frame advances the simulation one step and draws it onto s:
// clear, background, shower check, meteors, stars.
func (f *Field) Frame(s Surface, now time.Time) {
	width, height := s.Size()

	s.Clear()
	s.FillRadialGradient(width/2, height/2, width, BackgroundInner, BackgroundOuter)

	if now.Sub(f.lastShower) > ShowerInterval {
		f.SpawnShower(width, height)
		f.lastShower = now
	}

	f.stepMeteors(s, width, height)
	f.stepStars(s, width, height)
}

func (f *Field) stepMeteors(s Surface, width, height float64) {
	live := f.meteors[:0]
	for _, m := range f.meteors {
		m.Life++
		m.X += m.VX
		m.Y += m.VY
		m.Opacity = math.Max(0, 1-float64(m.Life)/float64(m.MaxLife))
		if m.Opacity > 0 {
			s.DrawMeteor(m)
		}

		if m.Life < m.MaxLife &&
			m.X > -cullMargin && m.X < width+cullMargin &&
			m.Y < height+cullMargin {
			live = append(live, m)
		}
	}
	clear(f.meteors[len(live):])
	f.meteors = live
}

func (f *Field) stepStars(s Surface, width, height float64) {
	for i := range f.stars {
		st := &f.stars[i]
		st.Y += st.Speed
		if st.Y > height {
			st.Y = 0
			st.X = f.rng.Float64() * width
		}
		s.DrawStar(*st)
	}
}

// SpawnShower adds ShowerSize meteors crossing a width x height area along
// one of the two downward diagonals.
func (f *Field) SpawnShower(width, height float64) {
	startX, startY := -spawnMargin, -spawnMargin
	targetX, targetY := width+spawnMargin, height+spawnMargin
	if f.rng.Float64() >= 0.5 {
		startX, targetX = width+spawnMargin, -spawnMargin
	}

	distance := math.Hypot(targetX-startX, targetY-startY)
	angle := math.Atan2(targetY-startY, targetX-startX)
	vx := math.Cos(angle) * MeteorSpeed
	vy := math.Sin(angle) * MeteorSpeed
	maxLife := int(math.Ceil(distance/MeteorSpeed)) + lifeBuffer

	for i := range ShowerSize {
		perp := float64(i-1) * clusterSpread
		back := float64(i) * clusterStagger
		f.meteors = append(f.meteors, Meteor{
			X:       startX - math.Sin(angle)*perp - vx*back/MeteorSpeed,
			Y:       startY + math.Cos(angle)*perp - vy*back/MeteorSpeed,
			VX:      vx,
			VY:      vy,
			Length:  MeteorLength,
			Opacity: 1,
			MaxLife: maxLife,
		})
	}
}
