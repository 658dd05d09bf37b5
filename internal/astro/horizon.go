// Package astro holds the zodiac star catalog and the sky math used to lay it out.
package astro

import (
	"math"
	"time"
)

// Observer is a ground location used for "is it up tonight" checks.
type Observer struct {
	Name   string
	LatDeg float64 // north positive
	LonDeg float64 // east positive
}

// Horizontal is an observer-relative direction.
type Horizontal struct {
	AzDeg float64 // 0=N, 90=E
	ElDeg float64 // 0=horizon, 90=zenith
}

// Sky conditions for a star as seen by an observer.
type Sky int

const (
	SkyBelowHorizon Sky = iota
	SkyDaylight         // above the horizon but the Sun is up
	SkyLow              // 0-15 degrees, dark sky
	SkyGood             // 15+ degrees, dark sky
)

func (s Sky) String() string {
	switch s {
	case SkyBelowHorizon:
		return "below horizon"
	case SkyDaylight:
		return "daylight"
	case SkyLow:
		return "low"
	case SkyGood:
		return "well placed"
	default:
		return "unknown"
	}
}

// civilTwilightDeg is the solar elevation below which stars are drawn as visible.
const civilTwilightDeg = -6.0

// ToHorizontal converts J2000 RA/Dec to azimuth/elevation for obs at t.
func ToHorizontal(raDeg, decDeg float64, obs Observer, t time.Time) Horizontal {
	lat := rad(obs.LatDeg)
	dec := rad(decDeg)
	ha := rad(localSidereal(t, obs.LonDeg) - raDeg)

	sinEl := math.Sin(dec)*math.Sin(lat) + math.Cos(dec)*math.Cos(lat)*math.Cos(ha)
	el := math.Asin(clamp(sinEl, -1, 1))

	cosAz := (math.Sin(dec) - math.Sin(el)*math.Sin(lat)) / (math.Cos(el) * math.Cos(lat))
	az := math.Acos(clamp(cosAz, -1, 1))
	if math.Sin(ha) > 0 {
		az = 2*math.Pi - az
	}

	return Horizontal{AzDeg: deg(az), ElDeg: deg(el)}
}

// StarSky reports where a star stands for obs at t.
func StarSky(s Star, obs Observer, t time.Time) (Horizontal, Sky) {
	h := ToHorizontal(s.RAdeg, s.DecDeg, obs, t)
	if h.ElDeg <= 0 {
		return h, SkyBelowHorizon
	}
	sunRA, sunDec := sunEquatorial(t)
	if ToHorizontal(sunRA, sunDec, obs, t).ElDeg > civilTwilightDeg {
		return h, SkyDaylight
	}
	if h.ElDeg < 15 {
		return h, SkyLow
	}
	return h, SkyGood
}

// sunEquatorial is a low-precision solar position (about 0.01 degree),
// plenty for a twilight test.
func sunEquatorial(t time.Time) (raDeg, decDeg float64) {
	n := julianDay(t) - 2451545.0

	meanLon := wrap360(280.460 + 0.9856474*n)
	anomaly := rad(wrap360(357.528 + 0.9856003*n))
	eclLon := rad(meanLon + 1.915*math.Sin(anomaly) + 0.020*math.Sin(2*anomaly))
	obliquity := rad(23.439 - 0.0000004*n)

	raDeg = wrap360(deg(math.Atan2(math.Cos(obliquity)*math.Sin(eclLon), math.Cos(eclLon))))
	decDeg = deg(math.Asin(math.Sin(obliquity) * math.Sin(eclLon)))
	return raDeg, decDeg
}

// localSidereal returns local mean sidereal time in degrees (IAU 1982 GMST).
func localSidereal(t time.Time, lonDeg float64) float64 {
	jd := julianDay(t)
	c := (jd - 2451545.0) / 36525.0
	gmst := 280.46061837 +
		360.98564736629*(jd-2451545.0) +
		0.000387933*c*c -
		c*c*c/38710000.0
	return wrap360(gmst + lonDeg)
}

// julianDay returns the Julian Date of t (Gregorian calendar).
func julianDay(t time.Time) float64 {
	t = t.UTC()
	y := float64(t.Year())
	m := float64(t.Month())
	dayFrac := (float64(t.Hour()) +
		float64(t.Minute())/60 +
		float64(t.Second())/3600 +
		float64(t.Nanosecond())/3600e9) / 24
	d := float64(t.Day()) + dayFrac

	if m <= 2 {
		y--
		m += 12
	}
	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	return math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + d + b - 1524.5
}

func wrap360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func rad(d float64) float64 { return d * math.Pi / 180 }
func deg(r float64) float64 { return r * 180 / math.Pi }
