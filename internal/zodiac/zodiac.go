// Package zodiac maps calendar dates to tropical zodiac signs.
package zodiac

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a birthdate string cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")

// Sign is one of the 12 zodiac signs.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// NumSigns is the number of signs.
const NumSigns = 12

type signInfo struct {
	name          string
	constellation string
	// Inclusive range. Capricorn wraps the year end.
	startMonth time.Month
	startDay   int
	endMonth   time.Month
	endDay     int
}

var signs = [NumSigns]signInfo{
	Aries:       {"Aries", "aries", time.March, 21, time.April, 19},
	Taurus:      {"Taurus", "taurus", time.April, 20, time.May, 20},
	Gemini:      {"Gemini", "gemini", time.May, 21, time.June, 20},
	Cancer:      {"Cancer", "cancer", time.June, 21, time.July, 22},
	Leo:         {"Leo", "leo", time.July, 23, time.August, 22},
	Virgo:       {"Virgo", "virgo", time.August, 23, time.September, 22},
	Libra:       {"Libra", "libra", time.September, 23, time.October, 22},
	Scorpio:     {"Scorpio", "scorpius", time.October, 23, time.November, 21},
	Sagittarius: {"Sagittarius", "sagittarius", time.November, 22, time.December, 21},
	Capricorn:   {"Capricorn", "capricornus", time.December, 22, time.January, 19},
	Aquarius:    {"Aquarius", "aquarius", time.January, 20, time.February, 18},
	Pisces:      {"Pisces", "pisces", time.February, 19, time.March, 20},
}

// All returns every sign in calendar order starting at Aries.
func All() []Sign {
	out := make([]Sign, NumSigns)
	for i := range out {
		out[i] = Sign(i)
	}
	return out
}

// Valid reports whether s is one of the 12 signs.
func (s Sign) Valid() bool {
	return s >= Aries && s <= Pisces
}

func (s Sign) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signs[s].name
}

// ConstellationID returns the catalog id of the sign's constellation.
// Note Scorpio maps to "scorpius" and Capricorn to "capricornus".
func (s Sign) ConstellationID() string {
	if !s.Valid() {
		return ""
	}
	return signs[s].constellation
}

// Symbol returns the astrological glyph, ♈ through ♓.
func (s Sign) Symbol() string {
	if !s.Valid() {
		return ""
	}
	return string(rune('♈' + int(s)))
}

// DateRange returns a label such as "Mar 21 - Apr 19".
func (s Sign) DateRange() string {
	if !s.Valid() {
		return ""
	}
	r := signs[s]
	return fmt.Sprintf("%s %d - %s %d",
		r.startMonth.String()[:3], r.startDay, r.endMonth.String()[:3], r.endDay)
}

// Next returns the following sign, wrapping Pisces to Aries.
func (s Sign) Next() Sign { return Sign((int(s) + 1) % NumSigns) }

// Prev returns the preceding sign, wrapping Aries to Pisces.
func (s Sign) Prev() Sign { return Sign((int(s) + NumSigns - 1) % NumSigns) }

// ParseSign accepts a sign name or a constellation id, case-insensitively.
func ParseSign(s string) (Sign, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, info := range signs {
		if s == strings.ToLower(info.name) {
			return Sign(i), true
		}
	}
	return FromConstellationID(s)
}

// FromConstellationID is the inverse of ConstellationID.
func FromConstellationID(id string) (Sign, bool) {
	for i, info := range signs {
		if info.constellation == id {
			return Sign(i), true
		}
	}
	return 0, false
}

// SignFor returns the sign whose range contains t's month and day,
// read in t's own location.
func SignFor(t time.Time) Sign {
	month, day := t.Month(), t.Day()
	for i, r := range signs {
		if (month == r.startMonth && day >= r.startDay) || (month == r.endMonth && day <= r.endDay) {
			return Sign(i)
		}
	}
	// Unreachable for real calendar dates.
	return Aries
}

// CurrentConstellationID returns the constellation id for the sign in effect at t.
func CurrentConstellationID(t time.Time) string {
	return SignFor(t).ConstellationID()
}

var birthdateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"01/02/2006",
}

// ParseBirthdate parses YYYY-MM-DD, RFC 3339, or MM/DD/YYYY.
// Date-only forms are returned as midnight UTC so the calendar day is
// never shifted by the local zone.
func ParseBirthdate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range birthdateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// FromBirthdate parses s and resolves its sign.
func FromBirthdate(s string) (Sign, error) {
	t, err := ParseBirthdate(s)
	if err != nil {
		return Aries, err
	}
	return SignFor(t), nil
}

// SignOrDefault is FromBirthdate with unparseable input resolving to Aries.
// The bool reports whether the fallback was taken.
func SignOrDefault(s string) (Sign, bool) {
	sign, err := FromBirthdate(s)
	if err != nil {
		return Aries, true
	}
	return sign, false
}
