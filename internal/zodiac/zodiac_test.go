package zodiac

import (
	"errors"
	"testing"
	"time"
)

func TestSignForBoundaries(t *testing.T) {
	tests := []struct {
		date string
		want Sign
	}{
		{"2024-03-20", Pisces},
		{"2024-03-21", Aries},
		{"2024-04-19", Aries},
		{"2024-04-20", Taurus},
		{"2024-06-20", Gemini},
		{"2024-06-21", Cancer},
		{"2024-07-23", Leo},
		{"2024-08-23", Virgo},
		{"2024-09-23", Libra},
		{"2024-10-23", Scorpio},
		{"2024-11-21", Scorpio},
		{"2024-11-22", Sagittarius},
		{"2024-12-21", Sagittarius},
		{"2024-12-22", Capricorn},
		{"2024-12-31", Capricorn},
		{"2024-01-01", Capricorn},
		{"2024-01-19", Capricorn},
		{"2024-01-20", Aquarius},
		{"2024-02-18", Aquarius},
		{"2024-02-19", Pisces},
		{"2024-02-29", Pisces},
	}
	for _, tt := range tests {
		d, err := time.Parse("2006-01-02", tt.date)
		if err != nil {
			t.Fatal(err)
		}
		if got := SignFor(d); got != tt.want {
			t.Errorf("SignFor(%s) = %v, want %v", tt.date, got, tt.want)
		}
	}
}

// Each sign's range covers exactly its own days and the ranges partition the year.
func TestSignForPartitionsYear(t *testing.T) {
	counts := make(map[Sign]int)
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for d := start; d.Year() == 2023; d = d.AddDate(0, 0, 1) {
		matches := 0
		for i, r := range signs {
			if (d.Month() == r.startMonth && d.Day() >= r.startDay) ||
				(d.Month() == r.endMonth && d.Day() <= r.endDay) {
				matches++
				if SignFor(d) != Sign(i) {
					t.Errorf("SignFor(%s) = %v, range says %v", d.Format("01-02"), SignFor(d), Sign(i))
				}
			}
		}
		if matches != 1 {
			t.Errorf("%s matched %d ranges, want 1", d.Format("01-02"), matches)
		}
		counts[SignFor(d)]++
	}
	if len(counts) != NumSigns {
		t.Errorf("year covered %d signs, want %d", len(counts), NumSigns)
	}
}

func TestFromBirthdate(t *testing.T) {
	tests := []struct {
		in   string
		want Sign
	}{
		{"2024-03-20", Pisces},
		{"2024-03-21", Aries},
		{"1990-08-15", Leo},
		{"1990-08-15T23:30:00-07:00", Leo},
		{"08/15/1990", Leo},
		{"  1985-12-25 ", Capricorn},
	}
	for _, tt := range tests {
		got, err := FromBirthdate(tt.in)
		if err != nil {
			t.Errorf("FromBirthdate(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("FromBirthdate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFromBirthdateInvalid(t *testing.T) {
	for _, in := range []string{"", "not a date", "2024-13-01", "2024-02-30", "15/08/1990"} {
		_, err := FromBirthdate(in)
		if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("FromBirthdate(%q) error = %v, want ErrInvalidDate", in, err)
		}
	}
}

func TestSignOrDefault(t *testing.T) {
	if got, fellBack := SignOrDefault("garbage"); got != Aries || !fellBack {
		t.Errorf("SignOrDefault(garbage) = %v, %v, want Aries, true", got, fellBack)
	}
	if got, fellBack := SignOrDefault("2000-07-04"); got != Cancer || fellBack {
		t.Errorf("SignOrDefault(2000-07-04) = %v, %v, want Cancer, false", got, fellBack)
	}
}

func TestConstellationID(t *testing.T) {
	tests := []struct {
		sign Sign
		want string
	}{
		{Aries, "aries"},
		{Scorpio, "scorpius"},
		{Capricorn, "capricornus"},
		{Pisces, "pisces"},
		{Sign(99), ""},
	}
	for _, tt := range tests {
		if got := tt.sign.ConstellationID(); got != tt.want {
			t.Errorf("%v.ConstellationID() = %q, want %q", tt.sign, got, tt.want)
		}
	}
	for _, s := range All() {
		back, ok := FromConstellationID(s.ConstellationID())
		if !ok || back != s {
			t.Errorf("FromConstellationID(%q) = %v, %v, want %v", s.ConstellationID(), back, ok, s)
		}
	}
}

func TestParseSign(t *testing.T) {
	tests := []struct {
		in     string
		want   Sign
		wantOK bool
	}{
		{"Leo", Leo, true},
		{"scorpio", Scorpio, true},
		{"SCORPIUS", Scorpio, true},
		{" capricornus ", Capricorn, true},
		{"ophiuchus", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseSign(tt.in)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("ParseSign(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSignLabels(t *testing.T) {
	if got := Aries.Symbol(); got != "♈" {
		t.Errorf("Aries.Symbol() = %q", got)
	}
	if got := Pisces.Symbol(); got != "♓" {
		t.Errorf("Pisces.Symbol() = %q", got)
	}
	if got := Pisces.DateRange(); got != "Feb 19 - Mar 20" {
		t.Errorf("Pisces.DateRange() = %q", got)
	}
	if got := Sign(-1).String(); got != "Sign(-1)" {
		t.Errorf("Sign(-1).String() = %q", got)
	}
	if Pisces.Next() != Aries || Aries.Prev() != Pisces {
		t.Error("Next/Prev should wrap")
	}
}

func TestCurrentConstellationID(t *testing.T) {
	got := CurrentConstellationID(time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC))
	if got != "scorpius" {
		t.Errorf("CurrentConstellationID(Nov 1) = %q, want scorpius", got)
	}
}
