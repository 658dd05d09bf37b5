package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"Warning", LevelWarn},
		{" error ", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelWarn)
	log.SetOutput(&buf)

	log.Debug("debug %d", 1)
	log.Info("info %d", 2)
	log.Warn("warn %d", 3)
	log.Error("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Errorf("messages below WARN leaked: %q", out)
	}
	if !strings.Contains(out, "warn 3") || !strings.Contains(out, "WARN") {
		t.Errorf("missing warn line: %q", out)
	}
	if !strings.Contains(out, "error 4") {
		t.Errorf("missing error line: %q", out)
	}

	buf.Reset()
	log.SetLevel(LevelDebug)
	log.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("SetLevel(debug) had no effect: %q", buf.String())
	}
}

func TestWithAddsField(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelInfo)
	log.SetOutput(&buf)

	log.With("component", "starfield").Info("started")
	if !strings.Contains(buf.String(), "starfield") {
		t.Errorf("field missing from %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	log.Error("nothing %s", "here")
	log.With("k", "v").Warn("still nothing")
}
