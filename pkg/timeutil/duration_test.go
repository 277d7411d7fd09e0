package timeutil

import (
	"testing"
	"time"
)

func TestParseWindowDefault(t *testing.T) {
	dur, label, err := ParseWindow("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 7 * 24 * time.Hour
	if dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
	if label != "1w" {
		t.Fatalf("expected label 1w, got %s", label)
	}
}

func TestParseWindowComposite(t *testing.T) {
	dur, label, err := ParseWindow("1w2d6h30m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := (7*24+2*24+6)*time.Hour + 30*time.Minute
	if dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
	if label != "1w2d6h30m" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseWindowInvalid(t *testing.T) {
	if _, _, err := ParseWindow("noop"); err == nil {
		t.Fatalf("expected error for invalid window")
	}
}

func TestParseMinutes(t *testing.T) {
	tests := map[string]int{
		"45":      45,
		" 0 ":     0,
		"45m":     45,
		"1h30m":   90,
		"90 mins": 90,
		"2h":      120,
	}
	for in, want := range tests {
		got, err := ParseMinutes(in)
		if err != nil {
			t.Fatalf("ParseMinutes(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseMinutes(%q) = %d, want %d", in, got, want)
		}
	}
	for _, bad := range []string{"", "-5", "30s", "soon"} {
		if _, err := ParseMinutes(bad); err == nil {
			t.Fatalf("ParseMinutes(%q) expected error", bad)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	if got := FormatMinutes(90); got != "1h30m" {
		t.Fatalf("FormatMinutes(90) = %q", got)
	}
	if got := FormatMinutes(0); got != "0m" {
		t.Fatalf("FormatMinutes(0) = %q", got)
	}
	if got := FormatMinutes(24 * 60); got != "1d" {
		t.Fatalf("FormatMinutes(1440) = %q", got)
	}
}

func TestParseWindowUnits(t *testing.T) {
	tests := map[string]string{
		"3 days":        "3d",
		"2 Weeks":       "2w",
		"36h":           "1d12h",
		"1wk 1day 90m ": "1w1d1h30m",
	}
	for in, want := range tests {
		_, label, err := ParseWindow(in)
		if err != nil {
			t.Fatalf("ParseWindow(%q): %v", in, err)
		}
		if label != want {
			t.Fatalf("ParseWindow(%q) label = %q, want %q", in, label, want)
		}
	}
	for _, bad := range []string{"0d", "3x", "3d soon", "d3"} {
		if _, _, err := ParseWindow(bad); err == nil {
			t.Fatalf("ParseWindow(%q) expected error", bad)
		}
	}
}
