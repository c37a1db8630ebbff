package profile

import (
	"math"
	"testing"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"   ", 0},
		{"42", 42},
		{" 42 ", 42},
		{"-3.5", -3.5},
		{"+7", 7},
		{"1.", 1},
		{".5", 0.5},
		{"1e3", 1000},
		{"2E-2", 0.02},
		{"0x1F", 31},
		{"0b101", 5},
		{"0o17", 15},
		{"007", 7},
		{"Infinity", math.Inf(1)},
		{"-Infinity", math.Inf(-1)},
		{"1e400", math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseNumber(tt.in); got != tt.want {
				t.Errorf("ParseNumber(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseNumberNaN(t *testing.T) {
	for _, in := range []string{"abc", "12px", "1_000", "0x", "-0x10", "inf", "NaN", "1 2", "0xZZ"} {
		t.Run(in, func(t *testing.T) {
			if got := ParseNumber(in); !math.IsNaN(got) {
				t.Errorf("ParseNumber(%q) = %v, want NaN", in, got)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{4, "4"},
		{-12, "-12"},
		{0.1 + 0.2, "0.30000000000000004"},
		{1.5, "1.5"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{1.5e-7, "1.5e-7"},
		{0.000001, "0.000001"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatNumber(tt.in); got != tt.want {
				t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
