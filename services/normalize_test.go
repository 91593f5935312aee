package services

import (
	"testing"
	"time"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"plain number", "4000", 4000},
		{"decimal", "4000.50", 4000.50},
		{"peso sign", "₱4,000.00", 4000},
		{"php prefix upper", "PHP 1,250.50", 1250.50},
		{"php prefix mixed", "Php 300", 300},
		{"thousands separators", "1,234,567.89", 1234567.89},
		{"surrounding whitespace", "  2500  ", 2500},
		{"negative coerced to zero", "-100", 0},
		{"negative with formatting coerced to zero", "-₱5,000.00", 0},
		{"empty string", "", 0},
		{"not a number", "n/a", 0},
		{"text remark", "see attached", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseAmount(tt.input); got != tt.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFlexibleDate(t *testing.T) {
	now := time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"iso date", "2025-03-01", time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{"iso datetime", "2025-03-01 08:00:00", time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC)},
		{"slash padded", "03/01/2025", time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{"slash short", "3/1/2025", time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{"slash two digit year", "3/1/25", time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{"long month name", "March 1, 2025", time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{"short month name", "Mar 1, 2025", time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{"empty falls back to now", "", now},
		{"garbage falls back to now", "sometime last week", now},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFlexibleDate(tt.input, now)
			if !got.Equal(tt.want) {
				t.Errorf("ParseFlexibleDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatPHP(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "₱0.00"},
		{"hundreds", 999.5, "₱999.50"},
		{"thousands", 4000, "₱4,000.00"},
		{"millions", 1234567.89, "₱1,234,567.89"},
		{"exact group boundary", 100000, "₱100,000.00"},
		{"negative", -1000, "-₱1,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPHP(tt.amount); got != tt.want {
				t.Errorf("FormatPHP(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, amount := range []float64{0, 500, 4000.25, 1234567.89} {
		if got := ParseAmount(FormatPHP(amount)); got != amount {
			t.Errorf("ParseAmount(FormatPHP(%v)) = %v, want the input back", amount, got)
		}
	}
}
