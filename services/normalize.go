package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseAmount converts a currency string into a float64 amount.
// It strips the peso sign, a "PHP" prefix, thousands separators and
// surrounding whitespace before parsing. Any parse failure yields 0 — a bad
// amount never fails the row. Currency amounts are non-negative; a negative
// result is treated like a parse failure and yields 0.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "₱", "")
	s = strings.ReplaceAll(s, "Php", "")
	s = strings.ReplaceAll(s, "PHP", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// dateLayouts are tried in order by ParseFlexibleDate. Native formats first,
// then the month/day/year slash forms the office spreadsheets use.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"1/2/06",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseFlexibleDate parses a date string, falling back to now when nothing
// matches. The fallback is a deliberate leniency policy carried over from the
// office's import tooling: a bad date should not reject an otherwise usable
// row, even though it can mask data-entry problems.
func ParseFlexibleDate(s string, now time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return now
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return now
}

// FormatPHP formats an amount in Philippine peso notation with two decimal
// places and 3-digit grouping, e.g. ₱1,234,567.89.
func FormatPHP(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := "₱" + groupThousands(intPart) + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts commas every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "," + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "," + result
}
