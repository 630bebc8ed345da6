package util

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// FormatPercent renders a 0-100 value with one decimal, e.g. "87.5%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// FormatHours renders an hour count with one decimal, e.g. "6.5h".
func FormatHours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}

// FormatNumber formats an int with K/M suffix for readability.
// Examples: 500 -> "500", 1500 -> "1.5K", 1500000 -> "1.5M"
func FormatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000)
}

// FormatDateHuman formats a date as "Jan 2, 2006". The zero time renders
// as an empty string.
func FormatDateHuman(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// Truncate shortens s to at most max runes, ending with "..." when cut.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 3 {
		return string([]rune(s)[:max])
	}
	return string([]rune(s)[:max-3]) + "..."
}
