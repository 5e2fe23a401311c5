// Package dateutil owns the three date representations used across the
// portal: raw user input, the canonical storage form (YYYY-MM-DD) used for
// every comparison, and the display form (YYYY/MM/DD). All conversions are
// total: unparseable input yields an empty string, never an error.
package dateutil

import (
	"strings"
	"time"
)

const (
	CanonicalLayout = "2006-01-02"
	DisplayLayout   = "2006/01/02"
	// WireLayout is what the registry backend expects on submission.
	WireLayout = "2006-01-02"
)

// Parse accepts canonical or display formatted input.
func Parse(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{CanonicalLayout, DisplayLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ToCanonical normalizes a date to YYYY-MM-DD, the only representation used
// as a source of truth.
func ToCanonical(raw string) string {
	t, ok := Parse(raw)
	if !ok {
		return ""
	}
	return t.Format(CanonicalLayout)
}

// ToDisplay renders a canonical or display date as YYYY/MM/DD.
func ToDisplay(raw string) string {
	t, ok := Parse(raw)
	if !ok {
		return ""
	}
	return t.Format(DisplayLayout)
}

// ToWire renders a date in the registry backend's wire format.
func ToWire(raw string) string {
	t, ok := Parse(raw)
	if !ok {
		return ""
	}
	return t.Format(WireLayout)
}

// After reports whether a is strictly after b. Unparseable operands are
// never after anything.
func After(a, b string) bool {
	ta, ok := Parse(a)
	if !ok {
		return false
	}
	tb, ok := Parse(b)
	if !ok {
		return false
	}
	return ta.After(tb)
}

// Today returns the canonical form of the given reference time.
func Today(now time.Time) string {
	return now.Format(CanonicalLayout)
}
