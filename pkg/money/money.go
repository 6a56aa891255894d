// Package money parses the loosely formatted monetary strings stored on
// legacy property and tenant records ("15,000", "₹ 12000.50", "12k" typos).
// Malformed values coerce to zero instead of failing: a single bad record
// must never abort a dashboard computation.
package money

import (
	"strconv"
	"strings"
)

// Parse extracts a numeric amount from s. Every rune that is not an ASCII
// digit or a decimal point is stripped before parsing; an empty or
// unparseable remainder yields 0.
func Parse(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" {
		return 0
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// Format renders an amount with thousand separators for human-facing
// insight strings ("65,000"). Fractions are dropped; this is display only.
func Format(amount float64) string {
	whole := strconv.FormatInt(int64(amount), 10)

	neg := strings.HasPrefix(whole, "-")
	if neg {
		whole = whole[1:]
	}

	var b strings.Builder
	lead := len(whole) % 3
	if lead > 0 {
		b.WriteString(whole[:lead])
	}
	for i := lead; i < len(whole); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(whole[i : i+3])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
