package enrich

import (
	"strconv"
	"strings"
)

// ParseMagnitude parses short-form magnitude strings to an exact value:
// "12K" -> 12000, "3.4M" -> 3400000, "1,250" -> 1250. Thousands separators
// and whitespace are stripped before suffix detection. Unparseable input
// yields 0, never an error.
func ParseMagnitude(s string) float64 {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0
	}

	// Strip separators and decorations that show up in research payloads.
	replacer := strings.NewReplacer(",", "", " ", "", " ", "", "+", "", "%", "")
	s = replacer.Replace(s)
	if s == "" {
		return 0
	}

	multiplier := 1.0
	switch s[len(s)-1] {
	case 'k':
		multiplier = 1e3
		s = s[:len(s)-1]
	case 'm':
		multiplier = 1e6
		s = s[:len(s)-1]
	}

	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return val * multiplier
}

// ParseCount coerces a loosely typed numeric value (JSON numbers arrive as
// float64, some providers send strings, ranges like "1-2" take the upper
// bound) to a float64. Unparseable input yields 0.
func ParseCount(v any) float64 {
	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		return val
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0
		}
		// Ranges like "1-2" or "3–5": take the upper bound.
		for _, sep := range []string{"-", "–"} {
			if idx := strings.LastIndex(s, sep); idx > 0 {
				if upper := ParseMagnitude(s[idx+len(sep):]); upper > 0 {
					return upper
				}
			}
		}
		return ParseMagnitude(s)
	}
	return 0
}
