package journal

import (
	"strconv"
	"strings"
)

// ParseTimeOfDay converts free text like "08:30" or "08:30:00" into an hour
// offset (8.5). The seconds part, when present, is ignored. Hand-typed input
// is expected to be messy: anything that does not split on ":" into at least
// two integer parts reports ok=false instead of an error, so a garbled field
// suppresses its visual element without blocking the rest of the week.
func ParseTimeOfDay(s string) (float64, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 {
		return 0, false
	}
	hh, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	mm, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	return float64(hh) + float64(mm)/60, true
}

// ParseDuration converts free text like "7h45", "1h" or "45min" into hours.
// Unparseable or empty input reports ok=false.
func ParseDuration(s string) (float64, bool) {
	s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	if s == "" {
		return 0, false
	}

	var hours, minutes int
	switch {
	case strings.Contains(s, "h"):
		head, rest, _ := strings.Cut(s, "h")
		hh, err := strconv.Atoi(head)
		if err != nil {
			return 0, false
		}
		hours = hh
		if rest != "" {
			rest = strings.TrimSuffix(rest, "min")
			mm, err := strconv.Atoi(rest)
			if err != nil {
				return 0, false
			}
			minutes = mm
		}
	case strings.Contains(s, "min"):
		mm, err := strconv.Atoi(strings.TrimSuffix(s, "min"))
		if err != nil {
			return 0, false
		}
		minutes = mm
	default:
		return 0, false
	}

	return float64(hours) + float64(minutes)/60, true
}
