package orekit

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// ParseDuration converts a configured duration value into a time.Duration.
// Accepted forms follow the original tool's conventions: an ISO-8601
// duration string ("PT10M", "P1DT2H") or a number of seconds (numeric value
// or numeric string).
func ParseDuration(v any) (time.Duration, error) {
	switch val := v.(type) {
	case nil:
		return 0, nil
	case time.Duration:
		return val, nil
	case int:
		return time.Duration(val) * time.Second, nil
	case int64:
		return time.Duration(val) * time.Second, nil
	case float64:
		return time.Duration(val * float64(time.Second)), nil
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, nil
		}
		if strings.HasPrefix(strings.ToUpper(s), "P") {
			return parseISO8601(s)
		}
		secs, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: not an ISO-8601 duration or seconds value", s)
		}
		return time.Duration(secs * float64(time.Second)), nil
	default:
		return 0, fmt.Errorf("cannot convert value %v to a duration", v)
	}
}

// parseISO8601 parses the P[nW][nD][T[nH][nM][nS]] subset of ISO-8601
// durations. Months and years are rejected: they have no fixed length.
func parseISO8601(s string) (time.Duration, error) {
	upper := strings.ToUpper(s)
	rest, ok := strings.CutPrefix(upper, "P")
	if !ok {
		return 0, fmt.Errorf("invalid ISO-8601 duration %q", s)
	}

	datePart := rest
	timePart := ""
	if i := strings.IndexByte(rest, 'T'); i >= 0 {
		datePart, timePart = rest[:i], rest[i+1:]
	}

	var total time.Duration
	consume := func(part string, units map[byte]time.Duration) error {
		for len(part) > 0 {
			i := 0
			for i < len(part) && (unicode.IsDigit(rune(part[i])) || part[i] == '.') {
				i++
			}
			if i == 0 || i == len(part) {
				return fmt.Errorf("invalid ISO-8601 duration %q", s)
			}
			unit, ok := units[part[i]]
			if !ok {
				return fmt.Errorf("unsupported unit %q in ISO-8601 duration %q", string(part[i]), s)
			}
			n, err := strconv.ParseFloat(part[:i], 64)
			if err != nil {
				return fmt.Errorf("invalid ISO-8601 duration %q", s)
			}
			total += time.Duration(n * float64(unit))
			part = part[i+1:]
		}
		return nil
	}

	dateUnits := map[byte]time.Duration{
		'W': 7 * 24 * time.Hour,
		'D': 24 * time.Hour,
	}
	timeUnits := map[byte]time.Duration{
		'H': time.Hour,
		'M': time.Minute,
		'S': time.Second,
	}
	if err := consume(datePart, dateUnits); err != nil {
		return 0, err
	}
	if err := consume(timePart, timeUnits); err != nil {
		return 0, err
	}
	return total, nil
}
