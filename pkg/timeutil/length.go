package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	lengthPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	lengthUnits   = map[string]int{
		"d":     1,
		"day":   1,
		"days":  1,
		"w":     7,
		"wk":    7,
		"wks":   7,
		"week":  7,
		"weeks": 7,
	}
)

// ParseLength parses a task length such as "5d", "2w" or "1w3d" and returns
// the number of days along with a canonical representation.
func ParseLength(input string) (int, string, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return 0, "", fmt.Errorf("empty length")
	}

	total := 0
	for len(remaining) > 0 {
		matches := lengthPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, "", fmt.Errorf("invalid length segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, "", fmt.Errorf("invalid length value %q: %w", matches[1], err)
		}
		days, ok := lengthUnits[matches[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported length unit %q", matches[2])
		}
		total += value * days
		remaining = remaining[len(matches[0]):]
	}

	if total <= 0 {
		return 0, "", fmt.Errorf("length must be greater than zero")
	}
	return total, FormatLength(total), nil
}

// FormatLength renders a day count using week and day tokens.
func FormatLength(days int) string {
	if days <= 0 {
		return "0d"
	}
	var b strings.Builder
	if w := days / 7; w > 0 {
		fmt.Fprintf(&b, "%dw", w)
	}
	if d := days % 7; d > 0 {
		fmt.Fprintf(&b, "%dd", d)
	}
	return b.String()
}

// EndAfter returns the inclusive end date of a task that starts on start and
// lasts days calendar days.
func EndAfter(start time.Time, days int) time.Time {
	if days < 1 {
		days = 1
	}
	return start.AddDate(0, 0, days-1)
}
