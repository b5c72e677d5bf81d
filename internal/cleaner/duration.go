package cleaner

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var ageUnits = map[byte]time.Duration{
	's': time.Second,
	'm': time.Minute,
	'h': time.Hour,
	'd': 24 * time.Hour,
	'w': 7 * 24 * time.Hour,
}

// ParseAge parses an age threshold such as "30d": a non-negative integer
// followed by one of s, m, h, d, w. Surrounding whitespace is ignored.
func ParseAge(raw string) (time.Duration, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: duration cannot be empty", ErrConfiguration)
	}
	if len(s) < 2 {
		return 0, fmt.Errorf("%w: invalid duration %q: must be a number followed by a unit (s, m, h, d, w)", ErrConfiguration, raw)
	}

	num, unitChar := s[:len(s)-1], s[len(s)-1]
	unit, ok := ageUnits[unitChar]
	if !ok {
		return 0, fmt.Errorf("%w: invalid duration unit %q in %q, use s, m, h, d or w", ErrConfiguration, string(unitChar), raw)
	}

	for i := 0; i < len(num); i++ {
		if num[i] < '0' || num[i] > '9' {
			return 0, fmt.Errorf("%w: invalid number %q in duration %q", ErrConfiguration, num, raw)
		}
	}

	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil || n > math.MaxInt64/int64(unit) {
		return 0, fmt.Errorf("%w: duration %q is out of range", ErrConfiguration, raw)
	}

	return time.Duration(n) * unit, nil
}
