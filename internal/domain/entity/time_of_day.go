package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	appErrors "dailyreminder/internal/pkg/errors"
)

// TimeOfDay is a wall-clock time with minute resolution in canonical "HH:MM" form.
// It carries no date and no zone; it is compared against the process local clock.
type TimeOfDay string

const timeOfDayLayout = "15:04"

// ParseTimeOfDay validates a 24-hour "H:MM" or "HH:MM" value and returns it zero-padded.
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	s := strings.TrimSpace(raw)
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return "", fmt.Errorf("%w: %q", appErrors.ErrInvalidTimeFormat, raw)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 || !isDigits(hh) {
		return "", fmt.Errorf("%w: invalid hour in %q", appErrors.ErrInvalidTimeFormat, raw)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 || !isDigits(mm) {
		return "", fmt.Errorf("%w: invalid minute in %q", appErrors.ErrInvalidTimeFormat, raw)
	}
	return TimeOfDay(fmt.Sprintf("%02d:%02d", h, m)), nil
}

// TimeOfDayFrom truncates t to the minute in its own location.
func TimeOfDayFrom(t time.Time) TimeOfDay {
	return TimeOfDay(t.Format(timeOfDayLayout))
}

func (t TimeOfDay) String() string {
	return string(t)
}

// IsValid reports whether t is already in canonical form.
func (t TimeOfDay) IsValid() bool {
	parsed, err := ParseTimeOfDay(string(t))
	return err == nil && parsed == t
}

// strconv.Atoi accepts a leading sign, which is not a valid clock digit.
func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
