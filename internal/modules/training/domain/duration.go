package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidDuration = errors.New("duration must be mm:ss or hh:mm:ss")

// maxDurationField bounds each field so the total cannot overflow.
const maxDurationField = 99999

// ParseDuration reads "mm:ss" or "hh:mm:ss" into seconds. Every field must be
// a non-negative whole number.
func ParseDuration(text string) (int, error) {
	parts := strings.Split(text, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, ErrInvalidDuration
	}
	values := make([]int, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" || strings.HasPrefix(part, "+") {
			return 0, ErrInvalidDuration
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > maxDurationField {
			return 0, ErrInvalidDuration
		}
		values[i] = n
	}
	if len(values) == 2 {
		return values[0]*60 + values[1], nil
	}
	return values[0]*3600 + values[1]*60 + values[2], nil
}

// FormatDuration renders "h:mm:ss" when there are hours, else "m:ss".
func FormatDuration(seconds float64) string {
	total := int(math.Round(seconds))
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}
