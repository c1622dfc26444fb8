package domain

import (
	"fmt"
	"strings"
	"time"

	"skidlogg/internal/platform/clock"
)

// DateLayout is the persisted calendar date format.
const DateLayout = "2006-01-02"

type Session struct {
	ID              string
	Style           Style
	Date            time.Time
	DistanceKM      float64
	DurationSeconds int
	ClimbMeters     float64
	Season          Season
}

func (s Session) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if err := s.Style.Validate(); err != nil {
		return err
	}
	if s.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if s.DistanceKM <= 0 {
		return fmt.Errorf("distance must be positive")
	}
	if s.DurationSeconds <= 0 {
		return fmt.Errorf("duration must be positive")
	}
	if s.ClimbMeters < 0 {
		return fmt.Errorf("climb must not be negative")
	}
	return nil
}

// DateString renders the session date the way it is persisted.
func (s Session) DateString() string {
	return s.Date.Format(DateLayout)
}

// ParseDate reads an ISO calendar date into UTC midnight.
func ParseDate(raw string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(raw), time.UTC)
}

// CurrentSeason classifies today's date as seen by c.
func CurrentSeason(c clock.Clock) Season {
	now := c.Now()
	return Classify(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC))
}
