package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	ManagedSummaryStart = "<!-- skidlogg:summary:start -->"
	ManagedSummaryEnd   = "<!-- skidlogg:summary:end -->"
)

// StyleLine is one style's share of a season.
type StyleLine struct {
	Style        string
	Label        string
	Count        int
	DistanceKM   float64
	Duration     string
	ClimbMeters  float64
	PaceSecPerKM float64
	Stifa        *float64
	Fraction     float64
}

// SeasonSummary is what a report says about one season.
type SeasonSummary struct {
	Season          string
	Count           int
	DistanceKM      float64
	Duration        string
	ClimbMeters     float64
	AvgPaceSecPerKM float64
	AvgStifa        float64
	Styles          []StyleLine
}

type SeasonReport struct {
	Summary     SeasonSummary
	GeneratedAt time.Time
	Path        string
}

func (s SeasonSummary) Validate() error {
	if strings.TrimSpace(s.Season) == "" {
		return fmt.Errorf("season is required")
	}
	if len(s.Styles) == 0 {
		return fmt.Errorf("season %s has no style breakdown", s.Season)
	}
	return nil
}
