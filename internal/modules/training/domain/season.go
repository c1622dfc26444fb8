package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Season labels a training year running June 1 through May 31, e.g. "24/25".
// Two-digit years are kept for compatibility with stored data.
type Season string

// SeasonStartMonth is the first month of a season.
const SeasonStartMonth = time.June

// Classify maps a calendar date to its season label.
func Classify(date time.Time) Season {
	start := date.Year()
	if date.Month() < SeasonStartMonth {
		start--
	}
	return Season(fmt.Sprintf("%02d/%02d", mod100(start), mod100(start+1)))
}

func mod100(year int) int {
	m := year % 100
	if m < 0 {
		m += 100
	}
	return m
}

// StartYear expands the two-digit prefix: 70..99 are 19xx, 00..69 are 20xx.
func (s Season) StartYear() (int, bool) {
	prefix, _, found := strings.Cut(string(s), "/")
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(prefix)
	if err != nil || n < 0 || n > 99 {
		return 0, false
	}
	if n >= 70 {
		return 1900 + n, true
	}
	return 2000 + n, true
}

func (s Season) String() string { return string(s) }

// EnumerateSeasons returns the distinct seasons of sessions plus current,
// newest first. Malformed labels sort last.
func EnumerateSeasons(sessions []Session, current Season) []Season {
	seen := map[Season]struct{}{current: {}}
	out := []Season{current}
	for _, session := range sessions {
		if _, ok := seen[session.Season]; ok || session.Season == "" {
			continue
		}
		seen[session.Season] = struct{}{}
		out = append(out, session.Season)
	}
	sort.SliceStable(out, func(i, j int) bool {
		yi, oki := out[i].StartYear()
		yj, okj := out[j].StartYear()
		switch {
		case oki && okj:
			return yi > yj
		case oki != okj:
			return oki
		default:
			return out[i] < out[j]
		}
	})
	return out
}

// ContainsSeason reports whether options holds season.
func ContainsSeason(options []Season, season Season) bool {
	for _, option := range options {
		if option == season {
			return true
		}
	}
	return false
}
