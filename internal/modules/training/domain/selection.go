package domain

import "sort"

// LogFilter selects which sessions the log shows.
type LogFilter string

const (
	LogCurrent LogFilter = "__current__"
	LogAll     LogFilter = "__all__"
)

// ParseLogFilter accepts "current", "all" or a season label.
func ParseLogFilter(raw string) LogFilter {
	switch raw {
	case "", "current", string(LogCurrent):
		return LogCurrent
	case "all", string(LogAll):
		return LogAll
	default:
		return LogFilter(raw)
	}
}

// ViewState is what the user has selected. It lives only in memory and is
// passed in and out of every render.
type ViewState struct {
	SummarySeason Season
	LogFilter     LogFilter
	EditingID     string
}

// DefaultViewState selects the current season everywhere.
func DefaultViewState(current Season) ViewState {
	return ViewState{SummarySeason: current, LogFilter: LogCurrent}
}

// Resolve resets selections that no longer match the options, and drops an
// edit target that is gone.
func (v ViewState) Resolve(options []Season, current Season, exists func(id string) bool) ViewState {
	out := v
	if out.SummarySeason == "" || !ContainsSeason(options, out.SummarySeason) {
		out.SummarySeason = current
	}
	switch out.LogFilter {
	case LogCurrent, LogAll:
	default:
		if !ContainsSeason(options, Season(out.LogFilter)) {
			out.LogFilter = LogCurrent
		}
	}
	if out.EditingID != "" && (exists == nil || !exists(out.EditingID)) {
		out.EditingID = ""
	}
	return out
}

// LogSeason is the season the filter names, false for LogAll.
func (v ViewState) LogSeason(current Season) (Season, bool) {
	switch v.LogFilter {
	case LogAll:
		return "", false
	case LogCurrent, "":
		return current, true
	default:
		return Season(v.LogFilter), true
	}
}

// FilterSeason keeps sessions of season, preserving order.
func FilterSeason(sessions []Session, season Season) []Session {
	out := make([]Session, 0, len(sessions))
	for _, session := range sessions {
		if session.Season == season {
			out = append(out, session)
		}
	}
	return out
}

// SortByDateDesc orders newest first. Equal dates keep their input order.
func SortByDateDesc(sessions []Session) []Session {
	out := make([]Session, len(sessions))
	copy(out, sessions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// CycleSeason steps through options, wrapping at both ends.
func CycleSeason(options []Season, selected Season, step int) Season {
	if len(options) == 0 {
		return selected
	}
	pos := 0
	for i, option := range options {
		if option == selected {
			pos = i
			break
		}
	}
	pos = ((pos+step)%len(options) + len(options)) % len(options)
	return options[pos]
}
