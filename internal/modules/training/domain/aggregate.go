package domain

import "math"

// Totals is the season summary over a filtered set of sessions.
type Totals struct {
	Count            int
	TotalDistanceKM  float64
	TotalSeconds     int
	TotalClimbMeters float64
	AvgPaceSecPerKM  float64
	AvgStifa         float64
}

// StyleSummary is one row of the per-style breakdown. Stifa is nil for
// styles that do not track climb.
type StyleSummary struct {
	Style           Style
	Count           int
	DistanceKM      float64
	DurationSeconds int
	ClimbMeters     float64
	PaceSecPerKM    float64
	Stifa           *float64
}

// Share is a style's slice of the total distance, as angles in radians.
type Share struct {
	Style      Style
	DistanceKM float64
	Fraction   float64
	StartAngle float64
	SweepAngle float64
}

// ShareStartAngle points straight up.
const ShareStartAngle = -math.Pi / 2

func Summarize(sessions []Session) Totals {
	var totals Totals
	climbDistance := 0.0
	for _, session := range sessions {
		totals.Count++
		totals.TotalDistanceKM += session.DistanceKM
		totals.TotalSeconds += session.DurationSeconds
		if session.Style.TracksClimb() {
			totals.TotalClimbMeters += session.ClimbMeters
			climbDistance += session.DistanceKM
		}
	}
	totals.AvgPaceSecPerKM = ratio(float64(totals.TotalSeconds), totals.TotalDistanceKM)
	totals.AvgStifa = ratio(totals.TotalClimbMeters, climbDistance)
	return totals
}

// ByStyle returns one entry per style in fixed order, empty styles included.
func ByStyle(sessions []Session) []StyleSummary {
	index := make(map[Style]int, len(styles))
	out := make([]StyleSummary, len(styles))
	for i, info := range styles {
		out[i] = StyleSummary{Style: info.Style}
		index[info.Style] = i
	}
	for _, session := range sessions {
		i, ok := index[session.Style]
		if !ok {
			continue
		}
		out[i].Count++
		out[i].DistanceKM += session.DistanceKM
		out[i].DurationSeconds += session.DurationSeconds
		if session.Style.TracksClimb() {
			out[i].ClimbMeters += session.ClimbMeters
		}
	}
	for i := range out {
		out[i].PaceSecPerKM = ratio(float64(out[i].DurationSeconds), out[i].DistanceKM)
		if out[i].Style.TracksClimb() {
			stifa := ratio(out[i].ClimbMeters, out[i].DistanceKM)
			out[i].Stifa = &stifa
		}
	}
	return out
}

// Shares splits a full turn between styles by distance. A zero total has no
// shares at all.
func Shares(rows []StyleSummary) []Share {
	total := 0.0
	for _, row := range rows {
		total += row.DistanceKM
	}
	if total <= 0 {
		return nil
	}
	out := make([]Share, 0, len(rows))
	start := ShareStartAngle
	for _, row := range rows {
		if row.DistanceKM <= 0 {
			continue
		}
		fraction := row.DistanceKM / total
		sweep := fraction * 2 * math.Pi
		out = append(out, Share{
			Style:      row.Style,
			DistanceKM: row.DistanceKM,
			Fraction:   fraction,
			StartAngle: start,
			SweepAngle: sweep,
		})
		start += sweep
	}
	return out
}

// SessionPace is seconds per kilometre for one session.
func SessionPace(s Session) float64 {
	return ratio(float64(s.DurationSeconds), s.DistanceKM)
}

// SessionStifa is climb per kilometre, false for styles without climb.
func SessionStifa(s Session) (float64, bool) {
	if !s.Style.TracksClimb() {
		return 0, false
	}
	return ratio(s.ClimbMeters, s.DistanceKM), true
}

func ratio(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator
}
