package service

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"skidlogg/internal/modules/training/domain"
)

// record is the persisted shape of one session. Field names predate this
// program and must not change.
type record struct {
	ID              string  `json:"id"`
	Style           string  `json:"style"`
	Date            string  `json:"date"`
	Distance        float64 `json:"distance"`
	DurationSeconds int     `json:"durationSeconds"`
	Elevation       float64 `json:"elevation"`
	Season          string  `json:"season"`
}

// LoadReport counts what normalization did to the stored records.
type LoadReport struct {
	Total      int
	Kept       int
	Dropped    int
	Backfilled int
	Reassigned int
	Corrupt    bool
	// ReadError is set when the store could not be read at all.
	ReadError string
}

func encodeSessions(sessions []domain.Session) ([]byte, error) {
	records := make([]record, 0, len(sessions))
	for _, session := range sessions {
		records = append(records, record{
			ID:              session.ID,
			Style:           string(session.Style),
			Date:            session.DateString(),
			Distance:        session.DistanceKM,
			DurationSeconds: session.DurationSeconds,
			Elevation:       session.ClimbMeters,
			Season:          string(session.Season),
		})
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode sessions: %w", err)
	}
	return data, nil
}

// decodeSessions is lenient: anything that is not an array of objects yields
// nothing, and each bad element is dropped on its own.
func decodeSessions(data []byte, newID func() string) ([]domain.Session, LoadReport) {
	var report LoadReport
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, report
	}
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		report.Corrupt = true
		return nil, report
	}
	report.Total = len(raw)
	seen := make(map[string]struct{}, len(raw))
	out := make([]domain.Session, 0, len(raw))
	for _, item := range raw {
		fields, ok := item.(map[string]any)
		if !ok {
			report.Dropped++
			continue
		}
		session, backfilled, ok := normalizeRecord(fields)
		if !ok {
			report.Dropped++
			continue
		}
		if session.ID == "" {
			session.ID = newID()
			backfilled = true
		} else if _, dup := seen[session.ID]; dup {
			session.ID = newID()
			report.Reassigned++
		}
		if backfilled {
			report.Backfilled++
		}
		seen[session.ID] = struct{}{}
		out = append(out, session)
	}
	report.Kept = len(out)
	return out, report
}

func normalizeRecord(fields map[string]any) (domain.Session, bool, bool) {
	style := domain.Style(strings.TrimSpace(asString(fields["style"])))
	rawDate := asString(fields["date"])
	if style == "" || strings.TrimSpace(rawDate) == "" {
		return domain.Session{}, false, false
	}
	if style.Validate() != nil {
		return domain.Session{}, false, false
	}
	date, err := domain.ParseDate(rawDate)
	if err != nil {
		return domain.Session{}, false, false
	}
	distance := asFloat(fields["distance"])
	seconds := int(math.Round(asFloat(fields["durationSeconds"])))
	if distance <= 0 || seconds <= 0 {
		return domain.Session{}, false, false
	}
	climb := 0.0
	if style.TracksClimb() {
		climb = math.Max(asFloat(fields["elevation"]), 0)
	}
	backfilled := false
	season := domain.Season(strings.TrimSpace(asString(fields["season"])))
	if season == "" {
		season = domain.Classify(date)
		backfilled = true
	}
	return domain.Session{
		ID:              strings.TrimSpace(asString(fields["id"])),
		Style:           style,
		Date:            date,
		DistanceKM:      distance,
		DurationSeconds: seconds,
		ClimbMeters:     climb,
		Season:          season,
	}, backfilled, true
}

func asString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// asFloat coerces a decoded JSON value to a finite number, or 0.
func asFloat(v any) float64 {
	var out float64
	switch x := v.(type) {
	case float64:
		out = x
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		out = parsed
	case bool:
		if x {
			out = 1
		}
	default:
		return 0
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0
	}
	return out
}
