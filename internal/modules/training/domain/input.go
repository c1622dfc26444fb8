package domain

import (
	"math"
	"strconv"
	"strings"
	"time"

	apperrors "skidlogg/internal/platform/errors"
)

type ValidationCode string

const (
	CodeInvalidStyle    ValidationCode = "invalid-style"
	CodeMissingDate     ValidationCode = "missing-date"
	CodeInvalidDate     ValidationCode = "invalid-date"
	CodeInvalidDistance ValidationCode = "invalid-distance"
	CodeInvalidDuration ValidationCode = "invalid-duration"
	CodeInvalidClimb    ValidationCode = "invalid-climb"
)

var validationMessages = map[ValidationCode]string{
	CodeInvalidStyle:    "Välj en giltig stil.",
	CodeMissingDate:     "Ange datum.",
	CodeInvalidDate:     "Datum måste vara i format ÅÅÅÅ-MM-DD.",
	CodeInvalidDistance: "Distans måste vara ett positivt tal.",
	CodeInvalidDuration: "Tid måste vara i format mm:ss eller hh:mm:ss.",
	CodeInvalidClimb:    "Höjdmeter måste vara 0 eller mer.",
}

// ValidationError is the first rule an input broke.
type ValidationError struct {
	Code    ValidationCode
	Message string
}

func newValidationError(code ValidationCode) *ValidationError {
	return &ValidationError{Code: code, Message: validationMessages[code]}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return apperrors.ErrInvalidInput }

// SessionInput is raw form text, before any parsing.
type SessionInput struct {
	Style    string
	Date     string
	Distance string
	Duration string
	Climb    string
}

// SessionPayload is a validated session without an identity.
type SessionPayload struct {
	Style           Style
	Date            time.Time
	DistanceKM      float64
	DurationSeconds int
	ClimbMeters     float64
	Season          Season
}

// ParseInput checks the rules in order and stops at the first failure.
func ParseInput(in SessionInput) (SessionPayload, error) {
	style, err := ParseStyle(in.Style)
	if err != nil {
		return SessionPayload{}, newValidationError(CodeInvalidStyle)
	}
	if strings.TrimSpace(in.Date) == "" {
		return SessionPayload{}, newValidationError(CodeMissingDate)
	}
	date, err := ParseDate(in.Date)
	if err != nil {
		return SessionPayload{}, newValidationError(CodeInvalidDate)
	}
	distance, ok := parseDecimal(in.Distance)
	if !ok || distance <= 0 {
		return SessionPayload{}, newValidationError(CodeInvalidDistance)
	}
	seconds, err := ParseDuration(in.Duration)
	if err != nil || seconds <= 0 {
		return SessionPayload{}, newValidationError(CodeInvalidDuration)
	}
	climb := 0.0
	if style.TracksClimb() {
		value, ok := parseDecimal(in.Climb)
		if !ok || value < 0 {
			return SessionPayload{}, newValidationError(CodeInvalidClimb)
		}
		climb = value
	}
	return SessionPayload{
		Style:           style,
		Date:            date,
		DistanceKM:      distance,
		DurationSeconds: seconds,
		ClimbMeters:     climb,
		Season:          Classify(date),
	}, nil
}

// parseDecimal accepts a decimal comma. Blank text is not a number.
func parseDecimal(raw string) (float64, bool) {
	text := strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if text == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

// Apply turns a payload into a session carrying id.
func (p SessionPayload) Apply(id string) Session {
	return Session{
		ID:              id,
		Style:           p.Style,
		Date:            p.Date,
		DistanceKM:      p.DistanceKM,
		DurationSeconds: p.DurationSeconds,
		ClimbMeters:     p.ClimbMeters,
		Season:          p.Season,
	}
}
