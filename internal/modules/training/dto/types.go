package dto

// SessionInput is raw user text for a create or an edit.
type SessionInput struct {
	Style    string
	Date     string
	Distance string
	Duration string
	Climb    string
}

type SessionOutput struct {
	ID              string   `json:"id"`
	Style           string   `json:"style"`
	StyleLabel      string   `json:"styleLabel"`
	Color           string   `json:"color"`
	TracksClimb     bool     `json:"tracksClimb"`
	Date            string   `json:"date"`
	Season          string   `json:"season"`
	DistanceKM      float64  `json:"distanceKm"`
	DurationSeconds int      `json:"durationSeconds"`
	Duration        string   `json:"duration"`
	ClimbMeters     float64  `json:"climbMeters"`
	PaceSecPerKM    float64  `json:"paceSecPerKm"`
	Stifa           *float64 `json:"stifa"`
}

type TotalsOutput struct {
	Count            int     `json:"count"`
	TotalDistanceKM  float64 `json:"totalDistanceKm"`
	TotalSeconds     int     `json:"totalSeconds"`
	Duration         string  `json:"duration"`
	TotalClimbMeters float64 `json:"totalClimbMeters"`
	AvgPaceSecPerKM  float64 `json:"avgPaceSecPerKm"`
	AvgStifa         float64 `json:"avgStifa"`
}

type StyleSummaryOutput struct {
	Style           string   `json:"style"`
	Label           string   `json:"label"`
	Color           string   `json:"color"`
	Count           int      `json:"count"`
	DistanceKM      float64  `json:"distanceKm"`
	DurationSeconds int      `json:"durationSeconds"`
	Duration        string   `json:"duration"`
	ClimbMeters     float64  `json:"climbMeters"`
	PaceSecPerKM    float64  `json:"paceSecPerKm"`
	Stifa           *float64 `json:"stifa"`
}

type ShareOutput struct {
	Style      string  `json:"style"`
	Color      string  `json:"color"`
	DistanceKM float64 `json:"distanceKm"`
	Fraction   float64 `json:"fraction"`
	StartAngle float64 `json:"startAngle"`
	SweepAngle float64 `json:"sweepAngle"`
}

type SummaryOutput struct {
	Season  string               `json:"season"`
	Totals  TotalsOutput         `json:"totals"`
	ByStyle []StyleSummaryOutput `json:"byStyle"`
	Shares  []ShareOutput        `json:"shares"`
}

type SeasonsOutput struct {
	Current string   `json:"current"`
	Options []string `json:"options"`
}

// ViewState is the selection a caller carries between renders.
type ViewState struct {
	SummarySeason string
	LogFilter     string
	EditingID     string
}

type StyleOutput struct {
	Style       string `json:"style"`
	Label       string `json:"label"`
	Color       string `json:"color"`
	TracksClimb bool   `json:"tracksClimb"`
}

type ViewOutput struct {
	State   ViewState
	Styles  []StyleOutput
	Seasons SeasonsOutput
	Log     []SessionOutput
	Summary SummaryOutput
	Editing *SessionOutput
}

type LoadReportOutput struct {
	Source     string `json:"source"`
	Total      int    `json:"total"`
	Kept       int    `json:"kept"`
	Dropped    int    `json:"dropped"`
	Backfilled int    `json:"backfilled"`
	Reassigned int    `json:"reassigned"`
	Corrupt    bool   `json:"corrupt"`
	ReadError  string `json:"readError,omitempty"`
}
