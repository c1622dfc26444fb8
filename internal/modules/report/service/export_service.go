package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"skidlogg/internal/modules/report/domain"
	reportout "skidlogg/internal/modules/report/port/out"
	"skidlogg/internal/platform/clock"
	"skidlogg/internal/platform/format"
	"skidlogg/internal/platform/markdown"
	"skidlogg/internal/platform/slug"
)

type ExportService struct {
	clock  clock.Clock
	source reportout.SummarySource
	store  reportout.NoteStore
	format format.Formatter
}

func NewExportService(clock clock.Clock, source reportout.SummarySource, store reportout.NoteStore, formatter format.Formatter) *ExportService {
	return &ExportService{clock: clock, source: source, store: store, format: formatter}
}

// NoteName is the report file name for a season label.
func NoteName(season string) string {
	return "season-" + slug.Make(season) + ".md"
}

// ExportSeason writes or refreshes the season note. Only the header keys it
// owns and the managed block are rewritten.
func (s *ExportService) ExportSeason(ctx context.Context, season string) (domain.SeasonReport, error) {
	summary, err := s.source.SeasonSummary(ctx, season)
	if err != nil {
		return domain.SeasonReport{}, err
	}
	if err := summary.Validate(); err != nil {
		return domain.SeasonReport{}, err
	}
	name := NoteName(summary.Season)
	existing, err := s.store.Read(ctx, name)
	if err != nil {
		return domain.SeasonReport{}, err
	}
	note, err := markdown.ParseNote(existing)
	if err != nil {
		log.WithError(err).WithField("note", name).Warn("report header unreadable, rewriting it")
		note = markdown.Note{Meta: map[string]any{}, Body: existing}
	}
	now := s.clock.Now()
	for key, value := range s.meta(summary, now) {
		note.Meta[key] = value
	}
	block := markdown.Block{Start: domain.ManagedSummaryStart, End: domain.ManagedSummaryEnd}
	note.Body = block.Replace(note.Body, s.table(summary))

	content, err := note.Render()
	if err != nil {
		return domain.SeasonReport{}, err
	}
	path, err := s.store.Write(ctx, name, content)
	if err != nil {
		return domain.SeasonReport{}, err
	}
	log.WithFields(log.Fields{"season": summary.Season, "path": path}).Info("season report exported")
	return domain.SeasonReport{Summary: summary, GeneratedAt: now, Path: path}, nil
}

func (s *ExportService) meta(summary domain.SeasonSummary, now time.Time) map[string]any {
	return map[string]any{
		"type":          "season-report",
		"season":        summary.Season,
		"generated_at":  now.Format(time.RFC3339),
		"sessions":      summary.Count,
		"distance_km":   round(summary.DistanceKM, 2),
		"duration":      summary.Duration,
		"climb_m":       round(summary.ClimbMeters, 0),
		"avg_pace":      s.format.Pace(summary.AvgPaceSecPerKM),
		"avg_stifa":     round(summary.AvgStifa, 2),
		"styles_logged": loggedStyles(summary.Styles),
	}
}

func (s *ExportService) table(summary domain.SeasonSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Säsong %s\n\n", summary.Season)
	b.WriteString("| Stil | Pass | Distans (km) | Tid | Höjdmeter | Tempo | Stifa | Andel |\n")
	b.WriteString("|---|---:|---:|---:|---:|---:|---:|---:|\n")
	for _, line := range summary.Styles {
		// Styles without climb carry a nil stifa.
		climb := format.Unavailable
		if line.Stifa != nil {
			climb = s.format.Number(line.ClimbMeters, 0)
		}
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s | %s | %s | %s %% |\n",
			line.Style,
			line.Count,
			s.format.Number(line.DistanceKM, 1),
			line.Duration,
			climb,
			s.format.Pace(line.PaceSecPerKM),
			s.format.Ratio(line.Stifa, 1),
			s.format.Number(line.Fraction*100, 0),
		)
	}
	fmt.Fprintf(&b, "| **Totalt** | %d | %s | %s | %s | %s | %s | |\n",
		summary.Count,
		s.format.Number(summary.DistanceKM, 1),
		summary.Duration,
		s.format.Number(summary.ClimbMeters, 0),
		s.format.Pace(summary.AvgPaceSecPerKM),
		s.format.Number(summary.AvgStifa, 1),
	)
	if summary.DistanceKM <= 0 {
		b.WriteString("\nIngen distans\n")
	}
	return b.String()
}

func loggedStyles(lines []domain.StyleLine) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line.Count > 0 {
			out = append(out, line.Style)
		}
	}
	return out
}

func round(value float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	return math.Round(value*scale) / scale
}
