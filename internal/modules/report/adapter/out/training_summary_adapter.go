package out

import (
	"context"

	"skidlogg/internal/modules/report/domain"
	reportout "skidlogg/internal/modules/report/port/out"
	trainingin "skidlogg/internal/modules/training/port/in"
)

type TrainingSummaryAdapter struct {
	training trainingin.Usecase
}

func NewTrainingSummaryAdapter(training trainingin.Usecase) reportout.SummarySource {
	return &TrainingSummaryAdapter{training: training}
}

func (a *TrainingSummaryAdapter) SeasonSummary(ctx context.Context, season string) (domain.SeasonSummary, error) {
	summary, err := a.training.Summary(ctx, season)
	if err != nil {
		return domain.SeasonSummary{}, err
	}
	fractions := make(map[string]float64, len(summary.Shares))
	for _, share := range summary.Shares {
		fractions[share.Style] = share.Fraction
	}
	out := domain.SeasonSummary{
		Season:          summary.Season,
		Count:           summary.Totals.Count,
		DistanceKM:      summary.Totals.TotalDistanceKM,
		Duration:        summary.Totals.Duration,
		ClimbMeters:     summary.Totals.TotalClimbMeters,
		AvgPaceSecPerKM: summary.Totals.AvgPaceSecPerKM,
		AvgStifa:        summary.Totals.AvgStifa,
		Styles:          make([]domain.StyleLine, 0, len(summary.ByStyle)),
	}
	for _, row := range summary.ByStyle {
		out.Styles = append(out.Styles, domain.StyleLine{
			Style:        row.Style,
			Label:        row.Label,
			Count:        row.Count,
			DistanceKM:   row.DistanceKM,
			Duration:     row.Duration,
			ClimbMeters:  row.ClimbMeters,
			PaceSecPerKM: row.PaceSecPerKM,
			Stifa:        row.Stifa,
			Fraction:     fractions[row.Style],
		})
	}
	return out, nil
}
