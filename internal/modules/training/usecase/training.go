package usecase

import (
	"context"

	"skidlogg/internal/modules/training/domain"
	"skidlogg/internal/modules/training/dto"
	trainingin "skidlogg/internal/modules/training/port/in"
	"skidlogg/internal/modules/training/service"
)

type Interactor struct {
	svc *service.SessionService
}

func NewInteractor(svc *service.SessionService) trainingin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Create(ctx context.Context, input dto.SessionInput) (dto.SessionOutput, error) {
	session, err := i.svc.Create(ctx, toDomainInput(input))
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return toSessionOutput(session), nil
}

func (i *Interactor) Update(ctx context.Context, id string, input dto.SessionInput) (dto.SessionOutput, error) {
	session, err := i.svc.Update(ctx, id, toDomainInput(input))
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return toSessionOutput(session), nil
}

func (i *Interactor) Delete(ctx context.Context, id string) (bool, error) {
	return i.svc.Delete(ctx, id)
}

func (i *Interactor) Get(ctx context.Context, id string) (dto.SessionOutput, error) {
	session, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return toSessionOutput(session), nil
}

// Log lists sessions for "current", "all" or a season label, newest first.
// An unknown season falls back to the current one.
func (i *Interactor) Log(ctx context.Context, filter string) ([]dto.SessionOutput, error) {
	out, err := i.View(ctx, dto.ViewState{LogFilter: filter})
	if err != nil {
		return nil, err
	}
	return out.Log, nil
}

func (i *Interactor) Summary(ctx context.Context, season string) (dto.SummaryOutput, error) {
	out, err := i.View(ctx, dto.ViewState{SummarySeason: season})
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	return out.Summary, nil
}

func (i *Interactor) Seasons(ctx context.Context) (dto.SeasonsOutput, error) {
	sessions, _ := i.svc.Load(ctx)
	current := i.svc.CurrentSeason()
	return toSeasonsOutput(domain.EnumerateSeasons(sessions, current), current), nil
}

// View is one render: load, resolve the selection against what exists, then
// filter and aggregate for both tabs.
func (i *Interactor) View(ctx context.Context, state dto.ViewState) (dto.ViewOutput, error) {
	sessions, _ := i.svc.Load(ctx)
	current := i.svc.CurrentSeason()
	options := domain.EnumerateSeasons(sessions, current)

	byID := make(map[string]domain.Session, len(sessions))
	for _, session := range sessions {
		byID[session.ID] = session
	}
	resolved := domain.ViewState{
		SummarySeason: domain.Season(state.SummarySeason),
		LogFilter:     domain.ParseLogFilter(state.LogFilter),
		EditingID:     state.EditingID,
	}.Resolve(options, current, func(id string) bool {
		_, ok := byID[id]
		return ok
	})

	logged := sessions
	if season, ok := resolved.LogSeason(current); ok {
		logged = domain.FilterSeason(sessions, season)
	}
	logged = domain.SortByDateDesc(logged)
	rows := make([]dto.SessionOutput, 0, len(logged))
	for _, session := range logged {
		rows = append(rows, toSessionOutput(session))
	}

	out := dto.ViewOutput{
		State: dto.ViewState{
			SummarySeason: string(resolved.SummarySeason),
			LogFilter:     string(resolved.LogFilter),
			EditingID:     resolved.EditingID,
		},
		Styles:  toStyleOutputs(),
		Seasons: toSeasonsOutput(options, current),
		Log:     rows,
		Summary: summarize(resolved.SummarySeason, domain.FilterSeason(sessions, resolved.SummarySeason)),
	}
	if editing, ok := byID[resolved.EditingID]; ok {
		row := toSessionOutput(editing)
		out.Editing = &row
	}
	return out, nil
}

func (i *Interactor) Reindex(ctx context.Context) (int, error) {
	return i.svc.Reindex(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) (dto.LoadReportOutput, error) {
	_, report := i.svc.Load(ctx)
	return dto.LoadReportOutput{
		Source:     i.svc.Location(),
		Total:      report.Total,
		Kept:       report.Kept,
		Dropped:    report.Dropped,
		Backfilled: report.Backfilled,
		Reassigned: report.Reassigned,
		Corrupt:    report.Corrupt,
		ReadError:  report.ReadError,
	}, nil
}

func summarize(season domain.Season, sessions []domain.Session) dto.SummaryOutput {
	totals := domain.Summarize(sessions)
	rows := domain.ByStyle(sessions)
	out := dto.SummaryOutput{
		Season: string(season),
		Totals: dto.TotalsOutput{
			Count:            totals.Count,
			TotalDistanceKM:  totals.TotalDistanceKM,
			TotalSeconds:     totals.TotalSeconds,
			Duration:         domain.FormatDuration(float64(totals.TotalSeconds)),
			TotalClimbMeters: totals.TotalClimbMeters,
			AvgPaceSecPerKM:  totals.AvgPaceSecPerKM,
			AvgStifa:         totals.AvgStifa,
		},
		ByStyle: make([]dto.StyleSummaryOutput, 0, len(rows)),
	}
	for _, row := range rows {
		info, _ := row.Style.Info()
		out.ByStyle = append(out.ByStyle, dto.StyleSummaryOutput{
			Style:           string(row.Style),
			Label:           info.Label,
			Color:           info.Color,
			Count:           row.Count,
			DistanceKM:      row.DistanceKM,
			DurationSeconds: row.DurationSeconds,
			Duration:        domain.FormatDuration(float64(row.DurationSeconds)),
			ClimbMeters:     row.ClimbMeters,
			PaceSecPerKM:    row.PaceSecPerKM,
			Stifa:           row.Stifa,
		})
	}
	for _, share := range domain.Shares(rows) {
		info, _ := share.Style.Info()
		out.Shares = append(out.Shares, dto.ShareOutput{
			Style:      string(share.Style),
			Color:      info.Color,
			DistanceKM: share.DistanceKM,
			Fraction:   share.Fraction,
			StartAngle: share.StartAngle,
			SweepAngle: share.SweepAngle,
		})
	}
	return out
}

func toDomainInput(input dto.SessionInput) domain.SessionInput {
	return domain.SessionInput{
		Style:    input.Style,
		Date:     input.Date,
		Distance: input.Distance,
		Duration: input.Duration,
		Climb:    input.Climb,
	}
}

func toSessionOutput(session domain.Session) dto.SessionOutput {
	info, _ := session.Style.Info()
	out := dto.SessionOutput{
		ID:              session.ID,
		Style:           string(session.Style),
		StyleLabel:      info.Label,
		Color:           info.Color,
		TracksClimb:     info.TracksClimb,
		Date:            session.DateString(),
		Season:          string(session.Season),
		DistanceKM:      session.DistanceKM,
		DurationSeconds: session.DurationSeconds,
		Duration:        domain.FormatDuration(float64(session.DurationSeconds)),
		ClimbMeters:     session.ClimbMeters,
		PaceSecPerKM:    domain.SessionPace(session),
	}
	if stifa, ok := domain.SessionStifa(session); ok {
		out.Stifa = &stifa
	}
	return out
}

func toStyleOutputs() []dto.StyleOutput {
	infos := domain.Styles()
	out := make([]dto.StyleOutput, 0, len(infos))
	for _, info := range infos {
		out = append(out, dto.StyleOutput{Style: string(info.Style), Label: info.Label, Color: info.Color, TracksClimb: info.TracksClimb})
	}
	return out
}

func toSeasonsOutput(options []domain.Season, current domain.Season) dto.SeasonsOutput {
	out := dto.SeasonsOutput{Current: string(current), Options: make([]string, 0, len(options))}
	for _, option := range options {
		out.Options = append(out.Options, string(option))
	}
	return out
}
