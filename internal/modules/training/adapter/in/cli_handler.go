package in

import (
	"context"

	"skidlogg/internal/modules/training/dto"
	trainingin "skidlogg/internal/modules/training/port/in"
)

type CLIHandler struct {
	usecase trainingin.Usecase
}

func NewCLIHandler(usecase trainingin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, style, date, distance, duration, climb string) (dto.SessionOutput, error) {
	return h.usecase.Create(ctx, dto.SessionInput{Style: style, Date: date, Distance: distance, Duration: duration, Climb: climb})
}

func (h CLIHandler) Edit(ctx context.Context, id, style, date, distance, duration, climb string) (dto.SessionOutput, error) {
	return h.usecase.Update(ctx, id, dto.SessionInput{Style: style, Date: date, Distance: distance, Duration: duration, Climb: climb})
}

func (h CLIHandler) Delete(ctx context.Context, id string) (bool, error) {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) Get(ctx context.Context, id string) (dto.SessionOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) Log(ctx context.Context, filter string) ([]dto.SessionOutput, error) {
	return h.usecase.Log(ctx, filter)
}

func (h CLIHandler) Summary(ctx context.Context, season string) (dto.SummaryOutput, error) {
	return h.usecase.Summary(ctx, season)
}

func (h CLIHandler) Seasons(ctx context.Context) (dto.SeasonsOutput, error) {
	return h.usecase.Seasons(ctx)
}

func (h CLIHandler) View(ctx context.Context, state dto.ViewState) (dto.ViewOutput, error) {
	return h.usecase.View(ctx, state)
}

func (h CLIHandler) Reindex(ctx context.Context) (int, error) {
	return h.usecase.Reindex(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) (dto.LoadReportOutput, error) {
	return h.usecase.Doctor(ctx)
}
