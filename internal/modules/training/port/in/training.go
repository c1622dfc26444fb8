package in

import (
	"context"

	"skidlogg/internal/modules/training/dto"
)

type Usecase interface {
	Create(ctx context.Context, input dto.SessionInput) (dto.SessionOutput, error)
	Update(ctx context.Context, id string, input dto.SessionInput) (dto.SessionOutput, error)
	Delete(ctx context.Context, id string) (bool, error)
	Get(ctx context.Context, id string) (dto.SessionOutput, error)
	Log(ctx context.Context, filter string) ([]dto.SessionOutput, error)
	Summary(ctx context.Context, season string) (dto.SummaryOutput, error)
	Seasons(ctx context.Context) (dto.SeasonsOutput, error)
	View(ctx context.Context, state dto.ViewState) (dto.ViewOutput, error)
	Reindex(ctx context.Context) (int, error)
	Doctor(ctx context.Context) (dto.LoadReportOutput, error)
}
