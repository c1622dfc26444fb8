package in

import (
	"context"

	"skidlogg/internal/modules/report/dto"
)

type Usecase interface {
	ExportSeason(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
