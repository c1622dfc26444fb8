package usecase

import (
	"context"

	"skidlogg/internal/modules/report/dto"
	reportin "skidlogg/internal/modules/report/port/in"
	"skidlogg/internal/modules/report/service"
)

type Interactor struct {
	svc *service.ExportService
}

func NewInteractor(svc *service.ExportService) reportin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) ExportSeason(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	report, err := i.svc.ExportSeason(ctx, input.Season)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{Season: report.Summary.Season, Path: report.Path, Sessions: report.Summary.Count}, nil
}
