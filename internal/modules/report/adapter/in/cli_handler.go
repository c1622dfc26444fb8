package in

import (
	"context"

	"skidlogg/internal/modules/report/dto"
	reportin "skidlogg/internal/modules/report/port/in"
)

type CLIHandler struct {
	usecase reportin.Usecase
}

func NewCLIHandler(usecase reportin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Export(ctx context.Context, season string) (dto.ExportOutput, error) {
	return h.usecase.ExportSeason(ctx, dto.ExportInput{Season: season})
}
