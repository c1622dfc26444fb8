package out

import (
	"context"

	"skidlogg/internal/modules/report/domain"
)

type SummarySource interface {
	SeasonSummary(ctx context.Context, season string) (domain.SeasonSummary, error)
}

// NoteStore reads and writes report notes by file name. Read returns an
// empty string for a note that does not exist yet.
type NoteStore interface {
	Read(ctx context.Context, name string) (string, error)
	Write(ctx context.Context, name, content string) (string, error)
}
