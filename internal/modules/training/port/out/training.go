package out

import (
	"context"

	"skidlogg/internal/modules/training/domain"
)

// BlobStore holds the single serialized session collection. Read returns a
// nil slice and no error when nothing has been written yet.
type BlobStore interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Location() string
}

type SessionIndexProjector interface {
	Reset(ctx context.Context) error
	UpsertSession(ctx context.Context, session domain.Session) error
}

// ChangeWatcher reports writes to the blob made by someone else.
type ChangeWatcher interface {
	Changes() <-chan struct{}
	Close() error
}
