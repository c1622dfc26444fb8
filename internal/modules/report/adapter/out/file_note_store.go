package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	reportout "skidlogg/internal/modules/report/port/out"
)

type FileNoteStore struct {
	dir string
}

func NewFileNoteStore(dir string) reportout.NoteStore {
	return &FileNoteStore{dir: dir}
}

func (s *FileNoteStore) Read(_ context.Context, name string) (string, error) {
	payload, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read report %s: %w", name, err)
	}
	return string(payload), nil
}

func (s *FileNoteStore) Write(_ context.Context, name, content string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write report %s: %w", name, err)
	}
	return path, nil
}
