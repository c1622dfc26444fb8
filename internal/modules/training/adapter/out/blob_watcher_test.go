package out_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	trainingadapter "skidlogg/internal/modules/training/adapter/out"
)

func TestFileBlobWatcherSignalsOnReplace(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "skidlogg.sessions.json")
	watcher, err := trainingadapter.NewFileBlobWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)

	store := trainingadapter.NewFileBlobStore(path)
	require.NoError(t, store.Write(context.Background(), []byte(`[]`)))

	select {
	case <-watcher.Changes():
	case <-time.After(5 * time.Second):
		t.Fatalf("no change signalled")
	}

	require.NoError(t, watcher.Close())
	for range watcher.Changes() {
	}
}

func TestFileBlobWatcherCloseTwice(t *testing.T) {
	t.Parallel()
	watcher, err := trainingadapter.NewFileBlobWatcher(filepath.Join(t.TempDir(), "skidlogg.sessions.json"), 20*time.Millisecond)
	require.NoError(t, err)

	require.NoError(t, watcher.Close())
	require.NoError(t, watcher.Close())
	_, open := <-watcher.Changes()
	require.False(t, open)
}
