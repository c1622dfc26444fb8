package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	trainingadapter "skidlogg/internal/modules/training/adapter/out"
)

func TestFileBlobStoreMissingFileReadsEmpty(t *testing.T) {
	t.Parallel()
	store := trainingadapter.NewFileBlobStore(filepath.Join(t.TempDir(), "skidlogg.sessions.json"))
	data, err := store.Read(context.Background())
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestFileBlobStoreWriteReplacesWithoutTempFiles(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "nested")
	path := filepath.Join(dir, "skidlogg.sessions.json")
	store := trainingadapter.NewFileBlobStore(path)
	assert.Equal(t, path, store.Location())

	require.NoError(t, store.Write(context.Background(), []byte(`[1]`)))
	require.NoError(t, store.Write(context.Background(), []byte(`[]`)))

	data, err := store.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "skidlogg.sessions.json", entries[0].Name())
}
