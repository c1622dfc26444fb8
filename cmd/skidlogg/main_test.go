package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skidlogg/internal/modules/training/dto"
)

func execute(t *testing.T, dataDir, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--data-dir", dataDir}, args...))
	err := root.Execute()
	return out.String(), err
}

func mustExecute(t *testing.T, dataDir string, args ...string) string {
	t.Helper()
	out, err := execute(t, dataDir, "", args...)
	require.NoError(t, err, strings.Join(args, " "))
	return out
}

func TestSessionLifecycle(t *testing.T) {
	dir := t.TempDir()

	out := mustExecute(t, dir, "add", "--style", "classic", "--date", "2025-01-10", "--distance", "10", "--duration", "50:00", "--climb", "100")
	assert.Contains(t, out, "added 2025-01-10 Classic 24/25")

	var rows []dto.SessionOutput
	require.NoError(t, json.Unmarshal([]byte(mustExecute(t, dir, "log", "--season", "all", "--json")), &rows))
	require.Len(t, rows, 1)
	id := rows[0].ID
	assert.Equal(t, 300.0, rows[0].PaceSecPerKM)

	out = mustExecute(t, dir, "edit", id, "--distance", "12,5")
	assert.Contains(t, out, "updated 2025-01-10")

	var summary dto.SummaryOutput
	require.NoError(t, json.Unmarshal([]byte(mustExecute(t, dir, "summary", "--season", "24/25", "--json")), &summary))
	assert.Equal(t, 1, summary.Totals.Count)
	assert.InDelta(t, 12.5, summary.Totals.TotalDistanceKM, 1e-9)
	assert.InDelta(t, 100.0, summary.Totals.TotalClimbMeters, 1e-9)

	out = mustExecute(t, dir, "seasons")
	assert.Contains(t, out, "24/25")

	out = mustExecute(t, dir, "export", "--season", "24/25")
	assert.Contains(t, out, "exported 24/25 (1 sessions)")

	out, err := execute(t, dir, "n\n", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "aborted")

	out = mustExecute(t, dir, "delete", "--yes", id)
	assert.Contains(t, out, "deleted "+id)

	out = mustExecute(t, dir, "doctor")
	assert.Contains(t, out, "kept:       0")
}

func TestAddRejectsInvalidInput(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, dir, "", "add", "--style", "skate", "--date", "2025-01-10", "--distance", "-2", "--duration", "50:00")
	require.Error(t, err)
	assert.Equal(t, "Distans måste vara ett positivt tal.", err.Error())

	_, err = execute(t, dir, "", "add", "--style", "skate", "--date", "2025-01-10", "--distance", "5", "--duration", "5")
	require.Error(t, err)
	assert.Equal(t, "Tid måste vara i format mm:ss eller hh:mm:ss.", err.Error())

	out := mustExecute(t, dir, "log", "--season", "all")
	assert.Contains(t, out, "Inga pass ännu.")
}

func TestDataDirFlagWinsOverConfigFile(t *testing.T) {
	dir := t.TempDir()
	other := filepath.Join(t.TempDir(), "from-config")
	configPath := filepath.Join(dir, "skidlogg.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("data_dir: "+other+"\n"), 0o644))

	mustExecute(t, dir, "--config", configPath, "add", "--style", "skate", "--date", "2025-01-10", "--distance", "5", "--duration", "20:00")

	_, err := os.Stat(filepath.Join(dir, "skidlogg.sessions.json"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(other, "skidlogg.sessions.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteUnknownSessionFails(t *testing.T) {
	_, err := execute(t, t.TempDir(), "", "delete", "missing")
	require.Error(t, err)
}

func TestUnknownBackendFails(t *testing.T) {
	t.Setenv("SKIDLOGG_BACKEND", "cloud")
	_, err := execute(t, t.TempDir(), "", "seasons")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}
