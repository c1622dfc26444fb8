package logging_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"

	"skidlogg/internal/platform/logging"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, logging.GetLevel("DEBUG"))
	assert.Equal(t, logrus.WarnLevel, logging.GetLevel("warning"))
	assert.Equal(t, logrus.InfoLevel, logging.GetLevel("nonsense"))
}

func TestSetupQuietDiscards(t *testing.T) {
	out := logging.Setup(logging.SetupParams{Quiet: true})
	assert.Equal(t, io.Discard, out)
}

func TestSetupMirrorsFileToStderr(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skidlogg.log")
	t.Cleanup(func() { logrus.SetOutput(os.Stderr) })

	out := logging.Setup(logging.SetupParams{LogFileName: path, LogToStderr: true})
	_, isFile := out.(*lumberjack.Logger)
	assert.False(t, isFile)

	out = logging.Setup(logging.SetupParams{LogFileName: path, LogToStderr: true, Quiet: true})
	_, isFile = out.(*lumberjack.Logger)
	assert.True(t, isFile)
}

func TestSetupWritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skidlogg")
	logging.Setup(logging.SetupParams{LogFileName: path, LogLevel: "info"})
	t.Cleanup(func() { logrus.SetOutput(os.Stderr) })

	logrus.Info("hello from test")
	raw, err := os.ReadFile(path + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "hello from test")
}
