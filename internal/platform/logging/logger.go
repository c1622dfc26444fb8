package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type SetupParams struct {
	LogFileName   string
	LogToStderr   bool
	LogLevel      string
	LogFormatJSON bool
	// Quiet drops stderr output entirely; the TUI owns the terminal.
	Quiet bool
}

// Setup configures the global logrus logger and returns the writer it uses.
func Setup(params SetupParams) io.Writer {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: params.LogFileName == ""})
	}
	logrus.SetLevel(GetLevel(params.LogLevel))

	var out io.Writer
	switch {
	case params.LogFileName == "" && params.Quiet:
		out = io.Discard
	case params.LogFileName == "":
		out = os.Stderr
	default:
		if !strings.HasSuffix(params.LogFileName, ".log") {
			params.LogFileName += ".log"
		}
		rotating := &lumberjack.Logger{
			Filename:   params.LogFileName,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			Compress:   true,
		}
		out = rotating
		if params.LogToStderr && !params.Quiet {
			out = io.MultiWriter(os.Stderr, rotating)
		}
	}
	logrus.SetOutput(out)
	return out
}

func GetLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}
