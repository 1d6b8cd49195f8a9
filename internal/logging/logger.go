package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LoggerSetupParams struct {
	LogFileName   string
	LogToStderr   bool
	LogLevel      string
	LogFormatJSON bool
	// Stderr is where console logs go; os.Stderr when nil.
	Stderr io.Writer
}

// Setup configures the global logrus logger. Console output stays on stderr
// so command output on stdout can be piped.
func Setup(params LoggerSetupParams) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: params.LogFileName == ""})
	}
	logrus.SetLevel(GetLevel(params.LogLevel))

	stderr := params.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	if params.LogFileName == "" {
		logrus.SetOutput(stderr)
		return
	}

	if !strings.HasSuffix(params.LogFileName, ".log") {
		params.LogFileName += ".log"
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:   params.LogFileName,
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		LocalTime:  false,
		Compress:   true,
	}

	if params.LogToStderr {
		logrus.SetOutput(NewCombinedWriter(stderr, lumberJackLogger))
	} else {
		logrus.SetOutput(lumberJackLogger)
	}
	logrus.Debugf("writing logs to %s", params.LogFileName)
}

// GetLevel maps a level name to logrus. Unknown names fall back to warn so a
// typo never floods the terminal.
func GetLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "info":
		return logrus.InfoLevel
	case "trace":
		return logrus.TraceLevel
	case "warn", "warning":
		return logrus.WarnLevel
	default:
		return logrus.WarnLevel
	}
}
