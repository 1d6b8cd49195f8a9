package logging_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/madDev-12/fitnutrition/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestCombinedWriterWrite(t *testing.T) {
	sb1 := &strings.Builder{}
	sb1.WriteString("already-here")
	sb2 := &strings.Builder{}

	cw := logging.NewCombinedWriter(sb1, sb2)
	require.Len(t, cw.Writers, 2)

	n, err := cw.Write([]byte("a message"))
	require.NoError(t, err)
	assert.Equal(t, len("a message"), n)
	assert.Equal(t, "already-herea message", sb1.String())
	assert.Equal(t, "a message", sb2.String())
}

func TestCombinedWriterKeepsGoingPastFailures(t *testing.T) {
	sb := &strings.Builder{}
	cw := logging.NewCombinedWriter(failingWriter{}, sb, failingWriter{})

	n, err := cw.Write([]byte("hello"))
	assert.Equal(t, 5, n)
	assert.ErrorContains(t, err, "disk full")
	assert.Equal(t, "hello", sb.String())

	n, err = logging.NewCombinedWriter(failingWriter{}).Write([]byte("x"))
	assert.Equal(t, 0, n)
	assert.Error(t, err)
}

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, logging.GetLevel("DEBUG"))
	assert.Equal(t, logrus.TraceLevel, logging.GetLevel("trace"))
	assert.Equal(t, logrus.WarnLevel, logging.GetLevel("warning"))
	assert.Equal(t, logrus.WarnLevel, logging.GetLevel("loud"))
}

func TestSetupWritesToFileAndStderr(t *testing.T) {
	defer logrus.SetOutput(os.Stderr)

	var stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "fitnutrition")
	logging.Setup(logging.LoggerSetupParams{
		LogFileName: path,
		LogToStderr: true,
		LogLevel:    "info",
		Stderr:      &stderr,
	})
	logrus.Info("dashboard loaded")
	logrus.Debug("hidden")

	assert.Contains(t, stderr.String(), "dashboard loaded")
	assert.NotContains(t, stderr.String(), "hidden")

	b, err := os.ReadFile(path + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(b), "dashboard loaded")
}
