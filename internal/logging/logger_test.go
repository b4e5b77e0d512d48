package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetLoggers(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		Configure(Config{})
		loggersMu.Lock()
		loggers = make(map[string]*logrus.Entry)
		loggersMu.Unlock()
	})
}

func TestNewLogger_CachedPerComponent(t *testing.T) {
	resetLoggers(t)

	a := NewLogger("store")
	b := NewLogger("store")
	c := NewLogger("storage")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, "store", a.Data["component"])
}

func TestConfigure_LevelFromConfigAndEnv(t *testing.T) {
	resetLoggers(t)

	Configure(Config{Level: "warn", Stderr: "never"})
	assert.Equal(t, logrus.WarnLevel, NewLogger("lvl").Logger.GetLevel())

	t.Setenv("WORKTRACKER_LOG_LEVEL", "debug")
	Configure(Config{Level: "warn", Stderr: "never"})
	assert.Equal(t, logrus.DebugLevel, NewLogger("lvl").Logger.GetLevel(), "env wins and existing loggers are reconfigured")
}

func TestConfigure_InvalidLevelFallsBackToInfo(t *testing.T) {
	resetLoggers(t)
	Configure(Config{Level: "loud", Stderr: "never"})
	assert.Equal(t, logrus.InfoLevel, NewLogger("bad").Logger.GetLevel())
}

func TestConfigure_FileSink(t *testing.T) {
	resetLoggers(t)
	path := filepath.Join(t.TempDir(), "logs", "worktracker.log")

	Configure(Config{Level: "info", File: path, Format: "simple", Stderr: "never"})
	NewLogger("store").WithField("id", "abc").Warn("save failed")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[WARN] save failed id=abc\n", string(data))
}

func TestTextFormatter(t *testing.T) {
	entry := &logrus.Entry{
		Time:    time.Date(2024, 3, 9, 9, 30, 0, 0, time.UTC),
		Level:   logrus.InfoLevel,
		Message: "record added",
		Data:    logrus.Fields{"component": "store", "seconds": 60, "id": "x"},
	}

	out, err := (&TextFormatter{}).Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-09 09:30:00 [INFO] [store] record added id=x seconds=60\n", string(out))

	out, err = (&TextFormatter{DisableTimestamp: true, DisableComponent: true}).Format(entry)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "[INFO] record added"))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".worktracker", "x.db"), ExpandPath("~/.worktracker/x.db"))
	assert.Equal(t, "/tmp/x.db", ExpandPath("/tmp/x.db"))
}
