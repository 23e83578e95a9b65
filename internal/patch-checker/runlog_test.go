package patch_checker

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestRunLog_RecordsEntries(t *testing.T) {
	runLog := NewRunLog()
	logger := zap.New(runLog.Core(zapcore.InfoLevel)).With(zap.String("run", "nightly"))

	logger.Debug("hidden")
	logger.Info("fetching", zap.String("url", "https://vendor.example"))
	assert.False(t, runLog.HasErrors())
	logger.Warn("slow page")
	assert.False(t, runLog.HasErrors())
	logger.Error("can't fetch update page")
	assert.True(t, runLog.HasErrors())

	text := runLog.String()
	assert.NotContains(t, text, "hidden")
	assert.Contains(t, text, "fetching")
	assert.Contains(t, text, "https://vendor.example")
	assert.Contains(t, text, "nightly")
	assert.Contains(t, text, "ERROR")
}

func TestRunLog_Save(t *testing.T) {
	runLog := NewRunLog()
	zap.New(runLog.Core(zapcore.DebugLevel)).Info("hello")
	dir := filepath.Join(t.TempDir(), "logs")

	path, err := runLog.Save(dir, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "patch-checker-20260102-030405.log"), path)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "hello")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level   string
		want    zapcore.Level
		wantErr bool
	}{
		{level: "debug", want: zapcore.DebugLevel},
		{level: "INFO", want: zapcore.InfoLevel},
		{level: "", want: zapcore.InfoLevel},
		{level: "warning", want: zapcore.WarnLevel},
		{level: " error ", want: zapcore.ErrorLevel},
		{level: "verbose", want: zapcore.InfoLevel, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			got, err := ParseLevel(tt.level)
			assert.Equal(t, tt.wantErr, err != nil)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInitLogger_TeesIntoRunLog(t *testing.T) {
	runLog := NewRunLog()
	logger, err := InitLogger(zap.NewAtomicLevelAt(zapcore.WarnLevel), runLog)
	require.NoError(t, err)

	logger.Info("quiet")
	logger.Error("loud")

	assert.NotContains(t, runLog.String(), "quiet")
	assert.Contains(t, runLog.String(), "loud")
	assert.True(t, runLog.HasErrors())
}
