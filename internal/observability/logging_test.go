package observability_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hollowmoor/delve/internal/config"
	"github.com/hollowmoor/delve/internal/observability"
)

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		t.Run(format, func(t *testing.T) {
			logger, err := observability.NewLogger(config.LoggingConfig{Level: "info", Format: format})
			require.NoError(t, err)
			require.NotNil(t, logger)
		})
	}
}

func TestNewLogger_Levels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		t.Run(level, func(t *testing.T) {
			logger, err := observability.NewLogger(config.LoggingConfig{Level: level, Format: "console"})
			require.NoError(t, err)
			require.NotNil(t, logger)
		})
	}
}

func TestNewLogger_InvalidSettings(t *testing.T) {
	_, err := observability.NewLogger(config.LoggingConfig{Level: "loud", Format: "console"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing log level")

	_, err = observability.NewLogger(config.LoggingConfig{Level: "info", Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log format")
}

func TestNewLogger_FileTee(t *testing.T) {
	path := filepath.Join(t.TempDir(), "delve.log")
	logger, err := observability.NewLogger(config.LoggingConfig{
		Level:      "info",
		Format:     "console",
		File:       path,
		MaxSizeMB:  5,
		MaxBackups: 1,
	})
	require.NoError(t, err)

	logger.Info("floor generated", zap.Int("rooms", 7))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, `"msg":"floor generated"`)
	assert.Contains(t, content, `"rooms":7`)
	assert.True(t, strings.HasSuffix(strings.TrimRight(content, "\n"), "}"), "file sink writes JSON lines")
}

func TestNewLogger_LevelFiltersFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "delve.log")
	logger, err := observability.NewLogger(config.LoggingConfig{
		Level:      "warn",
		Format:     "console",
		File:       path,
		MaxSizeMB:  5,
		MaxBackups: 1,
	})
	require.NoError(t, err)

	logger.Info("suppressed")
	logger.Warn("kept")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "suppressed")
	assert.Contains(t, string(data), "kept")
}
