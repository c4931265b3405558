package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.Disabled},
		{"off", zerolog.Disabled},
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewJSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.Output = &buf

	ctx := WithContext(context.Background(), New(cfg))
	ctx = WithComponent(ctx, "registry")
	ctx = WithWindowID(ctx, "w1")
	FromContext(ctx).Info().Msg("opened")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "registry", entry["component"])
	assert.Equal(t, "w1", entry["window_id"])
	assert.Equal(t, "opened", entry["message"])
}

func TestFromContextWithoutLoggerIsDisabled(t *testing.T) {
	logger := FromContext(context.Background())
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestOpenOffDoesNotCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "floatdesk.log")
	logger, closer, err := Open("off", "console", path)
	require.NoError(t, err)
	defer closer.Close()

	logger.Error().Msg("dropped")
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestOpenWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "floatdesk.log")
	logger, closer, err := Open("info", "json", path)
	require.NoError(t, err)

	logger.Debug().Msg("below level")
	logger.Info().Str("session", "local").Msg("started")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"started"`)
	assert.NotContains(t, string(data), "below level")
}
