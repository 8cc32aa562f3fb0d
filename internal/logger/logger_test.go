package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestInitWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "callsim.log")

	closer, err := Init(Config{Output: path, File: path, Level: "info"})
	require.NoError(t, err)

	zlog.Info().Str("call_id", "abc").Msg("ringing")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	assert.Contains(t, line, `"call_id":"abc"`)
	assert.Contains(t, line, `"message":"ringing"`)
	assert.Contains(t, line, `"pid":`)
}

func TestInitDiscard(t *testing.T) {
	closer, err := Init(Config{Output: "discard"})
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
}
