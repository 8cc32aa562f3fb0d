package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/pdxmph/callsim/internal/audio"
	"github.com/pdxmph/callsim/internal/call"
	"github.com/pdxmph/callsim/internal/config"
	"github.com/pdxmph/callsim/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settings struct {
	values map[string]string
	err    error
}

func (s settings) GetValue(key string) (string, bool, error) {
	if s.err != nil {
		return "", false, s.err
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s settings) SetValue(key, value string) error { return nil }

func TestResolveStyle(t *testing.T) {
	saved := settings{values: map[string]string{db.KeyPhoneStyle: "iphone"}}
	empty := settings{values: map[string]string{}}

	tests := []struct {
		name     string
		flag     string
		settings settings
		fallback string
		want     call.Style
	}{
		{name: "flag wins", flag: "android", settings: saved, fallback: "iphone", want: call.StyleAndroid},
		{name: "saved preference", settings: saved, fallback: "android", want: call.StyleIPhone},
		{name: "config fallback", settings: empty, fallback: "iphone", want: call.StyleIPhone},
		{name: "garbage saved value skipped", settings: settings{values: map[string]string{db.KeyPhoneStyle: "nokia"}}, fallback: "iphone", want: call.StyleIPhone},
		{name: "read error", settings: settings{err: errors.New("locked")}, fallback: "iphone", want: call.StyleIPhone},
		{name: "nothing set", settings: empty, want: call.StyleAndroid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveStyle(tt.flag, tt.settings, tt.fallback))
		})
	}
}

func TestWriteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := config.Default()
	cfg.Phone.Style = "iphone"

	require.NoError(t, writeConfig(cfg, path, false))
	assert.Error(t, writeConfig(cfg, path, false), "refuses to overwrite")
	require.NoError(t, writeConfig(cfg, path, true))

	loaded, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "iphone", loaded.Phone.Style)
}

func TestInitAndFixtures(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, initDatabase(filepath.Join(dir, "empty.db")))
	require.NoError(t, createFixtures(filepath.Join(dir, "fixtures.db")))
	assert.Error(t, createFixtures(filepath.Join(dir, "fixtures.db")))

	_, err := os.Stat(filepath.Join(dir, "empty.db"))
	assert.NoError(t, err)
}

func TestListBackends(t *testing.T) {
	var buf bytes.Buffer
	listBackends(&buf)
	out := buf.String()
	assert.Contains(t, out, "noop")
	assert.Contains(t, out, "pulse")
	assert.Contains(t, out, "command")
}

func TestRingerBackend(t *testing.T) {
	backend := audio.NewFakeBackend()
	cfg := config.Default()

	assert.Same(t, backend, ringerBackend(cfg, backend))

	cfg.Audio.Volume = 0
	assert.Equal(t, audio.NoopName, ringerBackend(cfg, backend).Name(), "zero volume rings silently")
}
