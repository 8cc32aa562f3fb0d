package ringtone

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pdxmph/callsim/internal/audio"
	"github.com/pdxmph/callsim/internal/call"
	"github.com/pdxmph/callsim/internal/contacts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinVariantsDiffer(t *testing.T) {
	a := Builtin(call.RingtoneA)
	b := Builtin(call.RingtoneB)

	assert.Equal(t, "classic", a.Name)
	assert.Equal(t, "chime", b.Name)
	assert.NotEmpty(t, a.Samples)
	assert.NotEmpty(t, b.Samples)
	assert.Equal(t, 3*time.Second, a.Duration().Round(time.Millisecond))
	assert.NotEqual(t, a.Duration(), b.Duration())
}

func TestPlayerLoopsSelectedVariant(t *testing.T) {
	backend := audio.NewFakeBackend()
	p := New(backend, Options{Volume: 0.4})

	require.NoError(t, p.Play(call.RingtoneB))
	plays := backend.Plays()
	require.Len(t, plays, 1)
	assert.Equal(t, "chime", plays[0].Clip.Name)
	assert.True(t, plays[0].Opts.Loop)
	assert.Equal(t, 0.4, plays[0].Opts.Volume)
	assert.True(t, p.Playing())
}

func TestPlayerStopKeepsPositionUntilRewind(t *testing.T) {
	backend := audio.NewFakeBackend()
	backend.StopAt = 1234
	p := New(backend, Options{})

	require.NoError(t, p.Play(call.RingtoneA))
	p.Stop()
	assert.False(t, p.Playing())
	assert.Equal(t, 1234, p.Position())

	require.NoError(t, p.Play(call.RingtoneA))
	assert.Equal(t, 1234, backend.Plays()[1].Opts.Offset, "resumes where it stopped")

	p.Stop()
	p.Rewind()
	assert.Zero(t, p.Position())
	require.NoError(t, p.Play(call.RingtoneA))
	assert.Zero(t, backend.Plays()[2].Opts.Offset)
}

func TestPlayerSingleStream(t *testing.T) {
	backend := audio.NewFakeBackend()
	backend.StopAt = 99
	p := New(backend, Options{})

	require.NoError(t, p.Play(call.RingtoneA))
	require.NoError(t, p.Play(call.RingtoneA))

	assert.Equal(t, 1, backend.Playing(), "prior stream is stopped")
	assert.Zero(t, backend.Plays()[1].Opts.Offset, "and rewound")
}

func TestPlayerSwitchingVariantStartsClean(t *testing.T) {
	backend := audio.NewFakeBackend()
	backend.StopAt = 500
	p := New(backend, Options{})

	require.NoError(t, p.Play(call.RingtoneA))
	p.Stop()
	require.NoError(t, p.Play(call.RingtoneB))
	assert.Zero(t, backend.Plays()[1].Opts.Offset)
}

func TestPlayerStopWithoutStream(t *testing.T) {
	p := New(audio.NewFakeBackend(), Options{})
	p.Stop()
	p.Rewind()
	assert.Zero(t, p.Position())
}

func TestPlayerBackendError(t *testing.T) {
	backend := audio.NewFakeBackend()
	backend.Err = errors.New("device busy")
	p := New(backend, Options{})

	err := p.Play(call.RingtoneA)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device busy")
	assert.False(t, p.Playing())
}

func TestPlayerOverrides(t *testing.T) {
	dir := t.TempDir()
	custom := audio.Clip{SampleRate: 8000, Samples: audio.Tone(8000, 100*time.Millisecond, 0.5, 0, 500)}
	var buf bytes.Buffer
	require.NoError(t, audio.EncodeFLAC(&buf, custom))
	good := filepath.Join(dir, "mine.flac")
	require.NoError(t, os.WriteFile(good, buf.Bytes(), 0o644))

	p := New(audio.NewFakeBackend(), Options{Overrides: map[call.Ringtone]string{
		call.RingtoneA: good,
		call.RingtoneB: filepath.Join(dir, "missing.flac"),
	}})

	assert.Equal(t, "mine", p.Clip(call.RingtoneA).Name)
	assert.Equal(t, custom.Samples, p.Clip(call.RingtoneA).Samples)
	assert.Equal(t, "chime", p.Clip(call.RingtoneB).Name, "decode failure keeps the built-in clip")
}

func TestPlayerDrivesSession(t *testing.T) {
	backend := audio.NewFakeBackend()
	p := New(backend, Options{})
	s := call.NewSession(call.Options{Ringer: p, Scheduler: call.NewFakeScheduler()})

	require.True(t, s.Initiate(contacts.Contact{Name: "Dad", Number: "555-0104"}, call.StyleAndroid))
	assert.True(t, p.Playing())

	require.True(t, s.Reject())
	assert.False(t, p.Playing())
	assert.Zero(t, p.Position())
	assert.Zero(t, backend.Playing())
}
