package haptic

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pdxmph/callsim/internal/audio"
	"github.com/pdxmph/callsim/internal/call"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	samples := Render(1000, call.AlertPattern...)
	require.Len(t, samples, 1200)

	gap := samples[500:700]
	assert.Equal(t, make([]int16, 200), gap)

	var nonZero int
	for _, s := range samples[:500] {
		if s != 0 {
			nonZero++
		}
	}
	assert.Greater(t, nonZero, 400)

	assert.Len(t, Render(1000, call.AnswerPulse), 200)
	assert.Empty(t, Render(1000))
	assert.Len(t, Render(1000, 0, 100*time.Millisecond), 100, "zero entries are skipped")
}

func TestBuzzerVibrate(t *testing.T) {
	backend := audio.NewFakeBackend()
	b := NewBuzzer(backend)

	b.Vibrate(call.AlertPattern...)
	b.Vibrate(call.AnswerPulse)

	plays := backend.Plays()
	require.Len(t, plays, 2)
	assert.False(t, plays[0].Opts.Loop)
	assert.Equal(t, 1200*time.Millisecond, plays[0].Clip.Duration())
	assert.Equal(t, 200*time.Millisecond, plays[1].Clip.Duration())
	assert.True(t, plays[0].Stopped, "new pattern cuts off the previous one")
}

func TestBuzzerIgnoresErrors(t *testing.T) {
	backend := audio.NewFakeBackend()
	backend.Err = errors.New("no device")
	b := NewBuzzer(backend)

	assert.NotPanics(t, func() { b.Vibrate(call.AnswerPulse) })
	assert.Empty(t, backend.Plays())
}

func TestNew(t *testing.T) {
	backend := audio.NewFakeBackend()

	assert.IsType(t, Noop{}, New(backend, true))
	assert.IsType(t, Noop{}, New(nil, false))
	assert.IsType(t, &Buzzer{}, New(backend, false))

	single := audio.NewFakeBackend()
	single.Single = true
	assert.IsType(t, Noop{}, New(single, false), "ringtone keeps a single-stream device to itself")
}
