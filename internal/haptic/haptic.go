// Package haptic emulates vibration on hosts without a vibration motor by
// rendering on/off patterns to a low buzz.
package haptic

import (
	"sync"
	"time"

	"github.com/pdxmph/callsim/internal/audio"
	"github.com/pdxmph/callsim/internal/call"
	zlog "github.com/rs/zerolog/log"
)

const (
	sampleRate = 8000
	buzzFreq   = 150
	buzzVolume = 0.8
)

// Render turns an alternating on/off pattern into PCM. Even entries buzz,
// odd entries are silent, matching the vibration pattern convention.
func Render(rate int, pattern ...time.Duration) []int16 {
	parts := make([][]int16, 0, len(pattern))
	for i, d := range pattern {
		if d <= 0 {
			continue
		}
		if i%2 == 0 {
			parts = append(parts, audio.Tone(rate, d, buzzVolume, 0, buzzFreq, buzzFreq*2))
		} else {
			parts = append(parts, audio.Silence(rate, d))
		}
	}
	return audio.Join(parts...)
}

// Buzzer plays vibration patterns through an audio backend.
type Buzzer struct {
	mu      sync.Mutex
	backend audio.Backend
	stream  audio.Stream
}

// NewBuzzer creates a buzzer on backend.
func NewBuzzer(backend audio.Backend) *Buzzer {
	return &Buzzer{backend: backend}
}

// Vibrate plays pattern once, cutting off any pattern still playing.
// Failures are logged and otherwise ignored.
func (b *Buzzer) Vibrate(pattern ...time.Duration) {
	samples := Render(sampleRate, pattern...)
	if len(samples) == 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.stream != nil {
		b.stream.Stop()
		b.stream = nil
	}
	stream, err := b.backend.Play(audio.Clip{Name: "vibrate", SampleRate: sampleRate, Samples: samples}, audio.PlayOptions{})
	if err != nil {
		zlog.Debug().Err(err).Msg("Vibration unavailable")
		return
	}
	b.stream = stream
}

// Noop is the vibrator for hosts without haptics.
type Noop struct{}

func (Noop) Vibrate(...time.Duration) {}

// New returns a Buzzer, or Noop when vibration is disabled. A backend that
// plays one stream at a time is left to the ringtone.
func New(backend audio.Backend, disabled bool) call.Vibrator {
	if disabled || backend == nil {
		return Noop{}
	}
	if audio.IsExclusive(backend) {
		zlog.Info().Str("backend", backend.Name()).Msg("Audio backend plays one stream at a time, vibration disabled")
		return Noop{}
	}
	return NewBuzzer(backend)
}
