// Package ringtone holds the two ringtone variants and the shared player
// the call session rings through.
package ringtone

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pdxmph/callsim/internal/audio"
	"github.com/pdxmph/callsim/internal/call"
	zlog "github.com/rs/zerolog/log"
)

const rate = audio.DefaultSampleRate

// Builtin synthesises the default clip for a variant.
func Builtin(r call.Ringtone) audio.Clip {
	switch r {
	case call.RingtoneB:
		return chime()
	default:
		return classic()
	}
}

// classic is a dual-tone double ring.
func classic() audio.Clip {
	burst := audio.Tone(rate, 400*time.Millisecond, 0.6, 0, 440, 480)
	return audio.Clip{
		Name:       "classic",
		SampleRate: rate,
		Samples: audio.Join(
			burst,
			audio.Silence(rate, 200*time.Millisecond),
			burst,
			audio.Silence(rate, 2*time.Second),
		),
	}
}

// chime is a plucked rising arpeggio.
func chime() audio.Clip {
	var parts [][]int16
	for _, freq := range []float64{659.25, 830.61, 987.77, 1318.51} {
		parts = append(parts, audio.Tone(rate, 180*time.Millisecond, 0.7, 12, freq, freq*2))
	}
	parts = append(parts, audio.Silence(rate, 1200*time.Millisecond))
	return audio.Clip{Name: "chime", SampleRate: rate, Samples: audio.Join(parts...)}
}

// Options configures a Player.
type Options struct {
	Volume    float64
	Overrides map[call.Ringtone]string // FLAC files replacing the built-in variants
}

// Player is the single shared ringtone device. It implements call.Ringer.
// Only one stream plays at a time.
type Player struct {
	mu       sync.Mutex
	backend  audio.Backend
	volume   float64
	clips    map[call.Ringtone]audio.Clip
	stream   audio.Stream
	current  call.Ringtone
	position int
}

// New creates a player on backend. An override that cannot be decoded is
// logged and the built-in variant is kept.
func New(backend audio.Backend, opts Options) *Player {
	p := &Player{
		backend: backend,
		volume:  opts.Volume,
		clips: map[call.Ringtone]audio.Clip{
			call.RingtoneA: Builtin(call.RingtoneA),
			call.RingtoneB: Builtin(call.RingtoneB),
		},
	}
	for r, path := range opts.Overrides {
		if path == "" {
			continue
		}
		clip, err := audio.LoadFLAC(path)
		if err != nil {
			zlog.Warn().Err(err).Str("ringtone", r.String()).Msg("Keeping built-in ringtone")
			continue
		}
		p.clips[r] = clip
	}
	return p
}

// Clip returns the clip used for a variant.
func (p *Player) Clip(r call.Ringtone) audio.Clip {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clips[r]
}

// Play starts looping r from the current position. A stream already playing
// is stopped and rewound first. Switching variants starts from the beginning.
func (p *Player) Play(r call.Ringtone) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream != nil {
		p.stopLocked()
		p.position = 0
	}
	if r != p.current {
		p.position = 0
	}
	p.current = r

	clip := p.clips[r]
	stream, err := p.backend.Play(clip, audio.PlayOptions{
		Loop:   true,
		Offset: p.position,
		Volume: p.volume,
	})
	if err != nil {
		return errors.Wrapf(err, "playing ringtone %s on %s", r, p.backend.Name())
	}
	p.stream = stream
	return nil
}

// Stop pauses playback and keeps the position reached.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// Rewind moves the position back to the start.
func (p *Player) Rewind() {
	p.mu.Lock()
	p.position = 0
	p.mu.Unlock()
}

// Position returns the sample position playback resumes from.
func (p *Player) Position() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position
}

// Playing reports whether a stream is active.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stream != nil
}

func (p *Player) stopLocked() {
	if p.stream == nil {
		return
	}
	p.position = p.stream.Stop()
	p.stream = nil
}
