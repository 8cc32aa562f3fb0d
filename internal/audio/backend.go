// Package audio plays mono 16-bit PCM clips through a pluggable output backend.
package audio

import "time"

// Clip is a mono 16-bit PCM buffer.
type Clip struct {
	Name       string
	SampleRate int
	Samples    []int16
}

// Duration returns the playing time of the clip.
func (c Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(c.Samples)) * time.Second / time.Duration(c.SampleRate)
}

// PlayOptions controls a single playback.
type PlayOptions struct {
	Loop   bool    // restart from the beginning when the clip runs out
	Offset int     // first sample to play
	Volume float64 // 0..1, 0 is treated as 1
}

// Stream is a playback in progress.
type Stream interface {
	// Stop halts playback and returns the sample position reached.
	// Calling it more than once is safe.
	Stop() int
}

// Backend defines the interface that all audio output backends must implement
type Backend interface {
	// Name returns the backend identifier (e.g., "pulse", "command")
	Name() string

	// IsEnabled checks if the backend can reach an output device
	IsEnabled() bool

	// Play starts playback of clip and returns immediately
	Play(clip Clip, opts PlayOptions) (Stream, error)
}

// Exclusive is implemented by backends that cannot play two streams at once.
// Callers that would overlap the ringtone skip such backends.
type Exclusive interface {
	Exclusive() bool
}

// IsExclusive reports whether b can only sound one stream at a time.
func IsExclusive(b Backend) bool {
	e, ok := b.(Exclusive)
	return ok && e.Exclusive()
}

// BackendFactory is a function that creates a new instance of a Backend
type BackendFactory func() Backend
