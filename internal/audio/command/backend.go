// Package command plays clips by shelling out to a command-line audio player.
package command

import (
	"context"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pdxmph/callsim/internal/audio"
	zlog "github.com/rs/zerolog/log"
)

// player is a command that plays the WAV file appended to its arguments.
// An exclusive player opens the device directly and cannot overlap another.
type player struct {
	name      string
	args      []string
	exclusive bool
}

// Players in order of preference.
var players = []player{
	{name: "pw-play"},
	{name: "paplay"},
	{name: "aplay", args: []string{"-q"}, exclusive: true},
	{name: "afplay"},
}

// Backend implements audio.Backend by running an external player per loop.
type Backend struct {
	player *player
}

// NewBackend creates a backend using the first player found on PATH
func NewBackend() audio.Backend {
	return &Backend{player: findPlayer()}
}

func findPlayer() *player {
	for i := range players {
		if _, err := exec.LookPath(players[i].name); err == nil {
			return &players[i]
		}
	}
	return nil
}

// Name returns the backend identifier
func (b *Backend) Name() string {
	return "command"
}

// IsEnabled returns whether a player binary was found
func (b *Backend) IsEnabled() bool {
	return b.player != nil
}

// Exclusive reports whether the chosen player holds the output device while
// it plays, so only one stream can sound at a time.
func (b *Backend) Exclusive() bool {
	return b.player != nil && b.player.exclusive
}

// Play writes clip to a temporary WAV file and plays it in the background.
// The external players cannot seek, so opts.Offset is ignored.
func (b *Backend) Play(clip audio.Clip, opts audio.PlayOptions) (audio.Stream, error) {
	if b.player == nil {
		return nil, errors.New("no command-line audio player found")
	}
	if len(clip.Samples) == 0 {
		return nil, errors.Newf("clip %q is empty", clip.Name)
	}

	f, err := os.CreateTemp("", "callsim-*.wav")
	if err != nil {
		return nil, errors.Wrap(err, "creating temp file")
	}
	if opts.Volume > 0 && opts.Volume < 1 {
		clip.Samples = audio.Scale(clip.Samples, opts.Volume)
	}
	if err := audio.EncodeWAV(f, clip); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, errors.Wrap(err, "closing temp file")
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &stream{
		cancel:  cancel,
		done:    make(chan struct{}),
		started: time.Now(),
		clip:    clip,
	}
	go s.run(ctx, b.player, f.Name(), opts.Loop)

	zlog.Debug().Str("player", b.player.name).Str("clip", clip.Name).Bool("loop", opts.Loop).Msg("Command playback started")
	return s, nil
}

type stream struct {
	cancel   context.CancelFunc
	done     chan struct{}
	started  time.Time
	clip     audio.Clip
	stopOnce sync.Once
	position int
}

func (s *stream) run(ctx context.Context, p *player, path string, loop bool) {
	defer close(s.done)
	defer os.Remove(path)

	args := append(append([]string(nil), p.args...), path)
	for {
		cmd := exec.CommandContext(ctx, p.name, args...)
		cmd.WaitDelay = time.Second
		output, err := cmd.CombinedOutput()
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			zlog.Warn().Err(err).Str("player", p.name).Str("output", string(output)).Msg("Audio player failed")
			return
		}
		if !loop {
			return
		}
	}
}

// Stop kills the player and estimates the playhead from wall-clock time.
func (s *stream) Stop() int {
	s.stopOnce.Do(func() {
		played := int(time.Since(s.started).Seconds() * float64(s.clip.SampleRate))
		s.position = played % len(s.clip.Samples)
		s.cancel()
		<-s.done
	})
	return s.position
}

func init() {
	audio.Register("command", func() audio.Backend { return NewBackend() })
}
