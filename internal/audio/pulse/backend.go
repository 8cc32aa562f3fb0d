// Package pulse plays clips through a PulseAudio (or PipeWire-pulse) server.
package pulse

import (
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/jfreymuth/pulse"
	"github.com/jfreymuth/pulse/proto"
	"github.com/pdxmph/callsim/internal/audio"
	zlog "github.com/rs/zerolog/log"
)

const latency = 0.1 // seconds

// Backend implements audio.Backend over the native PulseAudio protocol.
type Backend struct {
	once    sync.Once
	enabled bool
}

// NewBackend creates a new PulseAudio backend
func NewBackend() audio.Backend {
	return &Backend{}
}

// Name returns the backend identifier
func (b *Backend) Name() string {
	return "pulse"
}

// IsEnabled reports whether a server accepted a connection. The check runs once.
func (b *Backend) IsEnabled() bool {
	b.once.Do(func() {
		c, err := pulse.NewClient()
		if err != nil {
			zlog.Debug().Err(err).Msg("PulseAudio not reachable")
			return
		}
		c.Close()
		b.enabled = true
	})
	return b.enabled
}

// Play opens a dedicated client and playback stream for clip.
func (b *Backend) Play(clip audio.Clip, opts audio.PlayOptions) (audio.Stream, error) {
	if len(clip.Samples) == 0 {
		return nil, errors.Newf("clip %q is empty", clip.Name)
	}

	c, err := pulse.NewClient()
	if err != nil {
		return nil, errors.Wrap(err, "connecting to pulseaudio")
	}

	s := &stream{client: c, samples: clip.Samples, loop: opts.Loop}
	s.pos.Store(int64(opts.Offset % len(clip.Samples)))

	volume := opts.Volume
	if volume <= 0 || volume > 1 {
		volume = 1
	}

	playback, err := c.NewPlayback(pulse.Int16Reader(s.read),
		pulse.PlaybackMono,
		pulse.PlaybackSampleRate(clip.SampleRate),
		pulse.PlaybackLatency(latency),
		pulse.PlaybackRawOption(func(p *proto.CreatePlaybackStream) {
			p.ChannelVolumes = proto.ChannelVolumes{uint32(float64(proto.VolumeNorm) * volume)}
		}),
	)
	if err != nil {
		c.Close()
		return nil, errors.Wrap(err, "creating playback stream")
	}
	s.playback = playback

	playback.Start()
	if !opts.Loop {
		go func() {
			playback.Drain()
			s.Stop()
		}()
	}

	zlog.Debug().Str("clip", clip.Name).Bool("loop", opts.Loop).Msg("PulseAudio playback started")
	return s, nil
}

type stream struct {
	client   *pulse.Client
	playback *pulse.PlaybackStream
	samples  []int16
	loop     bool
	pos      atomic.Int64
	stopOnce sync.Once
}

func (s *stream) read(buf []int16) (int, error) {
	n := 0
	for n < len(buf) {
		p := int(s.pos.Load())
		if p >= len(s.samples) {
			if !s.loop {
				break
			}
			s.pos.Store(0)
			continue
		}
		c := copy(buf[n:], s.samples[p:])
		n += c
		s.pos.Add(int64(c))
	}
	if n == 0 {
		return 0, pulse.EndOfData
	}
	return n, nil
}

func (s *stream) Stop() int {
	s.stopOnce.Do(func() {
		s.playback.Stop()
		s.playback.Close()
		s.client.Close()
	})
	return int(s.pos.Load()) % len(s.samples)
}

func init() {
	audio.Register("pulse", func() audio.Backend { return NewBackend() })
}
