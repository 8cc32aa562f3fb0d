package audio

import "sync"

// FakeBackend records every Play call. Streams report the position set in
// StopAt, or their start offset when it is negative.
type FakeBackend struct {
	mu      sync.Mutex
	plays   []FakePlay
	Enabled bool
	Err     error // returned by Play
	StopAt  int

	Single bool // reported by Exclusive
}

// FakePlay is one recorded playback.
type FakePlay struct {
	Clip    Clip
	Opts    PlayOptions
	Stopped bool
}

func NewFakeBackend() *FakeBackend {
	return &FakeBackend{Enabled: true, StopAt: -1}
}

func (f *FakeBackend) Name() string    { return "fake" }
func (f *FakeBackend) IsEnabled() bool { return f.Enabled }
func (f *FakeBackend) Exclusive() bool { return f.Single }

func (f *FakeBackend) Play(clip Clip, opts PlayOptions) (Stream, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	f.plays = append(f.plays, FakePlay{Clip: clip, Opts: opts})
	return &fakeStream{backend: f, index: len(f.plays) - 1}, nil
}

// Plays returns a copy of the recorded playbacks.
func (f *FakeBackend) Plays() []FakePlay {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]FakePlay(nil), f.plays...)
}

// Playing returns the number of streams not yet stopped.
func (f *FakeBackend) Playing() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.plays {
		if !p.Stopped {
			n++
		}
	}
	return n
}

type fakeStream struct {
	backend *FakeBackend
	index   int
}

func (s *fakeStream) Stop() int {
	f := s.backend
	f.mu.Lock()
	defer f.mu.Unlock()
	p := &f.plays[s.index]
	p.Stopped = true
	if f.StopAt >= 0 {
		return f.StopAt
	}
	return p.Opts.Offset
}
