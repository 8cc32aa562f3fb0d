package call

import (
	"sync"
	"time"
)

// FakeScheduler runs tasks against a virtual clock moved by Advance.
type FakeScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	tasks []*fakeTask
}

type fakeTask struct {
	interval  time.Duration
	next      time.Duration
	fn        func()
	cancelled bool
}

func NewFakeScheduler() *FakeScheduler {
	return &FakeScheduler{}
}

func (f *FakeScheduler) Every(interval time.Duration, task func()) func() {
	f.mu.Lock()
	defer f.mu.Unlock()

	t := &fakeTask{interval: interval, next: f.now + interval, fn: task}
	f.tasks = append(f.tasks, t)
	return func() {
		f.mu.Lock()
		t.cancelled = true
		f.mu.Unlock()
	}
}

// Advance moves the clock forward, running every task that falls due in order.
// Tasks run without the scheduler lock held so they may cancel themselves.
func (f *FakeScheduler) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now + d
	f.mu.Unlock()

	for {
		f.mu.Lock()
		var due *fakeTask
		for _, t := range f.tasks {
			if t.cancelled || t.next > target {
				continue
			}
			if due == nil || t.next < due.next {
				due = t
			}
		}
		if due == nil {
			f.now = target
			f.mu.Unlock()
			return
		}
		f.now = due.next
		due.next += due.interval
		fn := due.fn
		f.mu.Unlock()

		fn()
	}
}

// Active returns the number of tasks that have not been cancelled.
func (f *FakeScheduler) Active() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// FakeRinger records playback side effects.
type FakeRinger struct {
	mu      sync.Mutex
	plays   []Ringtone
	stops   int
	rewinds int
	Err     error // returned by Play
}

func (f *FakeRinger) Play(r Ringtone) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plays = append(f.plays, r)
	return f.Err
}

func (f *FakeRinger) Stop() {
	f.mu.Lock()
	f.stops++
	f.mu.Unlock()
}

func (f *FakeRinger) Rewind() {
	f.mu.Lock()
	f.rewinds++
	f.mu.Unlock()
}

func (f *FakeRinger) Plays() []Ringtone {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Ringtone(nil), f.plays...)
}

func (f *FakeRinger) Stops() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stops
}

func (f *FakeRinger) Rewinds() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rewinds
}

// FakeVibrator records haptic patterns.
type FakeVibrator struct {
	mu       sync.Mutex
	patterns [][]time.Duration
}

func (f *FakeVibrator) Vibrate(pattern ...time.Duration) {
	f.mu.Lock()
	f.patterns = append(f.patterns, append([]time.Duration(nil), pattern...))
	f.mu.Unlock()
}

func (f *FakeVibrator) Patterns() [][]time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]time.Duration(nil), f.patterns...)
}
