package call

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pdxmph/callsim/internal/contacts"
	"github.com/pdxmph/callsim/internal/metrics"
	zlog "github.com/rs/zerolog/log"
)

// Ringer is the shared ringtone playback device.
type Ringer interface {
	Play(r Ringtone) error
	Stop()
	Rewind()
}

// Vibrator emits haptic patterns: alternating on/off durations.
type Vibrator interface {
	Vibrate(pattern ...time.Duration)
}

// Haptic patterns.
var (
	AlertPattern = []time.Duration{500 * time.Millisecond, 200 * time.Millisecond, 500 * time.Millisecond}
	AnswerPulse  = 200 * time.Millisecond
)

const tickInterval = time.Second

// Options holds the session collaborators.
type Options struct {
	Ringer      Ringer
	Vibrator    Vibrator      // nil when the host has no haptics
	Scheduler   Scheduler     // nil uses TickerScheduler
	RingTimeout time.Duration // 0 rings until answered or rejected
}

// Record describes the call that most recently left the session.
type Record struct {
	ID       string
	Contact  contacts.Contact
	Style    Style
	Outcome  Outcome
	Duration int // seconds, answered calls only
	EndedAt  time.Time
}

// Snapshot is a read-only view of the session for rendering.
type Snapshot struct {
	ID          string
	State       State
	Contact     *contacts.Contact // nil unless ringing or active
	Style       Style
	Profile     Profile
	Elapsed     int // seconds, non-zero only while active
	RingSeconds int
	Slider      int
	Last        *Record
}

// Session is the single call state machine. Operations that do not apply to
// the current state return false and change nothing.
type Session struct {
	mu sync.Mutex

	ringer    Ringer
	vibrator  Vibrator
	scheduler Scheduler
	timeout   time.Duration

	id          string
	state       State
	contact     *contacts.Contact
	style       Style
	profile     Profile
	elapsed     int
	ringSeconds int
	slider      Slider
	playing     bool
	last        *Record

	// Timer handle owned by the current state
	timerCancel func()
	timerToken  uint64

	changes chan struct{}
}

// NewSession creates an idle session.
func NewSession(opts Options) *Session {
	if opts.Scheduler == nil {
		opts.Scheduler = TickerScheduler{}
	}
	return &Session{
		ringer:    opts.Ringer,
		vibrator:  opts.Vibrator,
		scheduler: opts.Scheduler,
		timeout:   opts.RingTimeout,
		state:     StateIdle,
		changes:   make(chan struct{}, 1),
	}
}

// Changes signals after every observable change. Signals coalesce.
func (s *Session) Changes() <-chan struct{} {
	return s.changes
}

// Initiate starts ringing for c using the profile of style.
// It does nothing unless the session is idle.
func (s *Session) Initiate(c contacts.Contact, style Style) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		zlog.Debug().Str("state", s.state.String()).Msg("Ignoring initiate, call in progress")
		return false
	}

	s.id = uuid.NewString()
	s.contact = &c
	s.style = style
	s.profile = ProfileFor(style)
	s.elapsed = 0
	s.ringSeconds = 0
	s.slider.Reset()
	s.state = StateRinging

	zlog.Info().
		Str("call_id", s.id).
		Str("style", string(style)).
		Str("ringtone", s.profile.Ringtone.String()).
		Msg("Incoming call")

	s.playing = true
	if err := s.ringer.Play(s.profile.Ringtone); err != nil {
		// Ringing without sound is acceptable
		metrics.PlaybackFailures.Inc()
		zlog.Warn().Err(err).Str("call_id", s.id).Msg("Ringtone playback failed")
	}
	s.vibrateLocked(AlertPattern...)
	s.startTimerLocked(s.ringTickLocked)

	s.notifyLocked()
	return true
}

// Answer moves a ringing call to active.
func (s *Session) Answer() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answerLocked()
}

// Reject declines a ringing call. From active it behaves like End.
func (s *Session) Reject() bool {
	return s.hangUp()
}

// End finishes a ringing or active call. Calling it while idle is a no-op.
func (s *Session) End() bool {
	return s.hangUp()
}

// Close ends any call in progress and releases its timer.
func (s *Session) Close() {
	s.hangUp()
}

// Slide feeds a slider position while ringing with the slider affordance and
// applies the resolved gesture.
func (s *Session) Slide(position int) Gesture {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRinging || s.profile.Affordance != AffordanceSlider {
		return GestureNone
	}

	g := s.slider.Move(position)
	switch g {
	case GestureAnswer:
		s.answerLocked()
	case GestureReject:
		s.finishLocked(OutcomeRejected)
	default:
		s.notifyLocked()
	}
	return g
}

// Snapshot returns the current observable state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:          s.id,
		State:       s.state,
		Style:       s.style,
		Profile:     s.profile,
		Elapsed:     s.elapsed,
		RingSeconds: s.ringSeconds,
		Slider:      s.slider.Position(),
	}
	if s.contact != nil {
		c := *s.contact
		snap.Contact = &c
	}
	if s.last != nil {
		r := *s.last
		snap.Last = &r
	}
	return snap
}

func (s *Session) hangUp() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateRinging:
		s.finishLocked(OutcomeRejected)
		return true
	case StateActive:
		s.finishLocked(OutcomeAnswered)
		return true
	default:
		return false
	}
}

func (s *Session) answerLocked() bool {
	if s.state != StateRinging {
		zlog.Debug().Str("state", s.state.String()).Msg("Ignoring answer")
		return false
	}

	s.stopTimerLocked()
	s.stopRingtoneLocked()
	s.vibrateLocked(AnswerPulse)

	s.state = StateActive
	s.elapsed = 0
	s.slider.Reset()
	s.startTimerLocked(s.callTickLocked)

	zlog.Info().Str("call_id", s.id).Int("rang_sec", s.ringSeconds).Msg("Call answered")
	s.notifyLocked()
	return true
}

// finishLocked runs the shared cleanup for every exit path, passes through
// StateEnded and lands on StateIdle.
func (s *Session) finishLocked(outcome Outcome) {
	s.stopTimerLocked()
	s.stopRingtoneLocked()

	s.state = StateEnded
	record := &Record{
		ID:      s.id,
		Style:   s.style,
		Outcome: outcome,
		EndedAt: time.Now(),
	}
	if s.contact != nil {
		record.Contact = *s.contact
	}
	if outcome == OutcomeAnswered {
		record.Duration = s.elapsed
		metrics.CallDuration.Observe(float64(s.elapsed))
	}
	s.last = record
	metrics.CallsTotal.WithLabelValues(outcome.String()).Inc()

	zlog.Info().
		Str("call_id", s.id).
		Str("outcome", outcome.String()).
		Int("duration_sec", record.Duration).
		Msg("Call ended")

	s.state = StateIdle
	s.id = ""
	s.contact = nil
	s.elapsed = 0
	s.ringSeconds = 0
	s.slider.Reset()

	s.notifyLocked()
}

func (s *Session) ringTickLocked() {
	if s.state != StateRinging {
		return
	}
	s.ringSeconds++
	if s.timeout > 0 && time.Duration(s.ringSeconds)*tickInterval >= s.timeout {
		s.finishLocked(OutcomeMissed)
		return
	}
	s.notifyLocked()
}

func (s *Session) callTickLocked() {
	if s.state != StateActive {
		return
	}
	s.elapsed++
	s.notifyLocked()
}

// startTimerLocked acquires the one-second timer for the current state.
// Ticks delivered after the handle is released are dropped by token.
func (s *Session) startTimerLocked(tick func()) {
	s.stopTimerLocked()
	token := s.timerToken
	s.timerCancel = s.scheduler.Every(tickInterval, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if token != s.timerToken {
			return
		}
		tick()
	})
}

func (s *Session) stopTimerLocked() {
	if s.timerCancel != nil {
		s.timerCancel()
		s.timerCancel = nil
	}
	s.timerToken++
}

func (s *Session) stopRingtoneLocked() {
	if !s.playing {
		return
	}
	s.ringer.Stop()
	s.ringer.Rewind()
	s.playing = false
}

func (s *Session) vibrateLocked(pattern ...time.Duration) {
	if s.vibrator == nil {
		return
	}
	s.vibrator.Vibrate(pattern...)
}

func (s *Session) notifyLocked() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}
