// Package call models one simulated phone call: ringing, answering, the
// running duration counter and the cleanup of every resource on the way out.
package call

// State represents the call session state.
type State int

const (
	StateIdle    State = iota // No call
	StateRinging              // Incoming call, ringtone looping
	StateActive               // Answered, duration counter running
	StateEnded                // Momentary, collapses to StateIdle
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRinging:
		return "ringing"
	case StateActive:
		return "active"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Outcome is how a call left the session.
type Outcome int

const (
	OutcomeAnswered Outcome = iota // Answered, then ended
	OutcomeRejected                // Declined or ended while ringing
	OutcomeMissed                  // Ring timeout elapsed
)

// String returns the metric label for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeAnswered:
		return "answered"
	case OutcomeRejected:
		return "rejected"
	case OutcomeMissed:
		return "missed"
	default:
		return "unknown"
	}
}
