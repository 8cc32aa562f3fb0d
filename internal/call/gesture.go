package call

// Gesture is a discrete event resolved from the slider.
type Gesture int

const (
	GestureNone Gesture = iota
	GestureAnswer
	GestureReject
)

// String returns the gesture name.
func (g Gesture) String() string {
	switch g {
	case GestureNone:
		return "none"
	case GestureAnswer:
		return "answer"
	case GestureReject:
		return "reject"
	default:
		return "unknown"
	}
}

// Slider bounds.
const (
	SliderMin = 0
	SliderMax = 100
)

// Slider turns a 0..100 slide position into at most one Answer or Reject
// per gesture. The resting position 0 only counts as Reject after the
// slider has left it.
type Slider struct {
	position int
	moved    bool
	fired    bool
}

// Move records a new position and returns the event it resolves to, if any.
func (s *Slider) Move(position int) Gesture {
	position = min(max(position, SliderMin), SliderMax)
	s.position = position

	if s.fired {
		return GestureNone
	}

	switch {
	case position == SliderMax:
		s.fired = true
		return GestureAnswer
	case position == SliderMin && s.moved:
		s.fired = true
		return GestureReject
	case position > SliderMin:
		s.moved = true
	}
	return GestureNone
}

// Position returns the last recorded position.
func (s *Slider) Position() int {
	return s.position
}

// Reset starts a new gesture at rest.
func (s *Slider) Reset() {
	*s = Slider{}
}
