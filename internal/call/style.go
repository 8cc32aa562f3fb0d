package call

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Style is the device-style preference.
type Style string

const (
	StyleAndroid Style = "android"
	StyleIPhone  Style = "iphone"
)

// ParseStyle accepts "android" or "iphone", case-insensitively.
func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case StyleAndroid:
		return StyleAndroid, nil
	case StyleIPhone:
		return StyleIPhone, nil
	default:
		return "", errors.Newf("unknown phone style %q", s)
	}
}

// Toggle returns the other style.
func (s Style) Toggle() Style {
	if s == StyleIPhone {
		return StyleAndroid
	}
	return StyleIPhone
}

// Ringtone identifies one of the two ringtone variants.
type Ringtone int

const (
	RingtoneA Ringtone = iota
	RingtoneB
)

// String returns the variant name.
func (r Ringtone) String() string {
	switch r {
	case RingtoneA:
		return "A"
	case RingtoneB:
		return "B"
	default:
		return "unknown"
	}
}

// Affordance is how the user answers a ringing call.
type Affordance int

const (
	AffordanceButtons Affordance = iota // Separate answer and reject controls
	AffordanceSlider                    // One slide-to-answer gesture channel
)

// String returns the affordance name.
func (a Affordance) String() string {
	switch a {
	case AffordanceButtons:
		return "buttons"
	case AffordanceSlider:
		return "slider"
	default:
		return "unknown"
	}
}

// Profile is what a style selects.
type Profile struct {
	Ringtone   Ringtone
	Affordance Affordance
}

var profiles = map[Style]Profile{
	StyleAndroid: {Ringtone: RingtoneA, Affordance: AffordanceButtons},
	StyleIPhone:  {Ringtone: RingtoneB, Affordance: AffordanceSlider},
}

// ProfileFor looks up the ringtone and answer affordance for a style.
// Unknown styles get the android profile.
func ProfileFor(style Style) Profile {
	if p, ok := profiles[style]; ok {
		return p
	}
	return profiles[StyleAndroid]
}
