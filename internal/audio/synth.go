package audio

import (
	"math"
	"time"
)

// DefaultSampleRate is used for synthesised clips.
const DefaultSampleRate = 44100

func sampleCount(sampleRate int, d time.Duration) int {
	return int(float64(sampleRate) * d.Seconds())
}

// Tone synthesises the sum of freqs for d with an exponential decay envelope.
// A decay of 0 holds the volume flat.
func Tone(sampleRate int, d time.Duration, volume, decay float64, freqs ...float64) []int16 {
	n := sampleCount(sampleRate, d)
	samples := make([]int16, n)
	if len(freqs) == 0 {
		return samples
	}
	amp := 32767 * volume / float64(len(freqs))
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		envelope := math.Exp(-t * decay)
		var v float64
		for _, f := range freqs {
			v += math.Sin(2 * math.Pi * f * t)
		}
		samples[i] = clamp16(v * amp * envelope)
	}
	return samples
}

// Silence returns d worth of zero samples.
func Silence(sampleRate int, d time.Duration) []int16 {
	return make([]int16, sampleCount(sampleRate, d))
}

// Join concatenates sample buffers.
func Join(parts ...[]int16) []int16 {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]int16, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Scale returns a copy of samples multiplied by volume (0..1).
func Scale(samples []int16, volume float64) []int16 {
	out := make([]int16, len(samples))
	for i, s := range samples {
		out[i] = clamp16(float64(s) * volume)
	}
	return out
}

func clamp16(v float64) int16 {
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	default:
		return int16(v)
	}
}
