package synth

import "math"

// ----- OSC ----- //

// Oscillator holds the render-side state for the run: the phase accumulator
// plus the parameters the waveform functions sample. It is owned exclusively
// by the render path; callback invocations are serialized by the player's
// thread, so no locking is needed.
type Oscillator struct {
	kind    WaveKind
	amp     float64
	inc     float64 // freq / sampleRate, fixed for the run
	phase01 float64 // always in [0, 1)
}

// NewOscillator derives the per-sample increment from the device sample rate
// and the requested frequency.
func NewOscillator(kind WaveKind, freq, amp float64, sampleRate float64) *Oscillator {
	return &Oscillator{
		kind: kind,
		amp:  amp,
		inc:  freq / sampleRate,
	}
}

// Next returns the sample at the current phase and advances the accumulator
// exactly once. The wrap into [0, 1) runs on every advance, not only when
// the phase overshoots.
func (o *Oscillator) Next() float64 {
	v := sample(o.kind, o.phase01, o.amp)
	o.phase01 += o.inc
	_, o.phase01 = math.Modf(o.phase01)
	return v
}
