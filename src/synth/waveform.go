package synth

import (
	"fmt"
	"math"
	"math/rand"
)

// ----- Wave Kind ----- //

// WaveKind selects one of the supported waveform shapes. The set is closed:
// an unrecognized name is rejected by ParseWaveKind before any audio
// resource is touched.
type WaveKind int

const (
	WaveSine WaveKind = iota
	WaveSquare
	WaveSawUp
	WaveSawDown
	WaveTriangle
	WaveNoise
)

var waveKindNames = []string{
	WaveSine:     "sine",
	WaveSquare:   "square",
	WaveSawUp:    "saw",
	WaveSawDown:  "saw-rev",
	WaveTriangle: "triangle",
	WaveNoise:    "noise",
}

func (k WaveKind) String() string {
	if k < 0 || int(k) >= len(waveKindNames) {
		return "unknown"
	}
	return waveKindNames[k]
}

// ParseWaveKind maps a waveform name to its kind.
func ParseWaveKind(name string) (WaveKind, error) {
	for k, n := range waveKindNames {
		if n == name {
			return WaveKind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown waveform %q", name)
}

// ----- Waveform Functions ----- //

// sample maps a normalized phase p in [0, 1) to an amplitude in [-amp, amp].
// All kinds are pure functions of p except WaveNoise, which draws from the
// process-wide random source and ignores p.
func sample(kind WaveKind, p float64, amp float64) float64 {
	switch kind {
	case WaveSine:
		return amp * math.Sin(2*math.Pi*p)
	case WaveSquare:
		// The half-period boundary sample belongs to the high half.
		if p <= 0.5 {
			return amp
		}
		return -amp
	case WaveSawUp:
		return amp * (1 - 2*p)
	case WaveSawDown:
		return amp * (2*p - 1)
	case WaveTriangle:
		switch {
		case p < 0.25:
			return amp * 4 * p
		case p < 0.75:
			return amp * (2 - 4*p)
		default:
			return amp * (4*p - 4)
		}
	case WaveNoise:
		return amp * (rand.Float64()*2 - 1)
	}
	return 0
}
