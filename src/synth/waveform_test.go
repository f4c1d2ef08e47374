package synth

import (
	"math"
	"testing"
)

var allKinds = []WaveKind{WaveSine, WaveSquare, WaveSawUp, WaveSawDown, WaveTriangle, WaveNoise}

func TestSampleBounds(t *testing.T) {
	amps := []float64{0, 0.25, 0.5, 1}
	for _, kind := range allKinds {
		for _, amp := range amps {
			for i := 0; i < 10000; i++ {
				p := float64(i) / 10000
				v := sample(kind, p, amp)
				if math.Abs(v) > amp+1e-9 {
					t.Fatalf("%v: |sample(%v)| = %v exceeds amplitude %v", kind, p, v, amp)
				}
			}
		}
	}
}

func TestSquareHalves(t *testing.T) {
	n := 1000
	transitions := 0
	prev := sample(WaveSquare, 0, 1)
	for i := 1; i < n; i++ {
		p := float64(i) / float64(n)
		v := sample(WaveSquare, p, 1)
		if p <= 0.5 && v != 1 {
			t.Fatalf("first half at p=%v: got %v, want 1", p, v)
		}
		if p > 0.5 && v != -1 {
			t.Fatalf("second half at p=%v: got %v, want -1", p, v)
		}
		if v != prev {
			transitions++
		}
		prev = v
	}
	if transitions != 1 {
		t.Fatalf("got %d sign transitions in one period, want 1", transitions)
	}
}

func TestSquareBoundaryIsHigh(t *testing.T) {
	if v := sample(WaveSquare, 0.5, 1); v != 1 {
		t.Fatalf("boundary sample: got %v, want 1", v)
	}
}

func TestTriangleShape(t *testing.T) {
	checks := []struct {
		p, want float64
	}{
		{0, 0},
		{0.25, 1},
		{0.5, 0},
		{0.75, -1},
	}
	for _, c := range checks {
		if v := sample(WaveTriangle, c.p, 1); math.Abs(v-c.want) > 1e-12 {
			t.Errorf("triangle(%v) = %v, want %v", c.p, v, c.want)
		}
	}
}

func TestTriangleContinuousAndZeroDC(t *testing.T) {
	n := 1000
	maxStep := 4.0/float64(n) + 1e-12
	sum := 0.0
	prev := sample(WaveTriangle, 0, 1)
	sum += prev
	for i := 1; i < n; i++ {
		v := sample(WaveTriangle, float64(i)/float64(n), 1)
		if math.Abs(v-prev) > maxStep {
			t.Fatalf("discontinuity at i=%d: step %v", i, math.Abs(v-prev))
		}
		sum += v
		prev = v
	}
	// the wrap edge is also continuous for a triangle
	if first := sample(WaveTriangle, 0, 1); math.Abs(first-prev) > maxStep {
		t.Fatalf("discontinuity at wrap: step %v", math.Abs(first-prev))
	}
	if mean := sum / float64(n); math.Abs(mean) > 1e-9 {
		t.Fatalf("DC offset over one period: %v", mean)
	}
}

func TestSawRampsAreLinear(t *testing.T) {
	n := 1000
	for _, kind := range []WaveKind{WaveSawUp, WaveSawDown} {
		prev := sample(kind, 0, 1)
		step := sample(kind, 1.0/float64(n), 1) - prev
		for i := 1; i < n; i++ {
			v := sample(kind, float64(i)/float64(n), 1)
			if math.Abs(v-prev-step) > 1e-9 {
				t.Fatalf("%v: nonlinear at i=%d", kind, i)
			}
			prev = v
		}
	}
	if v := sample(WaveSawUp, 0, 1); v != 1 {
		t.Errorf("saw starts at %v, want 1", v)
	}
	if v := sample(WaveSawDown, 0, 1); v != -1 {
		t.Errorf("saw-rev starts at %v, want -1", v)
	}
}

func TestParseWaveKind(t *testing.T) {
	for _, kind := range allKinds {
		parsed, err := ParseWaveKind(kind.String())
		expectNoError(t, err)
		if parsed != kind {
			t.Errorf("round trip for %v: got %v", kind, parsed)
		}
	}
	if _, err := ParseWaveKind("warble"); err == nil {
		t.Error("expected an error for an unknown waveform name")
	}
}
