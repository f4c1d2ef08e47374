package synth

import (
	"math"
	"testing"
)

func expectNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("expected no error, but got: %v", err)
	}
}

func TestOscillatorReturnsToStartAfterOnePeriod(t *testing.T) {
	cases := []struct {
		sampleRate float64
		freq       float64
	}{
		{48000, 480},  // 100 samples per period
		{48000, 375},  // 128 samples per period
		{44100, 441},  // 100 samples per period
		{48000, 1500}, // 32 samples per period
	}
	for _, c := range cases {
		o := NewOscillator(WaveSine, c.freq, 1, c.sampleRate)
		period := int(c.sampleRate / c.freq)
		for i := 0; i < period; i++ {
			o.Next()
		}
		if math.Abs(o.phase01) > 1e-9 && math.Abs(o.phase01-1) > 1e-9 {
			t.Errorf("rate=%v freq=%v: phase after one period = %v, want 0",
				c.sampleRate, c.freq, o.phase01)
		}
	}
}

func TestOscillatorPhaseStaysInRange(t *testing.T) {
	o := NewOscillator(WaveSawUp, 7919, 1, 48000)
	for i := 0; i < 100000; i++ {
		o.Next()
		if o.phase01 < 0 || o.phase01 >= 1 {
			t.Fatalf("phase out of range after %d advances: %v", i+1, o.phase01)
		}
	}
}

func TestOscillatorAdvancesOncePerSample(t *testing.T) {
	o := NewOscillator(WaveSine, 440, 1, 44100)
	inc := 440.0 / 44100.0
	for i := 1; i <= 10; i++ {
		o.Next()
		want := math.Mod(float64(i)*inc, 1)
		if math.Abs(o.phase01-want) > 1e-12 {
			t.Fatalf("after %d samples: phase = %v, want %v", i, o.phase01, want)
		}
	}
}
