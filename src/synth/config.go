package synth

import "fmt"

// ----- Config ----- //

const (
	DefaultSampleRate = 48000
	DefaultDuration   = 5.0
)

// Config describes one run. It is built once before any audio resource is
// touched and read-only afterwards.
type Config struct {
	Waveform   WaveKind
	Freq       float64 // Hz, must be positive
	Amp        float64 // clamped into [0, 1]
	Duration   float64 // seconds, also the capture length
	OutputPath string  // empty disables capture
	SampleRate int     // Hz, requested from the device
}

// Validate normalizes the config in place and rejects values no waveform can
// be rendered from.
func (c *Config) Validate() error {
	if c.Freq <= 0 {
		return fmt.Errorf("frequency must be positive, got %v", c.Freq)
	}
	if c.Amp < 0 {
		c.Amp = 0
	}
	if c.Amp > 1 {
		c.Amp = 1
	}
	if c.Duration == 0 {
		c.Duration = DefaultDuration
	}
	if c.Duration < 0 {
		return fmt.Errorf("duration must be positive, got %v", c.Duration)
	}
	if c.SampleRate == 0 {
		c.SampleRate = DefaultSampleRate
	}
	if c.SampleRate < 0 {
		return fmt.Errorf("sample rate must be positive, got %v", c.SampleRate)
	}
	return nil
}
