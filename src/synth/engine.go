package synth

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/oto"
)

// ----- Engine ----- //

// Engine owns the output device connection. The player pulls from the
// renderer on its own thread at the cadence of the hardware buffer; the
// engine itself never touches oscillator or capture state.
type Engine struct {
	otoContext *oto.Context
	sampleRate int
}

// NewEngine opens the output device at the requested rate. Failure here is
// fatal to the run; nothing renders without a device.
func NewEngine(sampleRate int) (*Engine, error) {
	otoContext, err := oto.NewContext(sampleRate, channelCount, bitDepthInBytes, bufferSizeInBytes)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	return &Engine{otoContext: otoContext, sampleRate: sampleRate}, nil
}

// SampleRate reports the rate the device was opened with. Oscillator
// increments and the capture target both derive from this one value.
func (e *Engine) SampleRate() int {
	return e.sampleRate
}

// Start blocks, pumping the renderer into the device until the renderer
// reports io.EOF (context cancelled) or the device fails.
func (e *Engine) Start(r io.Reader) error {
	p := e.otoContext.NewPlayer()
	defer func() {
		if err := p.Close(); err != nil {
			log.Error("closing player", "err", err)
		}
	}()
	if _, err := io.CopyBuffer(p, r, make([]byte, bufferSizeInBytes)); err != nil {
		return fmt.Errorf("render loop: %w", err)
	}
	return nil
}

// Close releases the device.
func (e *Engine) Close() error {
	return e.otoContext.Close()
}
