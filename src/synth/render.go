package synth

import (
	"context"
	"io"
)

const (
	channelCount    = 2
	bitDepthInBytes = 2
	samplesPerCycle = 1024
)
const bytesPerFrame = channelCount * bitDepthInBytes
const bufferSizeInBytes = samplesPerCycle * bytesPerFrame

// Tap observes the mono frames produced by each render call, before the
// next call begins. It runs on the render thread and must stay bounded.
type Tap interface {
	OnBuffer(frames []float64)
}

// Renderer is the pull side of the audio graph. The player calls Read to
// fill each hardware buffer on demand; every call renders
// len(buf)/bytesPerFrame frames, duplicating the mono value across both
// output channels.
type Renderer struct {
	ctx     context.Context
	osc     *Oscillator
	tap     Tap
	scratch []float64
}

var _ io.Reader = (*Renderer)(nil)

// NewRenderer wires an oscillator and an optional tap into a pull source.
// Cancelling ctx makes the next Read return io.EOF, which ends the player's
// copy loop.
func NewRenderer(ctx context.Context, osc *Oscillator, tap Tap) *Renderer {
	return &Renderer{
		ctx:     ctx,
		osc:     osc,
		tap:     tap,
		scratch: make([]float64, samplesPerCycle),
	}
}

// Read runs under the player's real-time deadline: work is O(len(buf)) and
// nothing allocates once scratch has grown to the hardware buffer size.
func (r *Renderer) Read(buf []byte) (int, error) {
	select {
	case <-r.ctx.Done():
		return 0, io.EOF
	default:
	}
	frames := len(buf) / bytesPerFrame
	if len(r.scratch) < frames {
		r.scratch = make([]float64, frames)
	}
	out := r.scratch[:frames]
	for i := range out {
		out[i] = r.osc.Next()
	}
	writeFrames(out, buf)
	if r.tap != nil {
		r.tap.OnBuffer(out)
	}
	return frames * bytesPerFrame, nil
}

// writeFrames packs mono float frames into the interleaved little-endian
// int16 layout the player consumes.
func writeFrames(frames []float64, buf []byte) {
	for i, value := range frames {
		const max = 32767
		b := int16(value * max)
		for ch := 0; ch < channelCount; ch++ {
			buf[bytesPerFrame*i+2*ch] = byte(b)
			buf[bytesPerFrame*i+2*ch+1] = byte(b >> 8)
		}
	}
}
