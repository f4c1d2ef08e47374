package synth

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ----- Capture Sink ----- //

// CaptureSink persists the rendered stream to a WAV file, truncating the
// final buffer so the file holds an exact frame count regardless of the
// hardware buffer size. Its counters are touched only from the render
// thread's tap; the completion channel is the only cross-thread signal.
type CaptureSink struct {
	file    *os.File
	enc     *wav.Encoder
	buf     *audio.IntBuffer
	written uint64
	target  uint64
	done    chan struct{}
	once    sync.Once
}

var _ Tap = (*CaptureSink)(nil)

// NewCaptureSink opens path for writing and fixes the frame target up front
// from the rate the engine was opened with; the output format cannot change
// mid-run, so the target is never re-derived at tap time. When the parent
// directory is unreachable or the file cannot be created, capture is
// disabled (nil sink) and playback proceeds without it.
func NewCaptureSink(path string, durationSec float64, sampleRate int) *CaptureSink {
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		log.Debug("capture directory unreachable, capture disabled", "path", path, "err", err)
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		log.Debug("cannot create capture file, capture disabled", "path", path, "err", err)
		return nil
	}
	return &CaptureSink{
		file: f,
		enc:  wav.NewEncoder(f, sampleRate, 16, channelCount, 1),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channelCount, SampleRate: sampleRate},
			SourceBitDepth: 16,
		},
		target: uint64(math.Round(durationSec * float64(sampleRate))),
		done:   make(chan struct{}),
	}
}

// OnBuffer consumes one render call's worth of mono frames. Frames beyond
// the target are dropped; a write failure is logged and the frame count
// still advances, so the completion signal fires even when the disk is bad.
func (s *CaptureSink) OnBuffer(frames []float64) {
	if s.written >= s.target {
		return
	}
	if remain := s.target - s.written; uint64(len(frames)) > remain {
		frames = frames[:remain]
	}
	if len(frames) > 0 {
		if err := s.enc.Write(s.fill(frames)); err != nil {
			log.Error("capture write failed", "file", s.file.Name(), "err", err)
		}
		s.written += uint64(len(frames))
	}
	if s.written >= s.target {
		s.once.Do(func() { close(s.done) })
	}
}

// fill converts mono frames to the interleaved PCM16 layout the file format
// requires, duplicating each value across the output channels.
func (s *CaptureSink) fill(frames []float64) *audio.IntBuffer {
	data := s.buf.Data
	if cap(data) < len(frames)*channelCount {
		data = make([]int, len(frames)*channelCount)
	}
	data = data[:len(frames)*channelCount]
	for i, value := range frames {
		const max = 32767
		b := int(value * max)
		for ch := 0; ch < channelCount; ch++ {
			data[i*channelCount+ch] = b
		}
	}
	s.buf.Data = data
	return s.buf
}

// Done is closed once the target frame count has been persisted. It is the
// run loop's normal-path stop condition when capture is active.
func (s *CaptureSink) Done() <-chan struct{} {
	return s.done
}

// Completed reports whether the target has been reached.
func (s *CaptureSink) Completed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Close finalizes the WAV headers and closes the file. Safe to call whether
// or not the target was reached; an early stop leaves a shorter, valid file.
func (s *CaptureSink) Close() error {
	if err := s.enc.Close(); err != nil {
		s.file.Close()
		return fmt.Errorf("finalize capture file: %w", err)
	}
	return s.file.Close()
}
