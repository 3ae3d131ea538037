// Package rf provides an optional broadcast sink for the composite video
// stream: it upconverts the PWM sample sequence into an I/Q stream and
// drives a HackRF-class SDR with it, so the signal can be received over the
// air on a real television or SDR receiver for bench testing, alongside the
// mandatory PWM pin output — the engine never depends on this package, and
// the pipeline runs identically without it.
package rf

import (
	"fmt"
	"math"
	"sync"

	"github.com/samuel/go-hackrf/hackrf"

	"ntscpwm/engine"
)

// NewLowPassFilterTaps builds Blackman-windowed sinc FIR coefficients for
// band-limiting the baseband signal before upconversion.
func NewLowPassFilterTaps(numTaps int, bandwidth, sampleRate float64) []float64 {
	taps := make([]float64, numTaps)
	cutoffFreq := bandwidth / 2.0
	normalizedCutoff := cutoffFreq / sampleRate

	M := float64(numTaps - 1)
	var sum float64
	for i := 0; i < numTaps; i++ {
		n := float64(i)
		window := 0.42 - 0.5*math.Cos(2*math.Pi*n/M) + 0.08*math.Cos(4*math.Pi*n/M)

		var sinc float64
		if i == int(M/2) {
			sinc = 2 * math.Pi * normalizedCutoff
		} else {
			sinc = math.Sin(2*math.Pi*normalizedCutoff*(n-M/2)) / (n - M/2)
		}

		taps[i] = sinc * window
		sum += taps[i]
	}
	for i := range taps {
		taps[i] /= sum
	}
	return taps
}

// apply runs an FIR convolution over samples using taps.
func apply(taps, samples []float64) []float64 {
	out := make([]float64, len(samples))
	for i := range samples {
		var acc float64
		for t, tap := range taps {
			j := i - t
			if j < 0 {
				break
			}
			acc += tap * samples[j]
		}
		out[i] = acc
	}
	return out
}

// ireToAmplitude maps a PWM sample level (0..11) to a -1..1 baseband
// amplitude for the upconverter.
func ireToAmplitude(sample uint16) float64 {
	const maxLevel = 11.0
	return (float64(sample)/maxLevel)*2.0 - 1.0
}

// ringSize is four scanlines' worth of samples buffered between the engine's
// producer side and the HackRF's TX callback.
const ringSize = engine.SamplesPerLine * 4

// Transmitter implements hal.Sink, buffering composite samples and streaming
// them out over an open HackRF device as an I/Q signal.
type Transmitter struct {
	dev  *hackrf.Device
	taps []float64

	mu   sync.Mutex
	ring [ringSize]float64
	head int
	n    int
}

// NewTransmitter builds a Transmitter over an already-opened HackRF device,
// tuned to freqHz with the given channel bandwidth.
func NewTransmitter(dev *hackrf.Device, freqHz uint64, bandwidthHz, sampleRate float64, gain int) (*Transmitter, error) {
	if err := dev.SetFreq(freqHz); err != nil {
		return nil, fmt.Errorf("rf: SetFreq: %w", err)
	}
	if err := dev.SetSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("rf: SetSampleRate: %w", err)
	}
	if err := dev.SetTXVGAGain(gain); err != nil {
		return nil, fmt.Errorf("rf: SetTXVGAGain: %w", err)
	}
	if err := dev.SetAmpEnable(false); err != nil {
		return nil, fmt.Errorf("rf: SetAmpEnable: %w", err)
	}
	return &Transmitter{
		dev:  dev,
		taps: NewLowPassFilterTaps(63, bandwidthHz, sampleRate),
	}, nil
}

// Write implements hal.Sink: it enqueues one composite sample, dropping it
// if the ring is saturated because the TX callback is not keeping up. There
// is no recovery path for a missed deadline here; a dropped sample just
// shows up as a glitch on the receiving end.
func (t *Transmitter) Write(sample uint16) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.n >= ringSize {
		return
	}
	idx := (t.head + t.n) % ringSize
	t.ring[idx] = ireToAmplitude(sample)
	t.n++
}

// Start begins the HackRF TX stream, converting buffered baseband samples to
// filtered I/Q bytes on demand as the device calls for more.
func (t *Transmitter) Start() error {
	return t.dev.StartTX(func(buf []byte) error {
		samplesNeeded := len(buf) / 2

		t.mu.Lock()
		raw := make([]float64, samplesNeeded)
		for i := 0; i < samplesNeeded; i++ {
			if t.n == 0 {
				break
			}
			raw[i] = t.ring[t.head]
			t.head = (t.head + 1) % ringSize
			t.n--
		}
		t.mu.Unlock()

		filtered := apply(t.taps, raw)
		for i, amplitude := range filtered {
			buf[i*2] = byte(int8(amplitude * 127.0))
			buf[i*2+1] = 0
		}
		return nil
	})
}
