// Package scope is a bench-verification receiver: it tunes an RTL-SDR
// device to the frequency an rf.Transmitter is broadcasting on, AM-demodulates
// the incoming samples, and reconstructs a low-resolution grayscale image
// from the sync and active-video timing, so a human or a test can confirm
// what the engine actually put on the air. It is diagnostics tooling, not
// something the engine or the rf package depends on.
package scope

import (
	"fmt"
	"sync"

	rtl "github.com/jpoirier/gortlsdr"

	"ntscpwm/engine"
)

// OpenDevice opens RTL-SDR device 0 and configures it to receive on freqHz
// at sampleRateHz.
func OpenDevice(freqHz, sampleRateHz int, gainTenthsDb int) (*rtl.Context, error) {
	if rtl.GetDeviceCount() == 0 {
		return nil, fmt.Errorf("scope: no RTL-SDR devices found")
	}
	dev, err := rtl.Open(0)
	if err != nil {
		return nil, fmt.Errorf("scope: open device: %w", err)
	}
	if err := dev.SetCenterFreq(freqHz); err != nil {
		dev.Close()
		return nil, fmt.Errorf("scope: SetCenterFreq: %w", err)
	}
	if err := dev.SetSampleRate(sampleRateHz); err != nil {
		dev.Close()
		return nil, fmt.Errorf("scope: SetSampleRate: %w", err)
	}
	if err := dev.SetTunerGainMode(false); err != nil {
		dev.Close()
		return nil, fmt.Errorf("scope: SetTunerGainMode: %w", err)
	}
	if err := dev.SetTunerGain(gainTenthsDb); err != nil {
		dev.Close()
		return nil, fmt.Errorf("scope: SetTunerGain: %w", err)
	}
	if err := dev.ResetBuffer(); err != nil {
		dev.Close()
		return nil, fmt.Errorf("scope: ResetBuffer: %w", err)
	}
	return dev, nil
}

// Receiver demodulates raw I/Q samples into an approximate reconstruction of
// the transmitted framebuffer, using a sync-pulse search and a smoothed
// black/white AGC.
type Receiver struct {
	samplesPerLine    int
	activeStartSample int
	activeSamples     int

	frame      []byte
	frameMutex sync.Mutex
	line       int

	blankLevel float64
	peakLevel  float64
	sampleRate float64
}

// NewReceiver sizes a Receiver's line timing from the SDR sample rate.
func NewReceiver(sampleRate float64) *Receiver {
	r := &Receiver{sampleRate: sampleRate}
	const linesPerFrame = 525.0
	const frameRate = 30000.0 / 1001.0
	lineDuration := 1.0 / (frameRate * linesPerFrame)
	r.samplesPerLine = int(lineDuration * sampleRate)

	const activeStartUs = 10.7e-6
	const activeDurationUs = 52.6e-6
	r.activeStartSample = int(activeStartUs * sampleRate)
	r.activeSamples = int(activeDurationUs * sampleRate)

	r.frame = make([]byte, engine.FrameWidth*engine.FrameHeight)
	r.blankLevel = 5000.0
	r.peakLevel = 15000.0
	return r
}

// ProcessIQ demodulates one buffer of interleaved 8-bit I/Q samples,
// updating the receiver's reconstructed frame in place, and reports whether
// this call completed a frame (the vertical line count wrapped at least
// once), so a caller knows when Frame() is worth reading: AM-demodulate via
// magnitude squared, find the per-line sync tip as the local minimum, then
// resample the active portion into FrameWidth grayscale pixels.
func (r *Receiver) ProcessIQ(iq []byte) bool {
	frameComplete := false
	amSignal := make([]float64, len(iq)/2)
	for i := range amSignal {
		i8, q8 := float64(int(iq[i*2])-127), float64(int(iq[i*2+1])-127)
		amSignal[i] = i8*i8 + q8*q8
	}

	samplePtr := 0
	for samplePtr < len(amSignal)-r.samplesPerLine {
		minVal, minPos := amSignal[samplePtr], samplePtr
		for i := 0; i < r.samplesPerLine; i++ {
			if v := amSignal[samplePtr+i]; v < minVal {
				minVal, minPos = v, samplePtr+i
			}
		}
		lineStart := minPos
		if lineStart+r.samplesPerLine > len(amSignal) {
			break
		}

		activeStart := lineStart + r.activeStartSample
		if activeStart+r.activeSamples > len(amSignal) {
			samplePtr = lineStart + 1
			continue
		}
		lineSamples := amSignal[activeStart : activeStart+r.activeSamples]

		backPorchStart := lineStart + int(5.6e-6*r.sampleRate)
		if backPorchStart < len(amSignal) && backPorchStart >= 0 {
			r.blankLevel = r.blankLevel*0.995 + amSignal[backPorchStart]*0.005
		}
		maxInLine := 0.0
		for _, s := range lineSamples {
			if s > maxInLine {
				maxInLine = s
			}
		}
		r.peakLevel = r.peakLevel*0.995 + maxInLine*0.005

		if r.line < engine.FrameHeight {
			r.frameMutex.Lock()
			levelRange := r.peakLevel - r.blankLevel
			if levelRange < 1.0 {
				levelRange = 1.0
			}
			for x := 0; x < engine.FrameWidth; x++ {
				src := int(float64(x) / float64(engine.FrameWidth) * float64(len(lineSamples)))
				normalized := (lineSamples[src] - r.blankLevel) / levelRange
				gray := int(normalized * 255.0)
				if gray < 0 {
					gray = 0
				}
				if gray > 255 {
					gray = 255
				}
				r.frame[r.line*engine.FrameWidth+x] = byte(gray)
			}
			r.frameMutex.Unlock()
		}

		r.line++
		samplePtr = lineStart + r.samplesPerLine
		if r.line >= engine.FrameHeight {
			r.line = 0
			frameComplete = true
		}
	}
	return frameComplete
}

// Frame returns a thread-safe copy of the current reconstructed frame.
func (r *Receiver) Frame() []byte {
	r.frameMutex.Lock()
	defer r.frameMutex.Unlock()
	out := make([]byte, len(r.frame))
	copy(out, r.frame)
	return out
}
