package hal

import (
	"sync/atomic"
	"time"

	"ntscpwm/engine"
)

// bufferWords rounds SamplesPerLine up to a multiple of 4 samples (8 bytes),
// which also satisfies the common word-alignment requirement for DMA.
const bufferWords = (engine.SamplesPerLine + 3) &^ 3

// Generator is the one operation the DMA completion handler needs from the
// scanline engine: refill a buffer for the current scanline and advance.
// engine.Engine satisfies this.
type Generator interface {
	Generate(buf []uint16)
}

// channel is one half of the ping-pong pair: its own scanline buffer plus
// the completion bit the shared DMA IRQ status register would report for it
// in real hardware.
type channel struct {
	buffer    [bufferWords]uint16
	statusBit uint32
}

// PingPong models two mutually-chained DMA channels: each channel transfers
// one scanline (908 16-bit samples) into the PWM compare register, and on
// completion the hardware chains the peer while an interrupt lets the CPU
// refill the buffer that just drained.
//
// A channel's buffer is owned by the CPU if and only if that channel's
// completion bit is set and uncleared. HandleComplete models no status
// register of its own: it is handed bits the caller has already read, and
// refills afterwards. Reading and clearing the bit before the refill is
// safe only because the peer channel takes at least one full scanline
// (63.4us at 14.318 MHz) to complete — a refill can never race a second
// completion of the same channel under that timing.
type PingPong struct {
	channels [2]channel
	active   int // index of the channel currently being drained by DMA
	gen      Generator

	lastHandlerNanos atomic.Int64
}

// NewPingPong wires a ping-pong DMA pair to a scanline generator and
// pre-fills both buffers with the first two scanlines before returning, so
// DMA has real samples to drain the instant it starts.
func NewPingPong(gen Generator) *PingPong {
	pp := &PingPong{gen: gen}
	pp.channels[0].statusBit = 1 << 0
	pp.channels[1].statusBit = 1 << 1
	pp.gen.Generate(pp.channels[0].buffer[:engine.SamplesPerLine])
	pp.gen.Generate(pp.channels[1].buffer[:engine.SamplesPerLine])
	pp.active = 0
	return pp
}

// ActiveChannel returns the index (0 or 1) of the channel currently draining
// into the PWM compare register.
func (pp *PingPong) ActiveChannel() int { return pp.active }

// Buffer exposes a channel's sample buffer, e.g. for a software PWM/DMA
// simulation loop to drain in place of real hardware.
func (pp *PingPong) Buffer(channelIndex int) []uint16 {
	return pp.channels[channelIndex].buffer[:engine.SamplesPerLine]
}

// StatusMask returns the completion-bit mask both channels would set in the
// shared DMA IRQ status register, for a caller simulating dma_hw->ints0.
func (pp *PingPong) StatusMask() uint32 {
	return pp.channels[0].statusBit | pp.channels[1].statusBit
}

// HandleComplete is the DMA completion interrupt handler: given the
// (already read) interrupt status bits, it identifies which channel
// completed, refills that channel's buffer with the next scanline, and
// hands DMA the peer channel to drain next.
//
// It runs to completion with no suspension points — there is nothing here
// that would yield to another goroutine, so the same single-goroutine-at-a-
// time discipline a real uninterruptible ISR gets is preserved as long as
// the caller never invokes HandleComplete concurrently with itself.
//
// The wall-clock time spent here is recorded so a caller can subtract it
// from the one-scanline deadline the real ISR has and watch how close the
// generator runs to that deadline.
func (pp *PingPong) HandleComplete(statusBits uint32) {
	start := time.Now()

	completed := 0
	if statusBits&pp.channels[1].statusBit != 0 {
		completed = 1
	}
	pp.gen.Generate(pp.channels[completed].buffer[:engine.SamplesPerLine])
	pp.active = 1 - completed

	pp.lastHandlerNanos.Store(int64(time.Since(start)))
}

// LastHandlerDuration reports how long the most recent HandleComplete call
// took to refill a scanline buffer. Safe to call concurrently with
// HandleComplete.
func (pp *PingPong) LastHandlerDuration() time.Duration {
	return time.Duration(pp.lastHandlerNanos.Load())
}
