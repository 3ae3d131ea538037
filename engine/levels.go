// Package engine implements the real-time NTSC scanline synthesis pipeline:
// the color encoder that turns an indexed palette into composite sample
// values, and the scanline generator that turns a framebuffer plus a line
// index into a stream of 3-bit PWM samples.
package engine

// SamplesPerLine is the number of 3-bit samples in one NTSC scanline at the
// 14.318 MHz (4x color subcarrier) sample rate: 227 subcarrier cycles * 4.
const SamplesPerLine = 908

// LinesPerFrame is the modulus the scanline index wraps at.
//
// A conventional NTSC field runs 262 lines, but that count only accounts
// for the 36 lines ahead of the active region and 226 active lines — it
// undercounts once the active region grows to a full 240-line frame plus
// two bottom-blanking lines. Wrapping at the conventional 262 would make
// the last 14 active-video lines and the bottom-blanking/frame-counter
// logic unreachable. The modulus here is set one past the highest line
// index any region actually uses, so every region is reachable and a
// frame boundary lands exactly where the bottom-blanking lines end.
const LinesPerFrame = firstActiveLine + FrameHeight + 2

// FrameWidth and FrameHeight are the dimensions of the indexed framebuffer
// the content producer fills and the generator reads.
const (
	FrameWidth  = 320
	FrameHeight = 240
)

// Composite sample levels in the 3-bit (0..11) PWM output domain.
const (
	LevelSync      = 0
	LevelBurstLow  = 1
	LevelBlank     = 2
	LevelBurstHigh = 3
)

// hSyncWidth is the horizontal sync pulse width in samples (~4.7us).
const hSyncWidth = 68

// activeStart is the length of the horizontal-blanking prefix at the start of
// every active-video and bottom-blank line, which the generator fills with
// BLANK. Its length is budgeted as hsync (68) +
// back porch before burst (8) + 9 burst cycles * 4 samples (36) + remaining
// back porch (60).
const activeStart = hSyncWidth + 8 + 9*4 + 60

// firstActiveLine and lastActiveLine bound the active-video region: 36 lines
// precede the first of 240 visible lines. Among them, lines 0-1 are
// pre-equalizing, lines vsyncLines and vsyncLines+1 (10-11) are vertical
// sync, and the rest are blank.
const (
	vsyncLines     = 10
	topBlankLines  = 26
	firstActiveLine = vsyncLines + topBlankLines // 36
	lastActiveLine  = firstActiveLine + FrameHeight // 276, exclusive
)
