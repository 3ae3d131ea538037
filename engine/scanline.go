package engine

// Framebuffer is the read-only view the generator holds over the content
// producer's indexed pixel buffer. It is a plain []byte; the engine never
// allocates or owns it.
type Framebuffer []byte

// Diagnostics holds a pair of optional debug counters: a rendering-active
// flag and a frame counter. Both are advisory only and carry no
// synchronization beyond the atomic-ish nature of a single-writer
// increment from within the handler.
type Diagnostics struct {
	RenderingActive bool
	FrameCounter    uint32
}

// burstPattern is the 4-sample color burst cycle written 9 times on
// vertical-sync lines.
var burstPattern = [4]uint16{LevelBlank, LevelBurstLow, LevelBlank, LevelBurstHigh}

// generateSync fills the pre-equalizing waveform for scanlines 0 and 1: 840
// samples of SYNC followed by 68 samples of BLANK.
func generateSync(buf []uint16) {
	const syncSamples = SamplesPerLine - hSyncWidth
	for i := 0; i < syncSamples; i++ {
		buf[i] = LevelSync
	}
	for i := syncSamples; i < SamplesPerLine; i++ {
		buf[i] = LevelBlank
	}
}

// generateVSync fills the vertical-sync waveform for scanlines 10 and 11:
// hsync, back porch, 9 burst cycles, then blanking to the end of the line.
// Burst appears here and only here, rather than on every line the way the
// NTSC standard defines it — a simplification carried over from the
// reference encoder this was ported from, kept because downstream
// consumers of the signal only need burst for coarse timing recovery, not
// per-line color-lock.
func generateVSync(buf []uint16) {
	i := 0
	for ; i < hSyncWidth; i++ {
		buf[i] = LevelSync
	}
	for j := 0; j < 8; j++ {
		buf[i] = LevelBlank
		i++
	}
	for cycle := 0; cycle < 9; cycle++ {
		copy(buf[i:i+4], burstPattern[:])
		i += 4
	}
	for ; i < SamplesPerLine; i++ {
		buf[i] = LevelBlank
	}
}

// generateBlankLine fills an entire line with BLANK level. It is written
// explicitly for every scanline outside the sync/vsync/active/bottom-blank
// regions (top-blank and post-bottom-blank), instead of leaving the buffer
// holding whatever its previous occupant wrote — a ping-pong buffer is
// reused every other scanline, so a line that isn't overwritten would
// otherwise put the samples of the line two scanlines earlier on the wire.
func generateBlankLine(buf []uint16) {
	for i := range buf {
		buf[i] = LevelBlank
	}
}

// generateActiveVideo fills one visible scanline: a prefix of activeStart
// samples at BLANK level (no sync pulse or burst is written on this line),
// then 320 framebuffer pixels each contributing two composite samples. The
// samples after the last pixel are left as they were.
func generateActiveVideo(buf []uint16, fb Framebuffer, cursor int, pal *Palette) {
	generateBlankLine(buf[:activeStart])
	out := activeStart
	for pixel := 0; pixel < FrameWidth; pixel++ {
		index := fb[cursor+pixel]
		s0, s1 := pal.pair(index, pixel)
		buf[out], buf[out+1] = s0, s1
		out += 2
	}
}

// generateBottomBlank fills a post-active-video blanking line: the same
// activeStart prefix, then FrameWidth*2 samples of BLANK.
func generateBottomBlank(buf []uint16) {
	generateBlankLine(buf[:activeStart])
	for i := activeStart; i < activeStart+FrameWidth*2; i++ {
		buf[i] = LevelBlank
	}
}

// generate classifies scanline index s and writes that line's samples into
// the first SamplesPerLine entries of buf, never past them. Active-video and
// bottom-blank lines write only the first activeStart+FrameWidth*2 samples
// and leave the rest of the line as it was; every other line writes all
// SamplesPerLine. cursor is the framebuffer read offset for the first pixel
// of this line, valid only when s falls in the active-video region.
func generate(buf []uint16, s int, fb Framebuffer, cursor int, pal *Palette) {
	if len(buf) < SamplesPerLine {
		panic("engine: scanline buffer shorter than SamplesPerLine")
	}
	buf = buf[:SamplesPerLine]

	switch {
	case s < 2:
		generateSync(buf)
	case s == vsyncLines || s == vsyncLines+1:
		generateVSync(buf)
	case s >= firstActiveLine && s < lastActiveLine:
		generateActiveVideo(buf, fb, cursor, pal)
	case s == lastActiveLine || s == lastActiveLine+1:
		generateBottomBlank(buf)
	default:
		generateBlankLine(buf)
	}
}
