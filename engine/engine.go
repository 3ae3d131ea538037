package engine

import "fmt"

// Engine bundles the generator's private state — the scanline index and the
// framebuffer read cursor — into a single value owned by the caller and
// borrowed mutably by the DMA completion handler, instead of package-level
// statics. That makes it safe to run more than one Engine in the same
// process (useful for tests) and keeps the generator's state out of
// globals a handler would otherwise have to reach into directly.
type Engine struct {
	palette     *Palette
	framebuffer Framebuffer

	scanline int
	cursor   int

	Diagnostics Diagnostics
}

// New creates an Engine bound to a palette and a framebuffer. The palette
// must already be populated (via Palette.Set / LoadVGAPalette); framebuffer
// must be exactly FrameWidth*FrameHeight bytes.
func New(palette *Palette, framebuffer Framebuffer) (*Engine, error) {
	if len(framebuffer) != FrameWidth*FrameHeight {
		return nil, fmt.Errorf("engine: framebuffer must be %d bytes, got %d", FrameWidth*FrameHeight, len(framebuffer))
	}
	return &Engine{palette: palette, framebuffer: framebuffer}, nil
}

// Generate writes the samples for the current scanline index into buf (see
// generate for which samples each region writes), then advances the scanline index modulo LinesPerFrame and,
// on the first active-video line, resets the framebuffer read cursor to the
// start of the buffer.
//
// Generate advances the cursor by exactly FrameWidth bytes per active line
// and resets it exactly once per frame, so after the last active scanline
// the cursor has advanced exactly FrameWidth*FrameHeight bytes from base —
// one full framebuffer, never more, regardless of how many frames have run.
func (e *Engine) Generate(buf []uint16) {
	s := e.scanline

	if s == firstActiveLine {
		e.cursor = 0
		e.Diagnostics.RenderingActive = true
	}

	generate(buf, s, e.framebuffer, e.cursor, e.palette)

	if s >= firstActiveLine && s < lastActiveLine {
		e.cursor += FrameWidth
	}

	if s == lastActiveLine {
		e.Diagnostics.RenderingActive = false
		e.Diagnostics.FrameCounter++
	}

	e.scanline++
	if e.scanline >= LinesPerFrame {
		e.scanline = 0
	}
}

// Scanline reports the index that the next call to Generate will produce.
func (e *Engine) Scanline() int { return e.scanline }
