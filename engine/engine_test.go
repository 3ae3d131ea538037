package engine

import "testing"

func TestNewRejectsWrongFramebufferSize(t *testing.T) {
	var pal Palette
	if _, err := New(&pal, make(Framebuffer, 10)); err == nil {
		t.Fatal("expected error for undersized framebuffer")
	}
}

func TestGenerateAdvancesScanlineModuloLinesPerFrame(t *testing.T) {
	var pal Palette
	LoadVGAPalette(&pal)
	fb := make(Framebuffer, FrameWidth*FrameHeight)
	e, err := New(&pal, fb)
	if err != nil {
		t.Fatal(err)
	}
	buf := make([]uint16, SamplesPerLine)
	for i := 0; i < LinesPerFrame*2+5; i++ {
		e.Generate(buf)
	}
	if e.Scanline() != 5 {
		t.Errorf("Scanline() = %d, want 5 after two full frames plus five lines", e.Scanline())
	}
}

func TestFrameCounterIncrementsOncePerFrame(t *testing.T) {
	var pal Palette
	LoadVGAPalette(&pal)
	fb := make(Framebuffer, FrameWidth*FrameHeight)
	e, err := New(&pal, fb)
	if err != nil {
		t.Fatal(err)
	}
	buf := make([]uint16, SamplesPerLine)
	for i := 0; i < LinesPerFrame*3; i++ {
		e.Generate(buf)
	}
	if e.Diagnostics.FrameCounter != 3 {
		t.Errorf("FrameCounter = %d, want 3", e.Diagnostics.FrameCounter)
	}
}

func TestCursorAdvancesExactlyOneFrameWorthPerFrame(t *testing.T) {
	// Fill the framebuffer with a ramp so the active-video lines read varied
	// data; the checks below look at the cursor position only.
	var pal Palette
	for i := 0; i < 256; i++ {
		pal.Set(uint8(i), byte(i), byte(i), byte(i))
	}
	fb := make(Framebuffer, FrameWidth*FrameHeight)
	for i := range fb {
		fb[i] = byte(i % 256)
	}
	e, err := New(&pal, fb)
	if err != nil {
		t.Fatal(err)
	}
	buf := make([]uint16, SamplesPerLine)

	// Drive exactly one full frame.
	for i := 0; i < LinesPerFrame; i++ {
		e.Generate(buf)
	}
	if e.cursor != FrameWidth*FrameHeight {
		t.Errorf("cursor = %d after one frame, want %d", e.cursor, FrameWidth*FrameHeight)
	}

	// Drive a second frame; the cursor must reset at the first active line
	// rather than run off the end of the framebuffer.
	for i := 0; i < LinesPerFrame; i++ {
		e.Generate(buf)
	}
	if e.cursor != FrameWidth*FrameHeight {
		t.Errorf("cursor = %d after two frames, want %d", e.cursor, FrameWidth*FrameHeight)
	}
}

func TestRenderingActiveFlagTracksActiveVideoWindow(t *testing.T) {
	var pal Palette
	LoadVGAPalette(&pal)
	fb := make(Framebuffer, FrameWidth*FrameHeight)
	e, err := New(&pal, fb)
	if err != nil {
		t.Fatal(err)
	}
	buf := make([]uint16, SamplesPerLine)

	// firstActiveLine+1 calls processes scanlines 0..firstActiveLine
	// inclusive; the call that processes firstActiveLine itself sets the
	// flag before writing.
	for i := 0; i <= firstActiveLine; i++ {
		e.Generate(buf)
	}
	if !e.Diagnostics.RenderingActive {
		t.Fatalf("expected RenderingActive after entering active region")
	}
	for i := firstActiveLine + 1; i <= lastActiveLine; i++ {
		e.Generate(buf)
	}
	if e.Diagnostics.RenderingActive {
		t.Fatalf("expected RenderingActive false after leaving active region")
	}
}
