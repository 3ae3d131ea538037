package pattern

import "testing"

func TestNextFillsEntireFramebuffer(t *testing.T) {
	c := NewCheckerboard(320, 240, 8, 0.09, 0.11, 0.12)
	fb := make([]byte, 320*240)
	c.Next(fb)

	seenNonZero := false
	for _, v := range fb {
		if v != 0 {
			seenNonZero = true
			break
		}
	}
	if !seenNonZero {
		t.Error("expected a non-trivial pattern, got an all-zero framebuffer")
	}
}

func TestNextAdvancesBetweenFrames(t *testing.T) {
	c := NewCheckerboard(320, 240, 8, 0.09, 0.11, 0.12)
	fb1 := make([]byte, 320*240)
	fb2 := make([]byte, 320*240)
	c.Next(fb1)
	c.Next(fb2)

	same := true
	for i := range fb1 {
		if fb1[i] != fb2[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("expected successive frames to differ")
	}
}
