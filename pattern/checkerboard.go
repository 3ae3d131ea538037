// Package pattern supplies a stand-in content producer: a wavy 256-color
// checkerboard generator. The engine itself has no notion of what draws
// into its framebuffer; this package exists so cmd/ntscpwmd has something
// moving to feed the framebuffer contract.
package pattern

import "math"

const tileSize = 16

// Checkerboard fills successive frames of a FrameWidth*FrameHeight indexed
// framebuffer with a wavy checkerboard, advancing one animation frame per
// call to Next.
type Checkerboard struct {
	waveLUT           [256]int8
	stepX, stepY      uint8
	tStep1, tStep2    uint8
	width, height     int
	frame             uint8
}

// NewCheckerboard builds the sine lookup table and fixed-point phase steps
// once at construction, mirroring init_wave_lut's one-shot setup.
func NewCheckerboard(width, height int, amplitude, freqX, freqY, timeSpeed float64) *Checkerboard {
	c := &Checkerboard{width: width, height: height}
	const twoPi = 2 * math.Pi
	for i := 0; i < 256; i++ {
		s := math.Sin(twoPi * float64(i) / 256.0)
		v := int(math.Round(amplitude * s))
		if v < -128 {
			v = -128
		}
		if v > 127 {
			v = 127
		}
		c.waveLUT[i] = int8(v)
	}
	phaseScale := 256.0 / twoPi
	c.stepX = uint8(math.Round(freqX * phaseScale))
	c.stepY = uint8(math.Round(freqY * phaseScale))
	c.tStep1 = uint8(math.Round(timeSpeed * phaseScale))
	c.tStep2 = uint8(math.Round(timeSpeed * 0.8 * phaseScale))
	return c
}

func (c *Checkerboard) colorAt(x, y int) uint8 {
	phaseY := uint8(y)*c.stepY + c.frame*c.tStep1
	phaseX := uint8(x)*c.stepX + c.frame*c.tStep2 + 64 // +64 == +90 degrees in a 256-cycle

	sx := x + int(c.waveLUT[phaseY])
	sy := y + int(c.waveLUT[phaseX])

	cx := sx / tileSize
	cy := sy / tileSize
	parity := (cx ^ cy) & 1

	base := uint8(sx + sy + int(c.frame)*2)
	if parity != 0 {
		return base ^ 0x80
	}
	return base
}

// Next renders one animation frame into fb, which must be exactly
// width*height bytes, and advances the internal frame counter.
func (c *Checkerboard) Next(fb []byte) {
	for y := 0; y < c.height; y++ {
		row := fb[y*c.width : (y+1)*c.width]
		for x := 0; x < c.width; x++ {
			row[x] = c.colorAt(x, y)
		}
	}
	c.frame++
}
