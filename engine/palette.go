package engine

// Palette holds, for each of 256 indexed colors, the four composite sample
// values representing that color at subcarrier phases 0, 90, 180 and 270
// degrees. It is written once at startup by Set/LoadVGAPalette and read-only
// to the generator thereafter.
type Palette struct {
	samples [256 * 4]uint16
}

// phaseOffset returns the index into a color's 4-sample group for the given
// pixel position: even pixels sample phases (0,90), odd pixels sample
// phases (180,270), so successive pixels sweep all four subcarrier phases
// across a pair of samples.
func phaseOffset(pixelIndex int) int {
	if pixelIndex&1 != 0 {
		return 2
	}
	return 0
}

// entry returns the four precomputed samples for a palette index.
func (p *Palette) entry(index uint8) [4]uint16 {
	base := int(index) * 4
	return [4]uint16{p.samples[base], p.samples[base+1], p.samples[base+2], p.samples[base+3]}
}

// pair returns the two adjacent samples a single framebuffer pixel
// contributes to the output stream, selected by phase offset.
func (p *Palette) pair(index uint8, pixelIndex int) (uint16, uint16) {
	base := int(index)*4 + phaseOffset(pixelIndex)
	return p.samples[base], p.samples[base+1]
}

// Precomputed integer coefficients for the quadrature color modulation.
// They encode the 0.4921/0.8773 chroma weights and the luma scale, all
// multiplied up to a common denominator of 65536 so the whole encoder runs
// in integer arithmetic. Do not adjust individually; they were derived
// together and changing one without the others will skew hue.
const (
	lumaScale     = 1792
	blueWeight0   = 441
	redWeight0    = 1361
	blueWeight90  = 764
	redWeight90   = -786
	compositeBias = 2*65536 + 32768
)

// Set computes and stores the four phase samples for one palette entry from
// an 8-bit (B, R, G) triple.
//
// The result is clamped to the PWM's [0,11] range at both ends. With 8-bit
// inputs and these coefficients every computed sample already lies in that
// range (the extremes are pure blue at 270 degrees, 0, and saturated yellow
// at 270 degrees, 11), so the clamp never changes a stored value.
func (p *Palette) Set(index uint8, blue, red, green uint8) {
	luminance := (150*int32(green) + 29*int32(blue) + 77*int32(red) + 128) / 256

	blueChroma0 := (int32(blue) - luminance) * blueWeight0
	redChroma0 := (int32(red) - luminance) * redWeight0
	blueChroma90 := (int32(blue) - luminance) * blueWeight90
	redChroma90 := (int32(red) - luminance) * redWeight90

	base := int(index) * 4
	p.samples[base+0] = clampSample((luminance*lumaScale + blueChroma0 + redChroma0 + compositeBias) / 65536)
	p.samples[base+1] = clampSample((luminance*lumaScale + blueChroma90 + redChroma90 + compositeBias) / 65536)
	p.samples[base+2] = clampSample((luminance*lumaScale - blueChroma0 - redChroma0 + compositeBias) / 65536)
	p.samples[base+3] = clampSample((luminance*lumaScale - blueChroma90 - redChroma90 + compositeBias) / 65536)
}

func clampSample(v int32) uint16 {
	if v < 0 {
		return 0
	}
	if v > 11 {
		return 11
	}
	return uint16(v)
}

// vgaPalette is the classic 256-entry VGA-style (0xRRGGBB) default palette,
// carried over unmodified so existing content authored against it renders
// with the same colors.
var vgaPalette = [256]uint32{
	0x000000, 0x0000AA, 0x00AA00, 0x00AAAA, 0xAA0000, 0xAA00AA, 0xAA5500, 0xAAAAAA,
	0x555555, 0x5555FF, 0x55FF55, 0x55FFFF, 0xFF5555, 0xFF55FF, 0xFFFF55, 0xFFFFFF,
	0x000000, 0x141414, 0x202020, 0x2C2C2C, 0x383838, 0x444444, 0x505050, 0x606060,
	0x707070, 0x808080, 0x909090, 0xA0A0A0, 0xB4B4B4, 0xC8C8C8, 0xDCDCDC, 0xF0F0F0,
	0x0000FF, 0x4100FF, 0x8200FF, 0xBE00FF, 0xFF00FF, 0xFF00BE, 0xFF0082, 0xFF0041,
	0xFF0000, 0xFF4100, 0xFF8200, 0xFFBE00, 0xFFFF00, 0xBEFF00, 0x82FF00, 0x41FF00,
	0x00FF00, 0x00FF41, 0x00FF82, 0x00FFBE, 0x00FFFF, 0x00BEFF, 0x0082FF, 0x0041FF,
	0x8282FF, 0x9E82FF, 0xBE82FF, 0xDB82FF, 0xFF82FF, 0xFF82DB, 0xFF82BE, 0xFF829E,
	0xFF8282, 0xFF9E82, 0xFFBE82, 0xFFDB82, 0xFFFF82, 0xDBFF82, 0xBEFF82, 0x9EFF82,
	0x82FF82, 0x82FF9E, 0x82FFBE, 0x82FFDB, 0x82FFFF, 0x82DBFF, 0x82BEFF, 0x829EFF,
	0xB6B6FF, 0xC6B6FF, 0xDBB6FF, 0xEBB6FF, 0xFFB6FF, 0xFFB6EB, 0xFFB6DB, 0xFFB6C6,
	0xFFB6B6, 0xFFC6B6, 0xFFDBB6, 0xFFEBB6, 0xFFFFB6, 0xEBFFB6, 0xDBFFB6, 0xC6FFB6,
	0xB6FFB6, 0xB6FFC6, 0xB6FFDB, 0xB6FFEB, 0xB6FFFF, 0xB6EBFF, 0xB6DBFF, 0xB6C6FF,
	0x000071, 0x1C0071, 0x390071, 0x550071, 0x710071, 0x710055, 0x710039, 0x71001C,
	0x710000, 0x711C00, 0x713900, 0x715500, 0x717100, 0x557100, 0x397100, 0x1C7100,
	0x007100, 0x00711C, 0x007139, 0x007155, 0x007171, 0x005571, 0x003971, 0x001C71,
	0x393971, 0x453971, 0x553971, 0x613971, 0x713971, 0x713961, 0x713955, 0x713945,
	0x713939, 0x714539, 0x715539, 0x716139, 0x717139, 0x617139, 0x557139, 0x457139,
	0x397139, 0x397145, 0x397155, 0x397161, 0x397171, 0x396171, 0x395571, 0x394571,
	0x515171, 0x595171, 0x615171, 0x695171, 0x715171, 0x715169, 0x715161, 0x715159,
	0x715151, 0x715951, 0x716151, 0x716951, 0x717151, 0x697151, 0x617151, 0x597151,
	0x517151, 0x517159, 0x517161, 0x517169, 0x517171, 0x516971, 0x516171, 0x515971,
	0x000041, 0x100041, 0x200041, 0x310041, 0x410041, 0x410031, 0x410020, 0x410010,
	0x410000, 0x411000, 0x412000, 0x413100, 0x414100, 0x314100, 0x204100, 0x104100,
	0x004100, 0x004110, 0x004120, 0x004131, 0x004141, 0x003141, 0x002041, 0x001041,
	0x202041, 0x282041, 0x312041, 0x392041, 0x412041, 0x412039, 0x412031, 0x412028,
	0x412020, 0x412820, 0x413120, 0x413920, 0x414120, 0x394120, 0x314120, 0x284120,
	0x204120, 0x204128, 0x204131, 0x204139, 0x204141, 0x203941, 0x203141, 0x202841,
	0x2D2D41, 0x312D41, 0x392D41, 0x3D2D41, 0x412D41, 0x412D3D, 0x412D39, 0x412D31,
	0x412D2D, 0x41312D, 0x41392D, 0x413D2D, 0x41412D, 0x3D412D, 0x39412D, 0x31412D,
	0x2D412D, 0x2D4131, 0x2D4139, 0x2D413D, 0x2D4141, 0x2D3D41, 0x2D3941, 0x2D3141,
	0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000,
}

// LoadVGAPalette populates p with the classic 256-entry VGA-style table, a
// reasonable default for callers that don't want to build their own.
func LoadVGAPalette(p *Palette) {
	for i, rgb := range vgaPalette {
		r := uint8(rgb >> 16)
		g := uint8(rgb >> 8)
		b := uint8(rgb)
		p.Set(uint8(i), b, r, g)
	}
}
