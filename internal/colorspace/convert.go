// Package colorspace converts single colors among hexadecimal, RGB, HSV,
// XYZ and CIE-LUV representations.
//
// All conversions are pure functions over value types. The RGB<->XYZ pair
// uses the sRGB piecewise gamma with the D65 matrices, and the XYZ<->LUV
// pair uses the CIE 1976 L*u*v* transform. Round-tripping a color through
// the full hex -> RGB -> XYZ -> LUV chain and back reproduces the original
// channels within +/-1 after re-quantization.
package colorspace

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGB is a color in RGB space. Channels are in [0, 255].
type RGB struct {
	R int
	G int
	B int
}

// HSV is a color in HSV space. Hue is in [0, 1) and wraps; saturation and
// value are in [0, 1].
type HSV struct {
	H float64
	S float64
	V float64
}

// XYZ is a color in CIE-XYZ space, scaled by 100 per CIE convention.
type XYZ struct {
	X float64
	Y float64
	Z float64
}

// LUV is a color in CIE-LUV space. L is in [0, 100]; U and V are unbounded
// and may be negative.
type LUV struct {
	L float64
	U float64
	V float64
}

// Color holds one color in every supported representation.
type Color struct {
	Hex string
	RGB RGB
	HSV HSV
	XYZ XYZ
	LUV LUV
}

// ParseHex converts a 6-digit hexadecimal code to RGB. A leading '#' is
// accepted and ignored.
func ParseHex(hex string) (RGB, error) {
	code := strings.TrimPrefix(hex, "#")
	if len(code) != 6 {
		return RGB{}, fmt.Errorf("hex code %q: want 6 hex digits, got %d", hex, len(code))
	}

	var channels [3]int
	for i := 0; i < 3; i++ {
		value, err := strconv.ParseUint(code[2*i:2*i+2], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("hex code %q: %w", hex, err)
		}
		channels[i] = int(value)
	}

	return RGB{R: channels[0], G: channels[1], B: channels[2]}, nil
}

// Hex converts RGB to a canonical 6-digit uppercase hexadecimal code with
// a leading '#'. Each channel is zero-padded to two digits.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// HSV converts RGB to HSV using the min/max/delta algorithm. Gray inputs
// (max == min) have no chroma: hue and saturation are both 0.
func (c RGB) HSV() HSV {
	vr := float64(c.R) / 255
	vg := float64(c.G) / 255
	vb := float64(c.B) / 255

	vmin := math.Min(vr, math.Min(vg, vb))
	vmax := math.Max(vr, math.Max(vg, vb))
	delta := vmax - vmin

	if delta == 0 {
		return HSV{H: 0, S: 0, V: vmax}
	}

	deltaChannel := func(v float64) float64 {
		return ((vmax-v)/6 + delta/2) / delta
	}
	dr := deltaChannel(vr)
	dg := deltaChannel(vg)
	db := deltaChannel(vb)

	var h float64
	switch vmax {
	case vr:
		h = db - dg
	case vg:
		h = 1.0/3 + dr - db
	default:
		h = 2.0/3 + dg - dr
	}
	if h < 0 {
		h++
	}
	if h >= 1 {
		h--
	}

	return HSV{H: h, S: delta / vmax, V: vmax}
}

// XYZ converts RGB to XYZ: sRGB gamma expansion followed by the D65
// linear transform.
func (c RGB) XYZ() XYZ {
	vr := expandChannel(c.R)
	vg := expandChannel(c.G)
	vb := expandChannel(c.B)

	return XYZ{
		X: vr*0.4124 + vg*0.3576 + vb*0.1805,
		Y: vr*0.2126 + vg*0.7152 + vb*0.0722,
		Z: vr*0.0193 + vg*0.1192 + vb*0.9505,
	}
}

// expandChannel linearizes one 8-bit sRGB channel, scaled by 100.
func expandChannel(channel int) float64 {
	v := float64(channel) / 255
	if v > 0.04045 {
		return math.Pow((v+0.055)/1.055, 2.4) * 100
	}
	return v / 12.92 * 100
}

// RGB converts XYZ back to RGB. Channels are rounded to the nearest
// integer and clamped to [0, 255]; out-of-gamut inputs never overflow the
// 8-bit range.
func (x XYZ) RGB() RGB {
	vx := x.X / 100
	vy := x.Y / 100
	vz := x.Z / 100

	vr := 3.2406*vx - 1.5372*vy - 0.4986*vz
	vg := -0.9689*vx + 1.8758*vy + 0.0415*vz
	vb := 0.0557*vx - 0.2040*vy + 1.0570*vz

	return RGB{
		R: compressChannel(vr),
		G: compressChannel(vg),
		B: compressChannel(vb),
	}
}

// compressChannel applies the inverse sRGB gamma and quantizes to 8 bits.
func compressChannel(v float64) int {
	var out float64
	if v > 0.0031308 {
		out = math.Round((1.055*math.Pow(v, 1.0/2.4) - 0.055) * 255)
	} else {
		out = math.Round(12.92 * v * 255)
	}
	if out < 0 {
		return 0
	}
	if out > 255 {
		return 255
	}
	return int(out)
}

// cieEpsilon is the CIE 1976 lightness breakpoint for Y/Yn.
const cieEpsilon = 0.008856

// LUV converts XYZ to CIE-LUV. Pure black (X + 15Y + 3Z == 0) maps to
// (0, 0, 0) rather than dividing by zero.
func (x XYZ) LUV() LUV {
	denom := x.X + 15*x.Y + 3*x.Z

	var vu, vv float64
	if denom != 0 {
		vu = 4 * x.X / denom
		vv = 9 * x.Y / denom
	}

	yr := x.Y / 100
	var vy float64
	if yr > cieEpsilon {
		vy = math.Cbrt(yr)
	} else {
		vy = 7.787*yr + 16.0/116
	}

	l := 116*vy - 16
	return LUV{L: l, U: 13 * l * vu, V: 13 * l * vv}
}

// XYZ converts CIE-LUV back to XYZ. When L == 0 the chromaticity terms
// are defined as 0 rather than dividing by zero.
func (l LUV) XYZ() XYZ {
	vy := (l.L + 16) / 116
	if cubed := vy * vy * vy; cubed > cieEpsilon {
		vy = cubed
	} else {
		vy = (vy - 16.0/116) / 7.787
	}

	var vu, vv float64
	if l.L != 0 {
		vu = l.U / (13 * l.L)
		vv = l.V / (13 * l.L)
	}

	y := vy * 100
	if vv == 0 {
		return XYZ{X: 0, Y: y, Z: 0}
	}
	x := -(9 * y * vu) / ((vu-4)*vv - vu*vv)
	z := (9*y - 15*vv*y - vv*x) / (3 * vv)
	return XYZ{X: x, Y: y, Z: z}
}

// Hex converts CIE-LUV to a hexadecimal code via XYZ and RGB.
func (l LUV) Hex() string {
	return l.XYZ().RGB().Hex()
}

// Euclidean returns the Euclidean distance between two LUV colors.
func (l LUV) Euclidean(other LUV) float64 {
	dl := l.L - other.L
	du := l.U - other.U
	dv := l.V - other.V
	return math.Sqrt(dl*dl + du*du + dv*dv)
}

// Cosine returns the cosine distance (1 - cosine similarity) between two
// LUV colors treated as vectors. The distance to or from the zero vector
// is defined as 1.
func (l LUV) Cosine(other LUV) float64 {
	dot := l.L*other.L + l.U*other.U + l.V*other.V
	na := math.Sqrt(l.L*l.L + l.U*l.U + l.V*l.V)
	nb := math.Sqrt(other.L*other.L + other.U*other.U + other.V*other.V)
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(na*nb)
}

// FromHex derives every supported representation from one hexadecimal
// code. This is the bulk construction step for palette rows.
func FromHex(hex string) (Color, error) {
	rgb, err := ParseHex(hex)
	if err != nil {
		return Color{}, err
	}

	xyz := rgb.XYZ()
	return Color{
		Hex: rgb.Hex(),
		RGB: rgb,
		HSV: rgb.HSV(),
		XYZ: xyz,
		LUV: xyz.LUV(),
	}, nil
}

// FromLUV derives every supported representation from a CIE-LUV color by
// re-quantizing through hex.
func FromLUV(luv LUV) Color {
	color, err := FromHex(luv.Hex())
	if err != nil {
		// LUV.Hex always yields a valid 6-digit code.
		panic(err)
	}
	return color
}
