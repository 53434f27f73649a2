package badge

import "math"

// Hue scales understood by the happy color rule.
const (
	// HueScaleFull stores hue in 256 steps (0-255), the 8-bit "_FULL" encoding.
	HueScaleFull = 256
	// HueScaleHalf stores hue as degrees/2 (0-179), the classic 8-bit OpenCV encoding.
	HueScaleHalf = 180
)

// hsvShift is the fixed-point precision of the division tables.
const hsvShift = 12

// hsv holds one 8-bit HSV sample. Saturation and value are always 0-255;
// hue is 0..scale-1 for the scale it was converted with.
type hsv struct {
	H, S, V int
}

var (
	satDiv = satDivTable()
	hueDiv = map[int]*[256]int{
		HueScaleFull: hueDivTable(HueScaleFull),
		HueScaleHalf: hueDivTable(HueScaleHalf),
	}
)

// satDivTable holds round((255<<hsvShift)/v), with 0 for v == 0.
func satDivTable() *[256]int {
	var t [256]int
	for i := 1; i < len(t); i++ {
		t[i] = int(math.RoundToEven(float64(255<<hsvShift) / float64(i)))
	}
	return &t
}

// hueDivTable holds round((scale<<hsvShift)/(6*diff)), with 0 for diff == 0.
func hueDivTable(scale int) *[256]int {
	var t [256]int
	for i := 1; i < len(t); i++ {
		t[i] = int(math.RoundToEven(float64(scale<<hsvShift) / (6 * float64(i))))
	}
	return &t
}

// rgbToHSV converts an 8-bit RGB triple to HSV with the OpenCV 8-bit converter's
// fixed-point arithmetic, so results match cv2 bit for bit on both hue scales.
// V is the max channel, S is 255*(V-min)/V and H is the hexcone angle mapped
// onto hueScale steps.
func rgbToHSV(r, g, b uint8, hueScale int) hsv {
	ri, gi, bi := int(r), int(g), int(b)

	v := max(ri, gi, bi)
	diff := v - min(ri, gi, bi)

	const half = 1 << (hsvShift - 1)
	s := (diff*satDiv[v] + half) >> hsvShift

	var h int
	switch v {
	case ri:
		h = gi - bi
	case gi:
		h = bi - ri + 2*diff
	default:
		h = ri - gi + 4*diff
	}

	div, ok := hueDiv[hueScale]
	if !ok {
		div = hueDivTable(hueScale)
	}
	h = (h*div[diff] + half) >> hsvShift
	if h < 0 {
		h += hueScale
	}
	if h >= hueScale {
		h = hueScale - 1
	}
	return hsv{H: h, S: s, V: v}
}
