package badge

import (
	"image"
	"math/big"
)

// Mask values. Anything inside the circle is fully opaque, everything else fully transparent.
const (
	MaskInside  uint8 = 255
	MaskOutside uint8 = 0
)

// int64MaskDimension keeps w^2*h^2 inside int64. Larger masks compute each
// row's span with math/big instead.
const int64MaskDimension = 1 << 15

// GenerateCircleMask returns a mask marking the ellipse inscribed in the
// [0,width]x[0,height] box (the inscribed circle on a square canvas).
//
// A pixel is inside when its centre lies inside or on the ellipse. The test is done
// in integer arithmetic so the mask is exact and symmetric:
//
//	(2x+1-w)^2 * h^2 + (2y+1-h)^2 * w^2 <= w^2 * h^2
//
// This is the only ellipse rasterizer in the engine; the transparency rule and the
// normalizer both use it, which is what lets them compare alpha bit for bit.
func GenerateCircleMask(width, height int) (*image.Alpha, error) {
	if width <= 0 || height <= 0 {
		return nil, contractViolation("generate circle mask", "non-positive dimensions %dx%d", width, height)
	}

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	if width > int64MaskDimension || height > int64MaskDimension {
		fillEllipseBig(mask)
		return mask, nil
	}
	w, h := int64(width), int64(height)
	ww, hh := w*w, h*h
	limit := ww * hh

	for y := 0; y < height; y++ {
		dy := 2*int64(y) + 1 - h
		rowTerm := dy * dy * ww
		row := mask.Pix[y*mask.Stride : y*mask.Stride+width]
		for x := range row {
			dx := 2*int64(x) + 1 - w
			if dx*dx*hh+rowTerm <= limit {
				row[x] = MaskInside
			}
			// MaskOutside is the zero value.
		}
	}
	return mask, nil
}

// fillEllipseBig applies the same inclusion test as GenerateCircleMask one row
// at a time. On row y the inside pixels are those with
//
//	(2x+1-w)^2 <= floor(w^2 * (h^2 - (2y+1-h)^2) / h^2)
//
// so each row needs one integer square root.
func fillEllipseBig(mask *image.Alpha) {
	width, height := mask.Rect.Dx(), mask.Rect.Dy()
	w, h := big.NewInt(int64(width)), big.NewInt(int64(height))
	ww := new(big.Int).Mul(w, w)
	hh := new(big.Int).Mul(h, h)

	dy, rem, span := new(big.Int), new(big.Int), new(big.Int)
	for y := 0; y < height; y++ {
		dy.SetInt64(2*int64(y) + 1 - int64(height))
		rem.Mul(dy, dy)
		rem.Sub(hh, rem)
		if rem.Sign() < 0 {
			continue
		}
		rem.Mul(rem, ww)
		rem.Quo(rem, hh)
		span.Sqrt(rem)

		// |2x+1-w| <= span
		d := span.Int64()
		lo := ceilHalf(int64(width) - 1 - d)
		hi := (int64(width) - 1 + d) / 2
		lo = max(lo, 0)
		hi = min(hi, int64(width)-1)

		row := mask.Pix[y*mask.Stride : y*mask.Stride+width]
		for x := lo; x <= hi; x++ {
			row[x] = MaskInside
		}
	}
}

// ceilHalf returns ceil(n/2) for any sign of n.
func ceilHalf(n int64) int64 {
	if n <= 0 {
		return -((-n) / 2)
	}
	return (n + 1) / 2
}
