package badge

import (
	"image"
	"image/color"
)

var (
	gold  = color.NRGBA{R: 255, G: 215, B: 0, A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// createTestImage returns a width x height image filled with c. Pixels are
// written straight into Pix so transparent colors keep their RGB.
func createTestImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

// createCircleImage returns an image filled with c whose alpha is exactly the circle mask.
func createCircleImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := createTestImage(width, height, c)
	mask, err := GenerateCircleMask(width, height)
	if err != nil {
		panic(err)
	}
	applyMask(img, mask)
	return img
}

// alphaOf extracts the alpha channel of img as a flat slice.
func alphaOf(img *image.NRGBA) []uint8 {
	b := img.Bounds()
	out := make([]uint8, 0, b.Dx()*b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out = append(out, img.Pix[y*img.Stride+x*4+3])
		}
	}
	return out
}
