package badge

import (
	"fmt"
	"image"
	"sort"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"
	"github.com/muesli/smartcrop"

	"github.com/dixieflatline76/HappyBadge/util/log"
)

// Normalizer forces an image to satisfy the dimension and transparency rules.
// It is immutable after construction and safe for concurrent use.
type Normalizer struct {
	resampler imaging.ResampleFilter
	fitMode   FitMode
	faces     *FaceFinder // nil disables face fit
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithFaceFinder enables the face fit mode with the given detector.
func WithFaceFinder(f *FaceFinder) NormalizerOption {
	return func(n *Normalizer) {
		n.faces = f
	}
}

// NewNormalizer creates a normalizer from tuning values. An unknown resample
// filter falls back to Lanczos.
func NewNormalizer(t Tuning, opts ...NormalizerOption) *Normalizer {
	filter, err := ResampleFilter(t.Resampler)
	if err != nil {
		log.Printf("normalizer: %v, using lanczos", err)
		filter = imaging.Lanczos
	}
	n := &Normalizer{
		resampler: filter,
		fitMode:   t.FitMode,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Autofix resizes img to BadgeSize x BadgeSize and replaces its alpha channel
// with the circle mask. RGB is left as the resize produced it.
func (n *Normalizer) Autofix(img image.Image) (*image.NRGBA, error) {
	if err := checkImage("autofix", img); err != nil {
		return nil, err
	}

	fitted, err := n.fit(img)
	if err != nil {
		return nil, err
	}

	// Resize runs even for images that are already the right size.
	resized := imaging.Resize(fitted, BadgeSize, BadgeSize, n.resampler)

	mask, err := GenerateCircleMask(BadgeSize, BadgeSize)
	if err != nil {
		return nil, err
	}
	applyMask(resized, mask)
	return resized, nil
}

// fit crops img to a square according to the fit mode. Square inputs and the
// stretch mode pass through untouched.
func (n *Normalizer) fit(img image.Image) (image.Image, error) {
	b := img.Bounds()
	if n.fitMode == FitStretch || n.fitMode == "" || b.Dx() == b.Dy() {
		return img, nil
	}

	// Crop rectangles below are relative to a zero origin.
	src := toNRGBA(img)

	if n.fitMode == FitFace {
		if n.faces == nil {
			log.Debugf("normalizer: face fit requested without a detector, using smart fit")
		} else if rect, ok := n.faces.SquareAroundFace(src); ok {
			log.Debugf("normalizer: face crop %v", rect)
			return imaging.Crop(src, rect), nil
		} else {
			log.Debugf("normalizer: no face found, using smart fit")
		}
	}

	rect, err := n.smartSquare(src)
	if err != nil {
		return nil, fmt.Errorf("finding best crop: %w", err)
	}
	log.Debugf("normalizer: smart crop %v", rect)
	return imaging.Crop(src, rect), nil
}

// smartSquare asks smartcrop for the most interesting square region.
func (n *Normalizer) smartSquare(img image.Image) (image.Rectangle, error) {
	b := img.Bounds()
	side := min(b.Dx(), b.Dy())

	analyzer := smartcrop.NewAnalyzer(&resizer{resampler: n.resampler})
	crop, err := analyzer.FindBestCrop(img, side, side)
	if err != nil {
		return image.Rectangle{}, err
	}
	return crop, nil
}

// applyMask overwrites the alpha channel of img with mask. Both must have the same size.
func applyMask(img *image.NRGBA, mask *image.Alpha) {
	b := img.Bounds()
	for y := 0; y < b.Dy(); y++ {
		pix := img.Pix[y*img.Stride : y*img.Stride+b.Dx()*4]
		mrow := mask.Pix[y*mask.Stride : y*mask.Stride+b.Dx()]
		for x, a := range mrow {
			pix[x*4+3] = a
		}
	}
}

// resizer implements the smartcrop.Resizer interface on top of imaging.
type resizer struct {
	resampler imaging.ResampleFilter
}

func (r *resizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), r.resampler)
}

// FaceFinder locates faces with a pigo cascade classifier.
type FaceFinder struct {
	classifier *pigo.Pigo
	tuning     Tuning
}

// NewFaceFinder unpacks a pigo facefinder cascade.
func NewFaceFinder(cascade []byte, t Tuning) (*FaceFinder, error) {
	if len(cascade) == 0 {
		return nil, contractViolation("new face finder", "empty cascade")
	}
	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("unpacking face cascade: %w", err)
	}
	return &FaceFinder{classifier: classifier, tuning: t}, nil
}

// SquareAroundFace returns the largest square crop of src centred, as far as
// the bounds allow, on the most confident face. src must have a zero origin.
func (f *FaceFinder) SquareAroundFace(src *image.NRGBA) (image.Rectangle, bool) {
	cols, rows := src.Bounds().Dx(), src.Bounds().Dy()
	minDim := min(cols, rows)

	params := pigo.CascadeParams{
		MinSize:     max(minDim*f.tuning.FaceDetectMinSizePct/100, 20),
		MaxSize:     minDim,
		ShiftFactor: f.tuning.FaceDetectShift,
		ScaleFactor: f.tuning.FaceScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pigo.RgbToGrayscale(src),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	dets := f.classifier.RunCascade(params, 0.0)
	dets = f.classifier.ClusterDetections(dets, f.tuning.FaceIoUThreshold)

	var faces []pigo.Detection
	for _, d := range dets {
		if d.Q >= f.tuning.FaceDetectConfidence {
			faces = append(faces, d)
		}
	}
	if len(faces) == 0 {
		return image.Rectangle{}, false
	}
	sort.Slice(faces, func(i, j int) bool { return faces[i].Q > faces[j].Q })

	best := faces[0]
	return squareAround(cols, rows, best.Col, best.Row), true
}

// squareAround returns the largest square inside a cols x rows image whose
// centre is as close to (cx, cy) as the edges allow.
func squareAround(cols, rows, cx, cy int) image.Rectangle {
	side := min(cols, rows)
	x0 := clamp(cx-side/2, 0, cols-side)
	y0 := clamp(cy-side/2, 0, rows-side)
	return image.Rect(x0, y0, x0+side, y0+side)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
