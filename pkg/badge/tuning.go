package badge

import (
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
)

// BadgeSize is the fixed badge canvas edge in pixels.
const BadgeSize = 512

// FitMode selects how a non-square image is made square before the resize phase.
type FitMode string

const (
	// FitStretch resizes straight to the badge size (no crop).
	FitStretch FitMode = "stretch"
	// FitSmart crops to a square using content-aware analysis first.
	FitSmart FitMode = "smart"
	// FitFace centres the square crop on the most confident face, falling back to FitSmart.
	FitFace FitMode = "face"
)

// Tuning holds the magic numbers of the happy color heuristic and the normalizer options.
type Tuning struct {
	// Happy color band, inclusive on both ends.
	HueMin        int     `json:"hue_min" yaml:"hue_min"`               // Default: 20
	HueMax        int     `json:"hue_max" yaml:"hue_max"`               // Default: 50
	HueScale      int     `json:"hue_scale" yaml:"hue_scale"`           // Default: 256 (0-255 hue)
	SaturationMin int     `json:"saturation_min" yaml:"saturation_min"` // Default: 40
	ValueMin      int     `json:"value_min" yaml:"value_min"`           // Default: 40
	HappyRatio    float64 `json:"happy_ratio" yaml:"happy_ratio"`       // Default: 0.5 (strictly more than half)

	// Normalizer
	Resampler string  `json:"resampler" yaml:"resampler"` // Default: lanczos
	FitMode   FitMode `json:"fit_mode" yaml:"fit_mode"`   // Default: stretch

	// Face fit (pigo)
	FaceCascadePath      string  `json:"face_cascade_path,omitempty" yaml:"face_cascade_path,omitempty"`
	FaceDetectConfidence float32 `json:"face_detect_confidence" yaml:"face_detect_confidence"`     // Default: 10.0
	FaceDetectMinSizePct int     `json:"face_detect_min_size_pct" yaml:"face_detect_min_size_pct"` // Default: 5 (% of min dim)
	FaceDetectShift      float64 `json:"face_detect_shift" yaml:"face_detect_shift"`               // Default: 0.1 (stride)
	FaceScaleFactor      float64 `json:"face_scale_factor" yaml:"face_scale_factor"`               // Default: 1.1
	FaceIoUThreshold     float64 `json:"face_iou_threshold" yaml:"face_iou_threshold"`             // Default: 0.2

	// Encoding
	EncodingQuality int `json:"encoding_quality" yaml:"encoding_quality"` // Default: 95
}

// DefaultTuning returns the standard HappyBadge values.
func DefaultTuning() Tuning {
	return Tuning{
		HueMin:               20,
		HueMax:               50,
		HueScale:             HueScaleFull,
		SaturationMin:        40,
		ValueMin:             40,
		HappyRatio:           0.5,
		Resampler:            "lanczos",
		FitMode:              FitStretch,
		FaceDetectConfidence: 10.0,
		FaceDetectMinSizePct: 5,
		FaceDetectShift:      0.1,
		FaceScaleFactor:      1.1,
		FaceIoUThreshold:     0.2,
		EncodingQuality:      95,
	}
}

var resampleFilters = map[string]imaging.ResampleFilter{
	"nearest":           imaging.NearestNeighbor,
	"box":               imaging.Box,
	"linear":            imaging.Linear,
	"hermite":           imaging.Hermite,
	"mitchellnetravali": imaging.MitchellNetravali,
	"catmullrom":        imaging.CatmullRom,
	"bspline":           imaging.BSpline,
	"gaussian":          imaging.Gaussian,
	"bartlett":          imaging.Bartlett,
	"lanczos":           imaging.Lanczos,
	"hann":              imaging.Hann,
	"hamming":           imaging.Hamming,
	"blackman":          imaging.Blackman,
	"welch":             imaging.Welch,
	"cosine":            imaging.Cosine,
}

// ResampleFilter looks up an imaging filter by name (case-insensitive).
func ResampleFilter(name string) (imaging.ResampleFilter, error) {
	f, ok := resampleFilters[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return imaging.ResampleFilter{}, fmt.Errorf("unknown resample filter %q", name)
	}
	return f, nil
}

// Validate checks that the tuning values are usable.
func (t Tuning) Validate() error {
	if t.HueScale != HueScaleFull && t.HueScale != HueScaleHalf {
		return fmt.Errorf("hue_scale must be %d or %d, got %d", HueScaleFull, HueScaleHalf, t.HueScale)
	}
	if t.HueMin < 0 || t.HueMax >= t.HueScale || t.HueMin > t.HueMax {
		return fmt.Errorf("hue band [%d,%d] outside scale %d", t.HueMin, t.HueMax, t.HueScale)
	}
	if t.SaturationMin < 0 || t.SaturationMin > 255 {
		return fmt.Errorf("saturation_min %d outside 0-255", t.SaturationMin)
	}
	if t.ValueMin < 0 || t.ValueMin > 255 {
		return fmt.Errorf("value_min %d outside 0-255", t.ValueMin)
	}
	if t.HappyRatio < 0 || t.HappyRatio >= 1 {
		return fmt.Errorf("happy_ratio %.3f outside [0,1)", t.HappyRatio)
	}
	if _, err := ResampleFilter(t.Resampler); err != nil {
		return err
	}
	switch t.FitMode {
	case FitStretch, FitSmart, FitFace:
	default:
		return fmt.Errorf("unknown fit_mode %q", t.FitMode)
	}
	if t.EncodingQuality < 1 || t.EncodingQuality > 100 {
		return fmt.Errorf("encoding_quality %d outside 1-100", t.EncodingQuality)
	}
	return nil
}
