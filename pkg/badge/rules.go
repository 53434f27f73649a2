package badge

import (
	"fmt"
	"image"

	"github.com/dixieflatline76/HappyBadge/util/log"
)

// RuleID identifies an acceptance rule.
type RuleID string

const (
	RuleDimension    RuleID = "dimension"
	RuleTransparency RuleID = "transparency"
	RuleHappyColor   RuleID = "happy_color"
)

// Complaint messages, one per rule.
var (
	DimensionComplaint    = fmt.Sprintf("Image size is not %dx%d pixels", BadgeSize, BadgeSize)
	TransparencyComplaint = "Non-transparent pixels are not within a circle"
	HappyColorComplaint   = "The dominant colors in the image do not evoke a happy feeling as intended."
)

// Complaint is a single human-readable rule violation.
type Complaint struct {
	Rule    RuleID `json:"rule"`
	Message string `json:"message"`
}

func (c Complaint) String() string {
	return c.Message
}

// Rule is an independent acceptance predicate over an image.
type Rule interface {
	// ID names the rule.
	ID() RuleID
	// Geometric reports whether the normalizer can repair a failure of this rule.
	Geometric() bool
	// Check inspects img (origin at 0,0) and returns a complaint when it fails.
	Check(img *image.NRGBA) (bool, *Complaint)
}

// DimensionRule passes when the image is exactly BadgeSize x BadgeSize.
type DimensionRule struct{}

func (DimensionRule) ID() RuleID      { return RuleDimension }
func (DimensionRule) Geometric() bool { return true }

// Check implements Rule.
func (DimensionRule) Check(img *image.NRGBA) (bool, *Complaint) {
	b := img.Bounds()
	if b.Dx() == BadgeSize && b.Dy() == BadgeSize {
		return true, nil
	}
	return false, &Complaint{Rule: RuleDimension, Message: DimensionComplaint}
}

// TransparencyRule passes when the alpha channel equals the circle mask of the
// image's own size exactly: opaque inside, transparent outside, nothing partial.
type TransparencyRule struct{}

func (TransparencyRule) ID() RuleID      { return RuleTransparency }
func (TransparencyRule) Geometric() bool { return true }

// Check implements Rule.
func (TransparencyRule) Check(img *image.NRGBA) (bool, *Complaint) {
	fail := &Complaint{Rule: RuleTransparency, Message: TransparencyComplaint}

	b := img.Bounds()
	mask, err := GenerateCircleMask(b.Dx(), b.Dy())
	if err != nil {
		// Only reachable for empty images, which Validate already rejects.
		log.Debugf("transparency rule: %v", err)
		return false, fail
	}

	x, y, ok := firstAlphaMismatch(img, mask)
	if ok {
		return true, nil
	}
	log.Debugf("transparency rule: alpha differs from mask at (%d,%d)", x, y)
	return false, fail
}

// firstAlphaMismatch compares img alpha with mask and returns the first
// differing pixel, or ok=true when they are identical.
func firstAlphaMismatch(img *image.NRGBA, mask *image.Alpha) (x, y int, ok bool) {
	b := img.Bounds()
	for y = 0; y < b.Dy(); y++ {
		pix := img.Pix[y*img.Stride : y*img.Stride+b.Dx()*4]
		mrow := mask.Pix[y*mask.Stride : y*mask.Stride+b.Dx()]
		for x = range mrow {
			if pix[x*4+3] != mrow[x] {
				return x, y, false
			}
		}
	}
	return 0, 0, true
}

// HappyColorRule passes when more than HappyRatio of the pixels fall inside
// the warm hue/saturation/value band. Alpha is ignored.
type HappyColorRule struct {
	tuning Tuning
}

// NewHappyColorRule creates the happy color rule from tuning values.
func NewHappyColorRule(t Tuning) *HappyColorRule {
	return &HappyColorRule{tuning: t}
}

func (*HappyColorRule) ID() RuleID      { return RuleHappyColor }
func (*HappyColorRule) Geometric() bool { return false }

// Check implements Rule.
func (r *HappyColorRule) Check(img *image.NRGBA) (bool, *Complaint) {
	ratio := r.HappyFraction(img)
	log.Debugf("happy color rule: %.2f%% happy pixels", ratio*100)
	if ratio > r.tuning.HappyRatio {
		return true, nil
	}
	return false, &Complaint{Rule: RuleHappyColor, Message: HappyColorComplaint}
}

// HappyFraction returns the share of pixels inside the happy band.
func (r *HappyColorRule) HappyFraction(img *image.NRGBA) float64 {
	b := img.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return 0
	}

	happy := 0
	for y := 0; y < b.Dy(); y++ {
		pix := img.Pix[y*img.Stride : y*img.Stride+b.Dx()*4]
		for i := 0; i < len(pix); i += 4 {
			if r.isHappy(rgbToHSV(pix[i], pix[i+1], pix[i+2], r.tuning.HueScale)) {
				happy++
			}
		}
	}
	return float64(happy) / float64(total)
}

func (r *HappyColorRule) isHappy(c hsv) bool {
	t := r.tuning
	return c.H >= t.HueMin && c.H <= t.HueMax &&
		c.S >= t.SaturationMin && c.S <= 255 &&
		c.V >= t.ValueMin && c.V <= 255
}

// DefaultRules returns the rules in evaluation order.
func DefaultRules(t Tuning) []Rule {
	return []Rule{
		DimensionRule{},
		TransparencyRule{},
		NewHappyColorRule(t),
	}
}
