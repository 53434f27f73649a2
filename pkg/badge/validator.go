package badge

import (
	"image"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/dixieflatline76/HappyBadge/util/log"
)

// PerfectText is the label shown when an image passes every rule.
const PerfectText = "Perfect!"

// Result is the outcome of validating one image.
type Result struct {
	// Complaints holds one entry per failed rule, in rule evaluation order.
	Complaints []Complaint `json:"complaints"`
	// OffersAutofix is true when a geometric rule failed, i.e. Autofix would change the verdict.
	OffersAutofix bool `json:"offers_autofix"`
}

// Passed reports whether no rule complained.
func (r Result) Passed() bool {
	return len(r.Complaints) == 0
}

// Messages returns the complaint messages in order.
func (r Result) Messages() []string {
	msgs := make([]string, len(r.Complaints))
	for i, c := range r.Complaints {
		msgs[i] = c.Message
	}
	return msgs
}

// Text joins the complaints with newlines, or returns PerfectText.
func (r Result) Text() string {
	if r.Passed() {
		return PerfectText
	}
	return strings.Join(r.Messages(), "\n")
}

// Has reports whether the given rule complained.
func (r Result) Has(id RuleID) bool {
	for _, c := range r.Complaints {
		if c.Rule == id {
			return true
		}
	}
	return false
}

// Validator runs the acceptance rules and the normalizer.
// It holds no per-image state and is safe for concurrent use.
type Validator struct {
	rules      []Rule
	normalizer *Normalizer
}

// NewValidator creates a validator with the default rules in their fixed order.
func NewValidator(t Tuning, opts ...NormalizerOption) *Validator {
	return &Validator{
		rules:      DefaultRules(t),
		normalizer: NewNormalizer(t, opts...),
	}
}

// Validate checks img against every rule. The input is never modified.
func (v *Validator) Validate(img image.Image) (Result, error) {
	if err := checkImage("validate", img); err != nil {
		return Result{}, err
	}
	src := toNRGBA(img)

	var res Result
	for _, rule := range v.rules {
		passed, complaint := rule.Check(src)
		log.Debugf("rule %s passed=%v", rule.ID(), passed)
		if passed {
			continue
		}
		if complaint != nil {
			res.Complaints = append(res.Complaints, *complaint)
		}
		if rule.Geometric() {
			res.OffersAutofix = true
		}
	}
	return res, nil
}

// FixAndRevalidate normalizes img and validates the result. The caller should
// replace its image with the returned one.
func (v *Validator) FixAndRevalidate(img image.Image) (*image.NRGBA, Result, error) {
	fixed, err := v.normalizer.Autofix(img)
	if err != nil {
		return nil, Result{}, err
	}
	res, err := v.Validate(fixed)
	if err != nil {
		return nil, Result{}, err
	}
	return fixed, res, nil
}

// Normalizer returns the normalizer used by FixAndRevalidate.
func (v *Validator) Normalizer() *Normalizer {
	return v.normalizer
}

// checkImage rejects nil and empty images.
func checkImage(op string, img image.Image) error {
	if img == nil {
		return contractViolation(op, "nil image")
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return contractViolation(op, "empty image %v", b)
	}
	return nil
}

// toNRGBA returns img as non-premultiplied RGBA with a zero origin. An
// *image.NRGBA that already has one is returned as is; rules only read it.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}
