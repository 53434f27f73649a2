package shell

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/dixieflatline76/HappyBadge/pkg/badge"
)

// Report card colours, taken from the original badge pages.
var (
	BackgroundColor = color.NRGBA{R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF} // #FFD700
	ComplaintColor  = color.NRGBA{R: 0xE0, G: 0x10, B: 0x10, A: 0xFF}
	PerfectColor    = color.NRGBA{R: 100, G: 50, B: 0, A: 0xFF} // Dark brown
)

const (
	reportMargin  = 20
	reportGap     = 16 // Between the badge and the first text line
	reportLeading = 18 // Baseline to baseline
)

// RenderReport draws img (shrunk to fit the badge size) on a gold card with the
// complaints of res, one per line, underneath. Transparent badge pixels show
// the card colour. A passing result prints PerfectText instead.
func RenderReport(img image.Image, res badge.Result) *image.NRGBA {
	face := basicfont.Face7x13

	lines := res.Messages()
	textColor := color.Color(ComplaintColor)
	if res.Passed() {
		lines = []string{badge.PerfectText}
		textColor = PerfectColor
	}

	width := badge.BadgeSize
	for _, line := range lines {
		if w := font.MeasureString(face, line).Ceil(); w > width {
			width = w
		}
	}
	width += 2 * reportMargin
	height := reportMargin + badge.BadgeSize + reportGap + len(lines)*reportLeading + reportMargin

	card := imaging.New(width, height, BackgroundColor)

	if img != nil && !img.Bounds().Empty() {
		thumb := imaging.Fit(img, badge.BadgeSize, badge.BadgeSize, imaging.Lanczos)
		tb := thumb.Bounds()
		pos := image.Pt(
			(width-tb.Dx())/2,
			reportMargin+(badge.BadgeSize-tb.Dy())/2,
		)
		card = imaging.Overlay(card, thumb, pos, 1.0)
	}

	d := &font.Drawer{
		Dst:  card,
		Src:  image.NewUniform(textColor),
		Face: face,
	}
	baseline := reportMargin + badge.BadgeSize + reportGap + face.Ascent
	for i, line := range lines {
		lineWidth := d.MeasureString(line).Ceil()
		d.Dot = fixed.Point26_6{
			X: fixed.I((width - lineWidth) / 2),
			Y: fixed.I(baseline + i*reportLeading),
		}
		d.DrawString(line)
	}
	return card
}
