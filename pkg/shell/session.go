// Package shell holds the presentation-side state of HappyBadge: which view is
// showing, the current image and its validation, and the report card rendering.
// It contains no widgets; a GUI or CLI drives it.
package shell

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/dixieflatline76/HappyBadge/pkg/badge"
	"github.com/dixieflatline76/HappyBadge/util/log"
)

// View is the page the shell is showing.
type View int

const (
	// UploadView is the welcome page with the upload button.
	UploadView View = iota
	// BadgeView shows the current image, its complaints and, when offered, the hotfix button.
	BadgeView
)

func (v View) String() string {
	switch v {
	case UploadView:
		return "upload"
	case BadgeView:
		return "badge"
	default:
		return fmt.Sprintf("view(%d)", int(v))
	}
}

// ErrInvalidTransition is returned when an action is not allowed in the current view.
var ErrInvalidTransition = errors.New("invalid view transition")

// Engine is the validation engine the session drives.
type Engine interface {
	Validate(img image.Image) (badge.Result, error)
	FixAndRevalidate(img image.Image) (*image.NRGBA, badge.Result, error)
}

// Decoder turns uploaded bytes into an image.
type Decoder func(data []byte) (image.Image, string, error)

// Session tracks one user's walk through the upload and badge views.
// It is not safe for concurrent use.
type Session struct {
	ID string

	engine    Engine
	decode    Decoder
	thumbnail bool
	resampler imaging.ResampleFilter

	view    View
	current image.Image
	result  badge.Result
}

// Option configures a Session.
type Option func(*Session)

// WithThumbnail shrinks uploads to fit the badge size before validation.
func WithThumbnail(enabled bool) Option {
	return func(s *Session) {
		s.thumbnail = enabled
	}
}

// WithDecoder replaces badge.DecodeImage.
func WithDecoder(d Decoder) Option {
	return func(s *Session) {
		s.decode = d
	}
}

// NewSession creates a session in UploadView.
func NewSession(engine Engine, opts ...Option) *Session {
	s := &Session{
		ID:        uuid.New().String(),
		engine:    engine,
		decode:    badge.DecodeImage,
		resampler: imaging.Lanczos,
		view:      UploadView,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// View returns the current view.
func (s *Session) View() View { return s.view }

// Image returns the image being shown, nil in UploadView.
func (s *Session) Image() image.Image { return s.current }

// Result returns the validation of the image being shown.
func (s *Session) Result() badge.Result { return s.result }

// CanHotfix reports whether the hotfix button should be visible.
func (s *Session) CanHotfix() bool {
	return s.view == BadgeView && s.result.OffersAutofix
}

// Upload decodes data, validates it and switches to BadgeView. A decode
// failure leaves the session in UploadView.
func (s *Session) Upload(data []byte) error {
	if s.view != UploadView {
		return fmt.Errorf("%w: upload from %s view", ErrInvalidTransition, s.view)
	}

	img, format, err := s.decode(data)
	if err != nil {
		log.Printf("session %s: upload rejected: %v", s.ID, err)
		return err
	}
	log.Debugf("session %s: decoded %s %v", s.ID, format, img.Bounds())

	if s.thumbnail {
		// Fit never enlarges.
		img = imaging.Fit(img, badge.BadgeSize, badge.BadgeSize, s.resampler)
	}

	res, err := s.engine.Validate(img)
	if err != nil {
		return fmt.Errorf("validating upload: %w", err)
	}

	s.current = img
	s.result = res
	s.view = BadgeView
	return nil
}

// Hotfix replaces the current image with the normalized one and its new result.
func (s *Session) Hotfix() error {
	if !s.CanHotfix() {
		return fmt.Errorf("%w: hotfix not offered in %s view", ErrInvalidTransition, s.view)
	}

	fixed, res, err := s.engine.FixAndRevalidate(s.current)
	if err != nil {
		return fmt.Errorf("fixing image: %w", err)
	}
	log.Debugf("session %s: hotfix applied, %d complaints left", s.ID, len(res.Complaints))

	s.current = fixed
	s.result = res
	return nil
}

// StartOver drops the current image and returns to UploadView.
func (s *Session) StartOver() {
	s.current = nil
	s.result = badge.Result{}
	s.view = UploadView
}
