package shell

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dixieflatline76/HappyBadge/pkg/badge"
)

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	gold  = color.NRGBA{R: 255, G: 215, B: 0, A: 255}
)

func createTestImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	data, err := badge.EncodeImage(img, badge.FormatPNG, 95)
	require.NoError(t, err)
	return data
}

var geometryFailed = badge.Result{
	Complaints: []badge.Complaint{
		{Rule: badge.RuleDimension, Message: badge.DimensionComplaint},
	},
	OffersAutofix: true,
}

func TestNewSession(t *testing.T) {
	s := NewSession(new(MockEngine))
	assert.Equal(t, UploadView, s.View())
	assert.Nil(t, s.Image())
	assert.False(t, s.CanHotfix())

	_, err := uuid.Parse(s.ID)
	assert.NoError(t, err)
	assert.NotEqual(t, s.ID, NewSession(new(MockEngine)).ID)
}

func TestSession_UploadAndHotfix_Mocked(t *testing.T) {
	engine := new(MockEngine)
	fixed := createTestImage(badge.BadgeSize, badge.BadgeSize, gold)

	engine.On("Validate", mock.Anything).Return(geometryFailed, nil).Once()
	engine.On("FixAndRevalidate", mock.Anything).Return(fixed, badge.Result{}, nil).Once()

	s := NewSession(engine, WithThumbnail(false))
	require.NoError(t, s.Upload(pngBytes(t, createTestImage(20, 20, gold))))

	assert.Equal(t, BadgeView, s.View())
	assert.Equal(t, geometryFailed, s.Result())
	assert.True(t, s.CanHotfix())

	require.NoError(t, s.Hotfix())
	assert.Same(t, fixed, s.Image())
	assert.True(t, s.Result().Passed())
	assert.False(t, s.CanHotfix())

	engine.AssertExpectations(t)
}

func TestSession_UploadDecodeFailure(t *testing.T) {
	engine := new(MockEngine)
	s := NewSession(engine)

	err := s.Upload([]byte("not an image"))
	assert.True(t, badge.IsKind(err, badge.KindDecodeFailure))
	assert.Equal(t, UploadView, s.View())
	engine.AssertNotCalled(t, "Validate", mock.Anything)
}

func TestSession_UploadEngineError(t *testing.T) {
	engine := new(MockEngine)
	engine.On("Validate", mock.Anything).Return(badge.Result{}, errors.New("boom"))

	s := NewSession(engine)
	err := s.Upload(pngBytes(t, createTestImage(8, 8, gold)))
	assert.Error(t, err)
	assert.Equal(t, UploadView, s.View())
}

func TestSession_InvalidTransitions(t *testing.T) {
	engine := new(MockEngine)
	engine.On("Validate", mock.Anything).Return(badge.Result{}, nil)

	s := NewSession(engine)
	assert.ErrorIs(t, s.Hotfix(), ErrInvalidTransition)

	data := pngBytes(t, createTestImage(8, 8, gold))
	require.NoError(t, s.Upload(data))

	// Nothing to fix, and a second upload needs StartOver first.
	assert.ErrorIs(t, s.Hotfix(), ErrInvalidTransition)
	assert.ErrorIs(t, s.Upload(data), ErrInvalidTransition)
	engine.AssertNotCalled(t, "FixAndRevalidate", mock.Anything)

	s.StartOver()
	assert.Equal(t, UploadView, s.View())
	assert.Nil(t, s.Image())
	assert.NoError(t, s.Upload(data))
}

func TestSession_HotfixEngineError(t *testing.T) {
	engine := new(MockEngine)
	engine.On("Validate", mock.Anything).Return(geometryFailed, nil)
	engine.On("FixAndRevalidate", mock.Anything).Return(nil, badge.Result{}, errors.New("boom"))

	s := NewSession(engine)
	require.NoError(t, s.Upload(pngBytes(t, createTestImage(8, 8, gold))))
	original := s.Image()

	assert.Error(t, s.Hotfix())
	assert.Same(t, original, s.Image())
	assert.True(t, s.CanHotfix())
}

func TestSession_Thumbnail(t *testing.T) {
	v := badge.NewValidator(badge.DefaultTuning())

	s := NewSession(v, WithThumbnail(true))
	require.NoError(t, s.Upload(pngBytes(t, createTestImage(1024, 768, gold))))
	assert.Equal(t, image.Rect(0, 0, 512, 384), s.Image().Bounds())

	// Small uploads are never enlarged.
	s.StartOver()
	require.NoError(t, s.Upload(pngBytes(t, createTestImage(100, 50, gold))))
	assert.Equal(t, image.Rect(0, 0, 100, 50), s.Image().Bounds())
}

func TestSession_WhiteSquareFlow(t *testing.T) {
	s := NewSession(badge.NewValidator(badge.DefaultTuning()))
	require.NoError(t, s.Upload(pngBytes(t, createTestImage(256, 256, white))))

	assert.Equal(t, []string{
		badge.DimensionComplaint,
		badge.TransparencyComplaint,
		badge.HappyColorComplaint,
	}, s.Result().Messages())
	assert.True(t, s.CanHotfix())

	require.NoError(t, s.Hotfix())
	assert.Equal(t, image.Rect(0, 0, badge.BadgeSize, badge.BadgeSize), s.Image().Bounds())
	assert.Equal(t, []string{badge.HappyColorComplaint}, s.Result().Messages())
	assert.False(t, s.CanHotfix())
	assert.ErrorIs(t, s.Hotfix(), ErrInvalidTransition)
}

func TestView_String(t *testing.T) {
	assert.Equal(t, "upload", UploadView.String())
	assert.Equal(t, "badge", BadgeView.String())
	assert.Equal(t, "view(7)", View(7).String())
}
