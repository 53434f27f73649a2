package shell

import (
	"image"

	"github.com/stretchr/testify/mock"

	"github.com/dixieflatline76/HappyBadge/pkg/badge"
)

// MockEngine simulates the validation engine
type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Validate(img image.Image) (badge.Result, error) {
	args := m.Called(img)
	return args.Get(0).(badge.Result), args.Error(1)
}

func (m *MockEngine) FixAndRevalidate(img image.Image) (*image.NRGBA, badge.Result, error) {
	args := m.Called(img)
	fixed, _ := args.Get(0).(*image.NRGBA)
	return fixed, args.Get(1).(badge.Result), args.Error(2)
}
