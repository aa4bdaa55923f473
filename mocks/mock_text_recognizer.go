package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"loandocs/internal/port"
)

// MockTextRecognizer is a mock implementation of port.TextRecognizer.
type MockTextRecognizer struct {
	mock.Mock
}

func (m *MockTextRecognizer) Recognize(ctx context.Context, png []byte, progress port.ProgressFunc) (*port.RecognizeOutput, error) {
	args := m.Called(ctx, png, progress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.RecognizeOutput), args.Error(1)
}
