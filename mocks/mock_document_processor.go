package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"loandocs/internal/domain"
	"loandocs/internal/port"
)

// MockDocumentProcessor is a mock implementation of port.DocumentProcessor.
type MockDocumentProcessor struct {
	mock.Mock
}

func (m *MockDocumentProcessor) Process(ctx context.Context, input port.ProcessInput, progress port.ProgressFunc) *domain.OCRResult {
	args := m.Called(ctx, input, progress)
	return args.Get(0).(*domain.OCRResult)
}
