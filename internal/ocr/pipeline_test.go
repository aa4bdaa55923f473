package ocr_test

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"loandocs/internal/domain"
	"loandocs/internal/ocr"
	"loandocs/internal/port"
	"loandocs/mocks"
)

func pipelineFixture(t *testing.T) port.ProcessInput {
	t.Helper()
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	src.SetRGBA(2, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	return port.ProcessInput{
		FileBytes:   encodePNGFixture(t, src),
		ContentType: "image/png",
		TypeHint:    domain.DocTypeAuto,
	}
}

func TestPipeline_Process_AutoDetect(t *testing.T) {
	recognizer := new(mocks.MockTextRecognizer)
	pipeline := ocr.NewPipeline(recognizer, 216)

	text := "Name: Rajesh Kumar\nAadhaar No: 1234 5678 9012"
	recognizer.On("Recognize", mock.Anything, mock.Anything, mock.Anything).
		Return(&port.RecognizeOutput{Text: text, Confidence: 87}, nil)

	result := pipeline.Process(context.Background(), pipelineFixture(t), nil)

	require.True(t, result.Success)
	assert.Empty(t, result.Error)
	assert.Equal(t, text, result.RawText)
	assert.Equal(t, 87, result.Confidence)
	assert.Equal(t, domain.DocTypeAadhaar, result.DetectedType)

	require.NotNil(t, result.ParsedData)
	require.NotNil(t, result.ParsedData.Aadhaar)
	require.NotNil(t, result.ParsedData.Aadhaar.AadhaarNumber)
	assert.Equal(t, "123456789012", *result.ParsedData.Aadhaar.AadhaarNumber)

	recognizer.AssertExpectations(t)
}

func TestPipeline_Process_TypeHintSkipsDetection(t *testing.T) {
	recognizer := new(mocks.MockTextRecognizer)
	pipeline := ocr.NewPipeline(recognizer, 216)

	// Text full of aadhaar signals, but the hint pins the type.
	text := "AADHAAR 1234 5678 9012\nClosing Balance: 1,50,000.00"
	recognizer.On("Recognize", mock.Anything, mock.Anything, mock.Anything).
		Return(&port.RecognizeOutput{Text: text, Confidence: 70}, nil)

	input := pipelineFixture(t)
	input.TypeHint = domain.DocTypeBankStatement

	result := pipeline.Process(context.Background(), input, nil)

	require.True(t, result.Success)
	assert.Equal(t, domain.DocTypeBankStatement, result.DetectedType)
	require.NotNil(t, result.ParsedData)
	assert.NotNil(t, result.ParsedData.BankStatement)
	assert.Nil(t, result.ParsedData.Aadhaar)
}

func TestPipeline_Process_RecognizerFailure(t *testing.T) {
	recognizer := new(mocks.MockTextRecognizer)
	pipeline := ocr.NewPipeline(recognizer, 216)

	recognizer.On("Recognize", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &ocr.RecognitionError{Err: context.DeadlineExceeded})

	result := pipeline.Process(context.Background(), pipelineFixture(t), nil)

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	assert.Empty(t, result.RawText)
	assert.Nil(t, result.ParsedData)
}

func TestPipeline_Process_UnreadableFile(t *testing.T) {
	recognizer := new(mocks.MockTextRecognizer)
	pipeline := ocr.NewPipeline(recognizer, 216)

	input := port.ProcessInput{
		FileBytes:   []byte("garbage"),
		ContentType: "image/png",
		TypeHint:    domain.DocTypeAuto,
	}
	result := pipeline.Process(context.Background(), input, nil)

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	recognizer.AssertNotCalled(t, "Recognize", mock.Anything, mock.Anything, mock.Anything)
}

func TestPipeline_Process_ConfidenceClamped(t *testing.T) {
	tests := []struct {
		name string
		raw  int
		want int
	}{
		{"negative clamps to zero", -5, 0},
		{"over 100 clamps to 100", 140, 100},
		{"in range passes through", 55, 55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recognizer := new(mocks.MockTextRecognizer)
			pipeline := ocr.NewPipeline(recognizer, 216)
			recognizer.On("Recognize", mock.Anything, mock.Anything, mock.Anything).
				Return(&port.RecognizeOutput{Text: "PAY SLIP", Confidence: tt.raw}, nil)

			result := pipeline.Process(context.Background(), pipelineFixture(t), nil)
			require.True(t, result.Success)
			assert.Equal(t, tt.want, result.Confidence)
		})
	}
}
