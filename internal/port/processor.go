package port

import (
	"context"

	"loandocs/internal/domain"
)

// ProgressFunc receives recognition progress as monotonically non-decreasing
// percentages in [0,100]. It is only invoked during the recognition phase,
// never during preprocessing.
type ProgressFunc func(percent int)

// RecognizeOutput is the raw result of one text recognition run.
type RecognizeOutput struct {
	Text       string
	Confidence int // engine-reported, 0-100; legitimately 0 for unreadable scans
}

// TextRecognizer abstracts the OCR engine. Implementations receive a PNG-encoded
// raster buffer produced by the preprocessor.
type TextRecognizer interface {
	Recognize(ctx context.Context, png []byte, progress ProgressFunc) (*RecognizeOutput, error)
}

// ProcessInput carries the data needed for one document processing attempt.
type ProcessInput struct {
	FileBytes   []byte
	ContentType string
	TypeHint    domain.DocumentType // DocTypeAuto lets the classifier decide
}

// DocumentProcessor runs the full rasterize-recognize-classify-extract pipeline.
// Failures are reported inside the OCRResult (Success=false), never as an error
// escaping the pipeline boundary.
type DocumentProcessor interface {
	Process(ctx context.Context, input ProcessInput, progress ProgressFunc) *domain.OCRResult
}
