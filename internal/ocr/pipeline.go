package ocr

import (
	"context"

	"loandocs/internal/domain"
	"loandocs/internal/extract"
	"loandocs/internal/port"
)

// Pipeline chains rasterization, text recognition, classification and field
// extraction into one document processing attempt.
type Pipeline struct {
	recognizer port.TextRecognizer
	pdfDPI     int
}

// NewPipeline builds a processor around a recognition engine. pdfDPI controls
// the render resolution for PDF uploads.
func NewPipeline(recognizer port.TextRecognizer, pdfDPI int) *Pipeline {
	return &Pipeline{recognizer: recognizer, pdfDPI: pdfDPI}
}

// Process runs the full pipeline. Any failure is reported inside the result
// with Success=false; the method never returns an error to the caller.
func (p *Pipeline) Process(ctx context.Context, input port.ProcessInput, progress port.ProgressFunc) *domain.OCRResult {
	img, err := Rasterize(input.FileBytes, input.ContentType, p.pdfDPI)
	if err != nil {
		return failedResult(err)
	}
	png, err := EncodePNG(img)
	if err != nil {
		return failedResult(err)
	}

	out, err := p.recognizer.Recognize(ctx, png, progress)
	if err != nil {
		return failedResult(err)
	}

	docType := input.TypeHint
	if docType == "" || docType == domain.DocTypeAuto {
		docType = extract.DetectType(out.Text)
	}

	return &domain.OCRResult{
		Success:      true,
		RawText:      out.Text,
		Confidence:   clampConfidence(out.Confidence),
		ParsedData:   extract.Extract(docType, out.Text),
		DetectedType: docType,
	}
}

func failedResult(err error) *domain.OCRResult {
	return &domain.OCRResult{Success: false, Error: err.Error()}
}

func clampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
