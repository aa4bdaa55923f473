// Package tesseract adapts the gosseract engine to the text recognition port.
package tesseract

import (
	"context"
	"math"

	"github.com/otiai10/gosseract/v2"

	"loandocs/internal/ocr"
	"loandocs/internal/port"
)

// Recognizer wraps a Tesseract client per recognition call. gosseract clients
// are not safe for concurrent use, so each Recognize builds a fresh one.
type Recognizer struct {
	language      string
	clientFactory func() *gosseract.Client
}

// NewRecognizer builds a recognizer for the configured language ("eng" plus
// optional scripts like "eng+hin").
func NewRecognizer(language string) *Recognizer {
	return &Recognizer{
		language:      language,
		clientFactory: gosseract.NewClient,
	}
}

// Recognize runs Tesseract over a PNG buffer. Progress is reported at staged
// checkpoints (the engine exposes no incremental hook) and is monotonic from
// 0 to 100 across the recognition phase.
func (r *Recognizer) Recognize(ctx context.Context, png []byte, progress port.ProgressFunc) (*port.RecognizeOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ocr.RecognitionError{Err: err}
	}
	report(progress, 0)

	client := r.clientFactory()
	defer client.Close()

	if err := client.SetImageFromBytes(png); err != nil {
		return nil, &ocr.RecognitionError{Err: err}
	}
	if r.language != "" {
		if err := client.SetLanguage(r.language); err != nil {
			return nil, &ocr.RecognitionError{Err: err}
		}
	}
	report(progress, 25)

	if err := ctx.Err(); err != nil {
		return nil, &ocr.RecognitionError{Err: err}
	}
	text, err := client.Text()
	if err != nil {
		return nil, &ocr.RecognitionError{Err: err}
	}
	report(progress, 90)

	confidence := meanWordConfidence(client)
	report(progress, 100)

	return &port.RecognizeOutput{Text: text, Confidence: confidence}, nil
}

// meanWordConfidence averages per-word confidences from the engine's word
// boxes, clamped into [0, 100]. A page with no recognizable words scores 0.
func meanWordConfidence(client *gosseract.Client) int {
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0
	}
	var sum float64
	for _, b := range boxes {
		sum += b.Confidence
	}
	mean := int(math.Round(sum / float64(len(boxes))))
	if mean < 0 {
		return 0
	}
	if mean > 100 {
		return 100
	}
	return mean
}

func report(progress port.ProgressFunc, percent int) {
	if progress != nil {
		progress(percent)
	}
}
