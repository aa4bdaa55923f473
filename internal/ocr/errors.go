package ocr

import "fmt"

// UnreadableFileError indicates a corrupt or undecodable upload. It is fatal
// to the processing attempt.
type UnreadableFileError struct {
	Reason string
	Err    error
}

func (e *UnreadableFileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unreadable file: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("unreadable file: %s", e.Reason)
}

func (e *UnreadableFileError) Unwrap() error { return e.Err }

// RecognitionError indicates the recognition engine itself failed or timed
// out. It is reported to callers as an unsuccessful OCRResult, never thrown
// past the pipeline boundary.
type RecognitionError struct {
	Err error
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("text recognition failed: %v", e.Err)
}

func (e *RecognitionError) Unwrap() error { return e.Err }
