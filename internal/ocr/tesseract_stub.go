//go:build !tesseract

package ocr

import "context"

// Tesseract is unavailable in this build; Recognize always fails with
// ErrTesseractUnavailable.
type Tesseract struct {
	Languages string
}

func (t *Tesseract) Recognize(ctx context.Context, img Image) (string, error) {
	return "", ErrTesseractUnavailable
}
