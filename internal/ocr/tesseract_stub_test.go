//go:build !tesseract

package ocr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTesseract_Unavailable(t *testing.T) {
	_, err := (&Tesseract{}).Recognize(context.Background(), Image{Data: []byte{1}})
	assert.ErrorIs(t, err, ErrTesseractUnavailable)
}
