package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"net/http"

	"github.com/disintegration/imaging"
)

// DefaultMaxUploadBytes is the OCR.space free tier upload limit.
const DefaultMaxUploadBytes = 1 << 20

// ErrImageTooLarge is returned when an image cannot be brought under the
// requested size.
var ErrImageTooLarge = errors.New("image cannot be compressed below the upload limit")

const (
	startQuality = 92
	qualityStep  = 7
	minQuality   = 10
	minWidth     = 64
)

// Compress returns data unchanged when it already fits in maxBytes.
// Otherwise the image is re-encoded as JPEG with falling quality and, if
// that is not enough, downscaled by a quarter per step. The returned MIME
// type describes the returned bytes.
func Compress(data []byte, maxBytes int) ([]byte, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyImage
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if len(data) <= maxBytes {
		return data, http.DetectContentType(data), nil
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	var buf bytes.Buffer
	for q := startQuality; ; q -= qualityStep {
		if err := encodeJPEG(&buf, img, q); err != nil {
			return nil, "", err
		}
		if buf.Len() <= maxBytes {
			return buf.Bytes(), "image/jpeg", nil
		}
		if q <= minQuality {
			break
		}
	}

	for {
		w := img.Bounds().Dx() * 3 / 4
		if w < minWidth {
			return nil, "", ErrImageTooLarge
		}
		img = imaging.Resize(img, w, 0, imaging.Lanczos)
		if err := encodeJPEG(&buf, img, minQuality); err != nil {
			return nil, "", err
		}
		if buf.Len() <= maxBytes {
			return buf.Bytes(), "image/jpeg", nil
		}
	}
}

func encodeJPEG(buf *bytes.Buffer, img image.Image, quality int) error {
	buf.Reset()
	if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("encode jpeg: %w", err)
	}
	return nil
}
