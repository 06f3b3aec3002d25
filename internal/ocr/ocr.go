// Package ocr turns uploaded images into text. Three backends exist: the
// OCR.space HTTP API, a local Tesseract install and an OpenAI-compatible
// vision model.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hyperifyio/placepin/internal/llm"
)

// Backend names accepted by New.
const (
	BackendOCRSpace  = "ocrspace"
	BackendTesseract = "tesseract"
	BackendVision    = "vision"
)

var (
	// ErrEmptyImage is returned when an image has no bytes.
	ErrEmptyImage = errors.New("empty image")
	// ErrRequestFailed wraps transport and HTTP failures of a remote backend.
	ErrRequestFailed = errors.New("ocr request failed")
	// ErrTesseractUnavailable is returned by binaries built without the
	// tesseract build tag.
	ErrTesseractUnavailable = errors.New("tesseract support not compiled in (build with -tags tesseract)")
)

// Image is an uploaded picture. Name is informational only.
type Image struct {
	Data []byte
	Name string
}

// Recognizer extracts the text shown in an image.
type Recognizer interface {
	Recognize(ctx context.Context, img Image) (string, error)
}

// Config selects and parameterizes a backend.
type Config struct {
	Backend string
	// Language is the backend specific language code. Empty picks the
	// backend default.
	Language string

	SpaceAPIKey   string
	SpaceEndpoint string

	VisionModel string
}

// New builds the Recognizer named by cfg.Backend. doer carries requests for
// the OCR.space backend and chat serves the vision backend; each may be nil
// when its backend is not selected.
func New(cfg Config, doer Doer, chat llm.Client) (Recognizer, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendOCRSpace:
		if doer == nil {
			return nil, errors.New("ocrspace backend needs an http client")
		}
		return &SpaceClient{
			HTTP:     doer,
			APIKey:   cfg.SpaceAPIKey,
			Endpoint: cfg.SpaceEndpoint,
			Language: cfg.Language,
		}, nil
	case BackendTesseract:
		return &Tesseract{Languages: cfg.Language}, nil
	case BackendVision:
		if chat == nil {
			return nil, errors.New("vision backend needs a chat client")
		}
		return &VisionClient{Client: chat, Model: cfg.VisionModel}, nil
	default:
		return nil, fmt.Errorf("unknown ocr backend %q", cfg.Backend)
	}
}
