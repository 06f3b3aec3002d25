package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/placepin/internal/fetch"
)

// DefaultSpaceEndpoint is the public OCR.space parse endpoint.
const DefaultSpaceEndpoint = "https://api.ocr.space/parse/image"

// Doer sends API requests. *fetch.Client satisfies it.
type Doer interface {
	Do(ctx context.Context, build fetch.RequestBuilder) ([]byte, error)
}

// ProcessingError is reported by OCR.space when the upload was accepted but
// could not be read.
type ProcessingError struct {
	Message string
}

func (e *ProcessingError) Error() string {
	if e.Message == "" {
		return "ocr processing failed"
	}
	return "ocr processing failed: " + e.Message
}

// SpaceClient calls the OCR.space parse API with engine 2, which handles
// Korean text far better than engine 1.
type SpaceClient struct {
	HTTP     Doer
	APIKey   string
	Endpoint string
	// Language defaults to kor.
	Language string
	// MaxBytes defaults to DefaultMaxUploadBytes.
	MaxBytes int
}

type spaceResponse struct {
	ParsedResults []struct {
		ParsedText   string `json:"ParsedText"`
		ErrorMessage string `json:"ErrorMessage"`
	} `json:"ParsedResults"`
	OCRExitCode           int             `json:"OCRExitCode"`
	IsErroredOnProcessing bool            `json:"IsErroredOnProcessing"`
	ErrorMessage          json.RawMessage `json:"ErrorMessage"`
}

// Recognize uploads img and returns the text of the first parsed result.
func (c *SpaceClient) Recognize(ctx context.Context, img Image) (string, error) {
	data, mime, err := Compress(img.Data, c.MaxBytes)
	if err != nil {
		return "", err
	}
	log.Debug().Int("bytes", len(data)).Str("mime", mime).Str("name", img.Name).Msg("ocr.space upload")
	form, contentType, err := c.buildForm(mime, data)
	if err != nil {
		return "", err
	}
	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = DefaultSpaceEndpoint
	}
	body, err := c.HTTP.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(form))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("apikey", c.APIKey)
		return req, nil
	})
	if err != nil {
		return "", fmt.Errorf("ocr.space request: %w: %w", ErrRequestFailed, err)
	}

	var res spaceResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return "", fmt.Errorf("decode ocr.space response: %w", err)
	}
	if res.IsErroredOnProcessing {
		return "", &ProcessingError{Message: errorMessage(res.ErrorMessage)}
	}
	if len(res.ParsedResults) == 0 {
		return "", nil
	}
	return res.ParsedResults[0].ParsedText, nil
}

func (c *SpaceClient) buildForm(mime string, data []byte) ([]byte, string, error) {
	lang := c.Language
	if lang == "" {
		lang = "kor"
	}
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := [][2]string{
		{"base64Image", "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)},
		{"language", lang},
		{"isOverlayRequired", "false"},
		{"OCREngine", "2"},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("write form field %s: %w", f[0], err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// errorMessage flattens ErrorMessage, which the API sends either as a
// string or as a list of strings.
func errorMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, "; ")
	}
	return ""
}
