package ocr

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/placepin/internal/llm"
)

// DefaultVisionPrompt asks for a verbatim transcription.
const DefaultVisionPrompt = "Transcribe every piece of text visible in this image exactly as written, " +
	"keeping Korean text and line breaks. Reply with the text only and no commentary."

// visionMaxBytes keeps data URIs well under common request size limits.
const visionMaxBytes = 4 << 20

// VisionClient transcribes images with an OpenAI-compatible vision model.
type VisionClient struct {
	Client llm.Client
	Model  string
	// Prompt defaults to DefaultVisionPrompt.
	Prompt    string
	MaxTokens int
}

// Recognize sends img as a data URI alongside the transcription prompt.
func (v *VisionClient) Recognize(ctx context.Context, img Image) (string, error) {
	data, mime, err := Compress(img.Data, visionMaxBytes)
	if err != nil {
		return "", err
	}
	if v.Model == "" {
		return "", errors.New("vision model not configured")
	}
	prompt := v.Prompt
	if prompt == "" {
		prompt = DefaultVisionPrompt
	}
	req := openai.ChatCompletionRequest{
		Model:       v.Model,
		Temperature: 0,
		MaxTokens:   v.MaxTokens,
		Messages: []openai.ChatCompletionMessage{{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: prompt},
				{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{
					URL:    "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
					Detail: openai.ImageURLDetailHigh,
				}},
			},
		}},
	}
	resp, err := v.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("vision completion: %w: %w", ErrRequestFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("vision completion: no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
