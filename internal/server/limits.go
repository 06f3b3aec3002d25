package server

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

const (
	// MaxJSONBodyBytes caps JSON request bodies (1MB).
	MaxJSONBodyBytes = 1 << 20
	// MaxTextBytes caps the text field of candidate and locate requests (200KB).
	MaxTextBytes = 200 * 1024
	// MaxURLBytes caps submitted post URLs.
	MaxURLBytes = 2048
	// MaxQueryRunes caps /search-place queries.
	MaxQueryRunes = 100
	// MaxUploadBytes caps multipart image uploads (10MB).
	MaxUploadBytes = 10 << 20
)

var (
	ErrBadRequest     = errors.New("malformed request")
	ErrMissingURL     = errors.New("url is required")
	ErrMissingText    = errors.New("text or url is required")
	ErrAmbiguousInput = errors.New("only one of text or url may be given")
	ErrMissingQuery   = errors.New("query is required")
	ErrNoImage        = errors.New("image file is required")
	ErrTextTooLarge   = errors.New("text exceeds maximum size")
	ErrURLTooLong     = errors.New("url exceeds maximum length")
	ErrQueryTooLong   = errors.New("query exceeds maximum length")
	ErrUploadTooLarge = errors.New("upload exceeds maximum size")
)

// ValidateText checks the size of free text input.
func ValidateText(text string) error {
	if len(text) > MaxTextBytes {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrTextTooLarge, len(text), MaxTextBytes)
	}
	return nil
}

// ValidateURL checks a submitted post URL before it is scraped.
func ValidateURL(u string) error {
	if u == "" {
		return ErrMissingURL
	}
	if len(u) > MaxURLBytes {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrURLTooLong, len(u), MaxURLBytes)
	}
	return nil
}

// ValidateQuery checks a place search query.
func ValidateQuery(q string) error {
	if q == "" {
		return ErrMissingQuery
	}
	if n := utf8.RuneCountInString(q); n > MaxQueryRunes {
		return fmt.Errorf("%w: %d characters (max %d)", ErrQueryTooLong, n, MaxQueryRunes)
	}
	return nil
}
