package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hyperifyio/placepin/internal/candidate"
	"github.com/hyperifyio/placepin/internal/ocr"
)

// Defaults applied before file, env and flag overlays.
const (
	DefaultListenAddr      = ":3000"
	DefaultCacheDir        = ".placepin-cache"
	DefaultHTTPTimeout     = 15 * time.Second
	DefaultHTTPMaxAttempts = 2
	DefaultCacheMaxAge     = 7 * 24 * time.Hour
)

// Config holds runtime configuration for the application.
type Config struct {
	// Server
	ListenAddr string
	StaticDir  string

	// Naver local search
	NaverClientID     string
	NaverClientSecret string
	NaverBaseURL      string

	// OCR
	OCRBackend       string
	OCRLanguage      string
	OCRSpaceAPIKey   string
	OCRSpaceEndpoint string

	// Vision OCR over an OpenAI-compatible API
	VisionBaseURL string
	VisionModel   string
	VisionAPIKey  string

	// Candidate extraction. A nil ExcludedPlaces keeps the built-in list.
	CandidateMode  string
	ExcludedPlaces []string
	MaxInputRunes  int

	// Outbound HTTP
	UserAgent          string
	HTTPTimeout        time.Duration
	HTTPMaxAttempts    int
	AllowPrivateHosts  bool
	GeocodeConcurrency int

	// Caching
	CacheDir         string
	CacheMaxAge      time.Duration
	CacheClear       bool
	CacheStrictPerms bool
	NoCache          bool

	Verbose bool
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		ListenAddr:      DefaultListenAddr,
		OCRBackend:      ocr.BackendOCRSpace,
		CandidateMode:   string(candidate.ModePlace),
		MaxInputRunes:   candidate.DefaultMaxInputRunes,
		HTTPTimeout:     DefaultHTTPTimeout,
		HTTPMaxAttempts: DefaultHTTPMaxAttempts,
		CacheDir:        DefaultCacheDir,
		CacheMaxAge:     DefaultCacheMaxAge,
	}
}

// HasGeocoder reports whether Naver credentials are configured.
func (c Config) HasGeocoder() bool {
	return strings.TrimSpace(c.NaverClientID) != "" && strings.TrimSpace(c.NaverClientSecret) != ""
}

// ValidateConfig performs minimal validation of the assembled configuration.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return errors.New("config: listen address is required")
	}
	if _, err := candidate.ParseMode(cfg.CandidateMode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if (strings.TrimSpace(cfg.NaverClientID) == "") != (strings.TrimSpace(cfg.NaverClientSecret) == "") {
		return errors.New("config: naver client id and secret must be set together (NAVER_CLIENT_ID, NAVER_CLIENT_SECRET)")
	}
	switch strings.ToLower(strings.TrimSpace(cfg.OCRBackend)) {
	case "", ocr.BackendOCRSpace, ocr.BackendTesseract:
	case ocr.BackendVision:
		if strings.TrimSpace(cfg.VisionModel) == "" {
			return errors.New("config: vision.model is required for the vision ocr backend (or set VISION_MODEL)")
		}
	default:
		return fmt.Errorf("config: unknown ocr backend %q", cfg.OCRBackend)
	}
	if cfg.MaxInputRunes < 0 || cfg.HTTPMaxAttempts < 0 || cfg.GeocodeConcurrency < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	if cfg.HTTPTimeout < 0 || cfg.CacheMaxAge < 0 {
		return errors.New("config: negative durations are not allowed")
	}
	return nil
}
