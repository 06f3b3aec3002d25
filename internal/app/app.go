// Package app assembles configuration and wires the extraction pipeline,
// its collaborators and the HTTP server.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/placepin/internal/cache"
	"github.com/hyperifyio/placepin/internal/candidate"
	"github.com/hyperifyio/placepin/internal/fetch"
	"github.com/hyperifyio/placepin/internal/geocode"
	"github.com/hyperifyio/placepin/internal/llm"
	"github.com/hyperifyio/placepin/internal/locate"
	"github.com/hyperifyio/placepin/internal/ocr"
	"github.com/hyperifyio/placepin/internal/scrape"
	"github.com/hyperifyio/placepin/internal/server"
)

// App holds the wired services for one process.
type App struct {
	cfg     Config
	mode    candidate.Mode
	service *locate.Service
}

// LoadConfig builds a Config from defaults, an optional config file and the
// environment, in increasing precedence. Callers apply flags afterwards.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		fc, err := LoadConfigFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
		ApplyFileConfig(&cfg, fc)
	}
	ApplyEnvOverrides(&cfg)
	return cfg, nil
}

// New validates cfg and wires every collaborator. A missing Naver key
// leaves geocoding disabled rather than failing.
func New(cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	mode, _ := candidate.ParseMode(cfg.CandidateMode)

	httpClient := newHTTPClient(cfg.HTTPTimeout, false)
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = scrape.DefaultUserAgent
	}

	var httpCache *cache.HTTPCache
	var lookupCache *cache.LookupCache
	if cfg.CacheDir != "" && !cfg.NoCache {
		if cfg.CacheClear {
			if err := cache.ClearDir(cfg.CacheDir); err != nil {
				log.Warn().Err(err).Str("dir", cfg.CacheDir).Msg("cache clear failed")
			}
		}
		if cfg.CacheMaxAge > 0 {
			// Purge errors are not fatal at startup
			_, _ = cache.PurgeHTTPCacheByAge(cfg.CacheDir, cfg.CacheMaxAge)
			_, _ = cache.PurgeLookupCacheByAge(cfg.CacheDir, cfg.CacheMaxAge)
		}
		httpCache = &cache.HTTPCache{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
		lookupCache = &cache.LookupCache{Dir: cfg.CacheDir, MaxAge: cfg.CacheMaxAge, StrictPerms: cfg.CacheStrictPerms}
	}

	pageClient := &fetch.Client{
		HTTPClient:        newHTTPClient(cfg.HTTPTimeout, !cfg.AllowPrivateHosts),
		BlockPrivateHosts: !cfg.AllowPrivateHosts,
		UserAgent:         userAgent,
		MaxAttempts:       cfg.HTTPMaxAttempts,
		PerRequestTimeout: cfg.HTTPTimeout,
		Cache:             httpCache,
		MaxConcurrent:     8,
	}
	apiClient := &fetch.Client{
		HTTPClient:        httpClient,
		UserAgent:         "placepin/" + BuildVersion,
		MaxAttempts:       cfg.HTTPMaxAttempts,
		PerRequestTimeout: 4 * cfg.HTTPTimeout,
		MaxConcurrent:     8,
	}

	var chat llm.Client
	if cfg.VisionModel != "" {
		chat = llm.NewOpenAI(cfg.VisionBaseURL, cfg.VisionAPIKey, httpClient)
	}
	recognizer, err := ocr.New(ocr.Config{
		Backend:       cfg.OCRBackend,
		Language:      cfg.OCRLanguage,
		SpaceAPIKey:   cfg.OCRSpaceAPIKey,
		SpaceEndpoint: cfg.OCRSpaceEndpoint,
		VisionModel:   cfg.VisionModel,
	}, apiClient, chat)
	if err != nil {
		return nil, fmt.Errorf("ocr: %w", err)
	}

	var geocoder geocode.Geocoder
	if cfg.HasGeocoder() {
		geocoder = &geocode.Cached{
			Inner: &geocode.NaverLocal{
				HTTP:         apiClient,
				ClientID:     cfg.NaverClientID,
				ClientSecret: cfg.NaverClientSecret,
				BaseURL:      cfg.NaverBaseURL,
			},
			Cache:    lookupCache,
			Memory:   geocode.NewMemory(geocode.DefaultMemoryTTL),
			Provider: geocode.ProviderNaver,
		}
	} else {
		log.Warn().Msg("NAVER_CLIENT_ID/NAVER_CLIENT_SECRET not set; place search disabled")
	}

	a := &App{
		cfg:  cfg,
		mode: mode,
		service: &locate.Service{
			Extractor: candidate.New(candidate.Options{
				MaxInputRunes:  cfg.MaxInputRunes,
				ExcludedPlaces: cfg.ExcludedPlaces,
			}),
			Scraper: &scrape.Scraper{
				Fetcher:           pageClient,
				AllowPrivateHosts: cfg.AllowPrivateHosts,
			},
			OCR:         recognizer,
			Geocoder:    geocoder,
			Concurrency: cfg.GeocodeConcurrency,
		},
	}
	return a, nil
}

// Mode is the configured default candidate mode.
func (a *App) Mode() candidate.Mode { return a.mode }

// Service returns the wired pipeline.
func (a *App) Service() *locate.Service { return a.service }

// Server returns the HTTP API over the pipeline.
func (a *App) Server() *server.Server {
	return &server.Server{
		Locate:    a.service,
		Sanitizer: server.NewSanitizer(),
		Version:   BuildVersion,
		StaticDir: a.cfg.StaticDir,
	}
}

// Serve runs the HTTP API until ctx is done.
func (a *App) Serve(ctx context.Context) error {
	return a.Server().ListenAndServe(ctx, a.cfg.ListenAddr)
}

// Candidates extracts candidates from text. An empty mode uses the
// configured default.
func (a *App) Candidates(text string, mode candidate.Mode) []string {
	if mode == "" {
		mode = a.mode
	}
	return a.service.Extractor.Extract(text, mode)
}

// ReadImage loads an image file for OCR.
func ReadImage(path string) (ocr.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ocr.Image{}, err
	}
	return ocr.Image{Data: data, Name: path}, nil
}
