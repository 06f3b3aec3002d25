// Package server exposes the pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/placepin/internal/apperr"
	"github.com/hyperifyio/placepin/internal/candidate"
	"github.com/hyperifyio/placepin/internal/locate"
)

const shutdownTimeout = 10 * time.Second

// Server routes API requests to a locate.Service. Its Scraper, OCR and
// Geocoder also back the single-step endpoints.
type Server struct {
	Locate    *locate.Service
	Sanitizer *apperr.Sanitizer
	Version   string
	// StaticDir, when set, is served at / for a browser front end.
	StaticDir string
}

// Handler returns the routed handler with request ids, access logging,
// panic recovery and CORS.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /extract", s.handleExtract)
	mux.HandleFunc("POST /extract-image", s.handleExtractImage)
	mux.HandleFunc("GET /search-place", s.handleSearchPlace)
	mux.HandleFunc("POST /candidates", s.handleCandidates)
	mux.HandleFunc("POST /locate", s.handleLocate)
	mux.HandleFunc("POST /locate-image", s.handleLocateImage)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.StaticDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(s.StaticDir)))
	}
	return withRequestID(withAccessLog(withRecover(withCORS(mux))))
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) sanitizer() *apperr.Sanitizer {
	if s.Sanitizer != nil {
		return s.Sanitizer
	}
	return NewSanitizer()
}

func (s *Server) extractor() *candidate.Extractor {
	if s.Locate != nil && s.Locate.Extractor != nil {
		return s.Locate.Extractor
	}
	return candidate.Default()
}
