// Package locate runs the full pipeline: obtain text from a source,
// extract location candidates and resolve them to coordinates.
package locate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/hyperifyio/placepin/internal/candidate"
	"github.com/hyperifyio/placepin/internal/extract"
	"github.com/hyperifyio/placepin/internal/geocode"
	"github.com/hyperifyio/placepin/internal/mapview"
	"github.com/hyperifyio/placepin/internal/ocr"
)

// DefaultConcurrency bounds parallel geocoder calls per report.
const DefaultConcurrency = 4

// ErrNoText is returned when a source yields no usable text.
var ErrNoText = errors.New("no text could be extracted from the source")

// Source names where the text of a Report came from.
type Source string

const (
	SourceText  Source = "text"
	SourceURL   Source = "url"
	SourceImage Source = "image"
)

// Scraper reads a post caption. *scrape.Scraper satisfies it.
type Scraper interface {
	Scrape(ctx context.Context, rawURL string) (extract.Post, error)
}

// Place is a candidate together with the location it resolved to.
type Place struct {
	Candidate string         `json:"candidate"`
	Result    geocode.Result `json:"result"`
}

// Report is the outcome of one pipeline run. Candidates keep extraction
// order; Places follow the same order. Unresolved holds candidates the
// geocoder found nothing for (or every candidate when no geocoder is
// configured); Failed holds candidates whose lookup returned an error.
type Report struct {
	Source     Source         `json:"source"`
	Mode       candidate.Mode `json:"mode"`
	Text       string         `json:"text"`
	Hashtags   []string       `json:"hashtags"`
	Candidates []string       `json:"candidates"`
	Places     []Place        `json:"places"`
	Unresolved []string       `json:"unresolved"`
	Failed     []string       `json:"failed"`
}

// Pins converts the resolved places for a map view.
func (r Report) Pins() []mapview.Pin {
	pins := make([]mapview.Pin, 0, len(r.Places))
	for _, p := range r.Places {
		addr := p.Result.RoadAddress
		if addr == "" {
			addr = p.Result.Address
		}
		name := p.Result.Title
		if name == "" {
			name = p.Candidate
		}
		pins = append(pins, mapview.Pin{
			Name:     name,
			Category: p.Result.Category,
			Address:  addr,
			Position: mapview.LatLng{Lat: p.Result.Lat, Lng: p.Result.Lng},
		})
	}
	return pins
}

// Service wires the collaborators. Extractor defaults to candidate.Default();
// a nil Geocoder skips resolution.
type Service struct {
	Extractor   *candidate.Extractor
	Scraper     Scraper
	OCR         ocr.Recognizer
	Geocoder    geocode.Geocoder
	Concurrency int
}

// FromText extracts and resolves candidates from text. Empty text is not
// an error and produces an empty report.
func (s *Service) FromText(ctx context.Context, text string, mode candidate.Mode) (Report, error) {
	_, tags := candidate.SplitHashtags(text)
	return s.run(ctx, Report{Source: SourceText, Text: text, Hashtags: tags}, text, mode)
}

// FromURL scrapes a post and runs the caption with its hashtags through
// the pipeline.
func (s *Service) FromURL(ctx context.Context, rawURL string, mode candidate.Mode) (Report, error) {
	if s.Scraper == nil {
		return Report{}, errors.New("no scraper configured")
	}
	post, err := s.Scraper.Scrape(ctx, rawURL)
	if err != nil {
		return Report{}, err
	}
	text := strings.TrimSpace(strings.Join([]string{post.Text, post.HashtagLine()}, "\n"))
	if text == "" {
		return Report{}, ErrNoText
	}
	return s.run(ctx, Report{Source: SourceURL, Text: post.Text, Hashtags: post.Hashtags}, text, mode)
}

// FromImage recognizes the text in img and runs it through the pipeline.
func (s *Service) FromImage(ctx context.Context, img ocr.Image, mode candidate.Mode) (Report, error) {
	if s.OCR == nil {
		return Report{}, errors.New("no ocr backend configured")
	}
	text, err := s.OCR.Recognize(ctx, img)
	if err != nil {
		return Report{}, fmt.Errorf("ocr: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return Report{}, ErrNoText
	}
	_, tags := candidate.SplitHashtags(text)
	return s.run(ctx, Report{Source: SourceImage, Text: text, Hashtags: tags}, text, mode)
}

// run extracts candidates from text into r and geocodes them.
func (s *Service) run(ctx context.Context, r Report, text string, mode candidate.Mode) (Report, error) {
	if mode == "" {
		mode = candidate.ModePlace
	}
	ex := s.Extractor
	if ex == nil {
		ex = candidate.Default()
	}
	r.Mode = mode
	r.Candidates = ex.Extract(text, mode)
	r.Places = []Place{}
	r.Unresolved = []string{}
	r.Failed = []string{}
	if r.Hashtags == nil {
		r.Hashtags = []string{}
	}
	if s.Geocoder == nil || len(r.Candidates) == 0 {
		r.Unresolved = append(r.Unresolved, r.Candidates...)
		return r, nil
	}

	places, unresolved, failed, err := s.resolve(ctx, r.Candidates)
	if err != nil {
		return Report{}, err
	}
	r.Places = places
	r.Unresolved = unresolved
	r.Failed = failed
	log.Info().
		Str("source", string(r.Source)).
		Str("mode", string(mode)).
		Int("candidates", len(r.Candidates)).
		Int("resolved", len(places)).
		Int("failed", len(failed)).
		Msg("locate finished")
	return r, nil
}

// resolve geocodes every candidate. Empty results go to unresolved and
// errors to failed; only when every lookup fails is the first error
// returned, wrapped in geocode.ErrLookupFailed.
func (s *Service) resolve(ctx context.Context, cands []string) (places []Place, unresolved, failed []string, err error) {
	results := make([][]geocode.Result, len(cands))
	errs := make([]error, len(cands))

	limit := s.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, c := range cands {
		g.Go(func() error {
			res, err := s.Geocoder.Lookup(gctx, c)
			if err != nil {
				log.Warn().Err(err).Str("candidate", c).Msg("lookup failed")
				errs[i] = err
				return nil
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, nil, nil, err
	}

	places = []Place{}
	unresolved = []string{}
	failed = []string{}
	for i, c := range cands {
		if errs[i] != nil {
			failed = append(failed, c)
			continue
		}
		if len(results[i]) == 0 {
			unresolved = append(unresolved, c)
			continue
		}
		places = append(places, Place{Candidate: c, Result: results[i][0]})
	}
	if len(failed) == len(cands) {
		if errors.Is(errs[0], geocode.ErrLookupFailed) {
			return nil, nil, nil, fmt.Errorf("geocode: %w", errs[0])
		}
		return nil, nil, nil, fmt.Errorf("geocode: %w: %w", geocode.ErrLookupFailed, errs[0])
	}
	return places, unresolved, failed, nil
}
