// Package scrape reads the caption of a public social media post.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/placepin/internal/extract"
	"github.com/hyperifyio/placepin/internal/fetch"
)

// DefaultUserAgent is a desktop browser string; post pages serve their
// og:description only to browser-like agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var (
	// ErrInvalidURL is returned for empty, unparsable or non-http(s) URLs.
	ErrInvalidURL = errors.New("invalid post url")
	// ErrPrivateHost is returned for loopback and private network hosts,
	// including redirect targets when the Fetcher is a guarded fetch.Client.
	ErrPrivateHost = fetch.ErrPrivateHost
)

// Fetcher retrieves an HTML page. *fetch.Client satisfies it.
type Fetcher interface {
	Get(ctx context.Context, rawURL string) ([]byte, string, error)
}

// Scraper fetches post pages and extracts their caption.
type Scraper struct {
	Fetcher   Fetcher
	Extractor extract.Extractor
	// AllowPrivateHosts disables the loopback/private address guard.
	AllowPrivateHosts bool
}

// NormalizePostURL trims raw, defaults the scheme to https, strips share
// tracking parameters and adds the www. prefix to bare instagram.com hosts.
func NormalizePostURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrInvalidURL
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	u.Scheme = scheme
	canonicalize(u)
	if strings.EqualFold(u.Hostname(), "instagram.com") {
		host := "www.instagram.com"
		if p := u.Port(); p != "" {
			host = net.JoinHostPort(host, p)
		}
		u.Host = host
	}
	return u.String(), nil
}

// Scrape fetches rawURL and returns the post caption. Pages without a
// caption fail with an error wrapping extract.ErrNoPostContent.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (extract.Post, error) {
	target, err := NormalizePostURL(rawURL)
	if err != nil {
		return extract.Post{}, err
	}
	if !s.AllowPrivateHosts {
		u, _ := url.Parse(target)
		if fetch.IsPrivateHost(u.Hostname()) {
			return extract.Post{}, fmt.Errorf("%w: %s", ErrPrivateHost, u.Hostname())
		}
		// Redirect hops are checked by fetch.Client.
		ctx = fetch.WithBlockPrivateHosts(ctx)
	}
	if s.Fetcher == nil {
		return extract.Post{}, errors.New("scrape: no fetcher configured")
	}
	body, _, err := s.Fetcher.Get(ctx, target)
	if err != nil {
		return extract.Post{}, fmt.Errorf("fetch %s: %w", target, err)
	}
	var ex extract.Extractor = extract.HeuristicExtractor{}
	if s.Extractor != nil {
		ex = s.Extractor
	}
	post, err := extract.PostFromDocument(ex.Extract(body))
	if err != nil {
		return extract.Post{}, fmt.Errorf("extract %s: %w", target, err)
	}
	log.Debug().Str("url", target).Int("hashtags", len(post.Hashtags)).Msg("post scraped")
	return post, nil
}
