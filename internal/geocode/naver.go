package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/placepin/internal/fetch"
)

// DefaultNaverBaseURL is the Naver Open API host.
const DefaultNaverBaseURL = "https://openapi.naver.com"

// ProviderNaver names the provider in cache keys.
const ProviderNaver = "naver-local"

// coordScale converts Naver's integer mapx/mapy to degrees.
const coordScale = 1e7

// Doer sends API requests. *fetch.Client satisfies it.
type Doer interface {
	Do(ctx context.Context, build fetch.RequestBuilder) ([]byte, error)
}

// NaverLocal queries the Naver local search API and keeps its top hit.
type NaverLocal struct {
	HTTP         Doer
	ClientID     string
	ClientSecret string
	BaseURL      string
}

type naverResponse struct {
	Total int         `json:"total"`
	Items []naverItem `json:"items"`
}

type naverItem struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Address     string `json:"address"`
	RoadAddress string `json:"roadAddress"`
	MapX        string `json:"mapx"`
	MapY        string `json:"mapy"`
}

func (n *NaverLocal) Lookup(ctx context.Context, query string) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Result{}, nil
	}
	base := n.BaseURL
	if base == "" {
		base = DefaultNaverBaseURL
	}
	endpoint := strings.TrimRight(base, "/") + "/v1/search/local.json?" + url.Values{
		"query":   {query},
		"display": {"1"},
	}.Encode()

	body, err := n.HTTP.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("X-Naver-Client-Id", n.ClientID)
		req.Header.Set("X-Naver-Client-Secret", n.ClientSecret)
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return nil, mapStatus(err)
	}

	var res naverResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("decode naver response: %w: %w", ErrLookupFailed, err)
	}
	log.Debug().Str("query", query).Int("total", res.Total).Msg("naver local search")
	if len(res.Items) == 0 {
		return []Result{}, nil
	}
	r, err := toResult(query, res.Items[0])
	if err != nil {
		return nil, err
	}
	return []Result{r}, nil
}

func toResult(query string, it naverItem) (Result, error) {
	x, errX := strconv.ParseFloat(strings.TrimSpace(it.MapX), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(it.MapY), 64)
	if errX != nil || errY != nil {
		return Result{}, fmt.Errorf("%w: invalid coordinates %q,%q for %q", ErrLookupFailed, it.MapX, it.MapY, query)
	}
	return Result{
		Query:       query,
		Title:       stripTags(it.Title),
		Category:    it.Category,
		Address:     it.Address,
		RoadAddress: it.RoadAddress,
		Lat:         y / coordScale,
		Lng:         x / coordScale,
	}, nil
}

// stripTags removes the <b> highlighting Naver puts around matched terms
// and decodes entities.
func stripTags(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}

func mapStatus(err error) error {
	var se *fetch.StatusError
	if !errors.As(err, &se) {
		return fmt.Errorf("naver local search: %w: %w", ErrLookupFailed, err)
	}
	switch se.Code {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, strings.TrimSpace(se.Body))
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, strings.TrimSpace(se.Body))
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, strings.TrimSpace(se.Body))
	default:
		return fmt.Errorf("naver local search: %w: %w", ErrLookupFailed, err)
	}
}
