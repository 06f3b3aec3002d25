package locate

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/placepin/internal/candidate"
	"github.com/hyperifyio/placepin/internal/extract"
	"github.com/hyperifyio/placepin/internal/geocode"
	"github.com/hyperifyio/placepin/internal/ocr"
)

const sample = "강남역 맛집! 서울 용산구 한강대로39길 2-13 #현선이네"

type fakeGeocoder struct {
	mu      sync.Mutex
	results map[string]geocode.Result
	errs    map[string]error
	err     error
	queries []string
}

func (f *fakeGeocoder) Lookup(_ context.Context, q string) ([]geocode.Result, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if err := f.errs[q]; err != nil {
		return nil, err
	}
	if r, ok := f.results[q]; ok {
		return []geocode.Result{r}, nil
	}
	return []geocode.Result{}, nil
}

type fakeScraper struct {
	post extract.Post
	err  error
}

func (f fakeScraper) Scrape(context.Context, string) (extract.Post, error) { return f.post, f.err }

type fakeOCR struct {
	text string
	err  error
}

func (f fakeOCR) Recognize(context.Context, ocr.Image) (string, error) { return f.text, f.err }

func newGeocoder() *fakeGeocoder {
	return &fakeGeocoder{results: map[string]geocode.Result{
		"서울 용산구 한강대로39길 2-13": {Title: "현선이네 본점", RoadAddress: "서울특별시 용산구 한강대로39길 2-13", Lat: 37.5275, Lng: 126.9654},
		"강남역":                  {Title: "강남역 2호선", Category: "지하철", Lat: 37.4979, Lng: 127.0276},
	}}
}

func TestFromText_ResolvesInCandidateOrder(t *testing.T) {
	s := &Service{Geocoder: newGeocoder()}
	r, err := s.FromText(context.Background(), sample, "")
	require.NoError(t, err)

	assert.Equal(t, SourceText, r.Source)
	assert.Equal(t, candidate.ModePlace, r.Mode)
	assert.Equal(t, []string{"서울 용산구 한강대로39길 2-13", "현선이네", "강남역"}, r.Candidates)
	assert.Equal(t, []string{"#현선이네"}, r.Hashtags)
	require.Len(t, r.Places, 2)
	assert.Equal(t, "서울 용산구 한강대로39길 2-13", r.Places[0].Candidate)
	assert.Equal(t, "강남역", r.Places[1].Candidate)
	assert.Equal(t, []string{"현선이네"}, r.Unresolved)

	pins := r.Pins()
	require.Len(t, pins, 2)
	assert.Equal(t, "현선이네 본점", pins[0].Name)
	assert.Equal(t, "서울특별시 용산구 한강대로39길 2-13", pins[0].Address)
	assert.InDelta(t, 37.5275, pins[0].Position.Lat, 1e-9)
}

func TestFromText_AddressMode(t *testing.T) {
	s := &Service{Geocoder: newGeocoder()}
	r, err := s.FromText(context.Background(), sample, candidate.ModeAddress)
	require.NoError(t, err)
	require.NotEmpty(t, r.Candidates)
	assert.Equal(t, "서울 용산구 한강대로39길 2-13", r.Candidates[0])
	assert.NotContains(t, r.Candidates, "강남역")
	require.NotEmpty(t, r.Places)
	assert.Equal(t, "현선이네 본점", r.Places[0].Result.Title)
}

func TestFromText_NoCandidatesIsNotAnError(t *testing.T) {
	g := newGeocoder()
	s := &Service{Geocoder: g}
	r, err := s.FromText(context.Background(), "오늘 날씨 좋다", "")
	require.NoError(t, err)
	assert.Empty(t, r.Candidates)
	assert.NotNil(t, r.Places)
	assert.Empty(t, g.queries)
}

func TestFromText_WithoutGeocoder(t *testing.T) {
	r, err := (&Service{}).FromText(context.Background(), sample, "")
	require.NoError(t, err)
	assert.Empty(t, r.Places)
	assert.Equal(t, r.Candidates, r.Unresolved)
	assert.Empty(t, r.Failed)
}

func TestFromText_PartialFailureSkipped(t *testing.T) {
	g := newGeocoder()
	g.errs = map[string]error{"현선이네": errors.New("timeout")}
	r, err := (&Service{Geocoder: g}).FromText(context.Background(), sample, "")
	require.NoError(t, err)
	assert.Len(t, r.Places, 2)
	assert.Equal(t, []string{"현선이네"}, r.Failed)
	assert.Empty(t, r.Unresolved)
}

func TestFromText_FailedAndNotFoundKeptApart(t *testing.T) {
	g := &fakeGeocoder{errs: map[string]error{"강남역": errors.New("server error: 500")}}
	r, err := (&Service{Geocoder: g}).FromText(context.Background(), "강남역 근처 서울시청 #서울시청", "")
	require.NoError(t, err)
	require.Contains(t, r.Candidates, "강남역")
	require.Contains(t, r.Candidates, "서울시청")
	assert.Equal(t, []string{"강남역"}, r.Failed)
	assert.Contains(t, r.Unresolved, "서울시청")
	assert.NotContains(t, r.Unresolved, "강남역")
	assert.Empty(t, r.Places)
}

func TestFromText_AllFailuresPropagate(t *testing.T) {
	g := &fakeGeocoder{err: geocode.ErrUnauthorized}
	_, err := (&Service{Geocoder: g, Concurrency: 1}).FromText(context.Background(), sample, "")
	assert.ErrorIs(t, err, geocode.ErrUnauthorized)
	assert.ErrorIs(t, err, geocode.ErrLookupFailed)
}

func TestFromText_CustomExclusions(t *testing.T) {
	ex := candidate.New(candidate.Options{ExcludedPlaces: []string{"강남역"}})
	r, err := (&Service{Extractor: ex}).FromText(context.Background(), sample, "")
	require.NoError(t, err)
	assert.NotContains(t, r.Candidates, "강남역")
}

func TestFromURL(t *testing.T) {
	s := &Service{
		Scraper:  fakeScraper{post: extract.Post{Text: "강남역 맛집!", Hashtags: []string{"#현선이네"}}},
		Geocoder: newGeocoder(),
	}
	r, err := s.FromURL(context.Background(), "instagram.com/p/x", "")
	require.NoError(t, err)
	assert.Equal(t, SourceURL, r.Source)
	assert.Equal(t, "강남역 맛집!", r.Text)
	assert.Equal(t, []string{"현선이네", "강남역"}, r.Candidates)
}

func TestFromURL_Errors(t *testing.T) {
	_, err := (&Service{}).FromURL(context.Background(), "x", "")
	assert.Error(t, err)

	_, err = (&Service{Scraper: fakeScraper{err: extract.ErrNoPostContent}}).FromURL(context.Background(), "x", "")
	assert.ErrorIs(t, err, extract.ErrNoPostContent)

	_, err = (&Service{Scraper: fakeScraper{post: extract.Post{}}}).FromURL(context.Background(), "x", "")
	assert.ErrorIs(t, err, ErrNoText)
}

func TestFromImage(t *testing.T) {
	s := &Service{OCR: fakeOCR{text: sample}, Geocoder: newGeocoder()}
	r, err := s.FromImage(context.Background(), ocr.Image{Data: []byte{1}}, candidate.ModeAll)
	require.NoError(t, err)
	assert.Equal(t, SourceImage, r.Source)
	assert.Contains(t, r.Candidates, "서울 용산구 한강대로39길 2-13")
}

func TestFromImage_Errors(t *testing.T) {
	_, err := (&Service{OCR: fakeOCR{text: "  \n"}}).FromImage(context.Background(), ocr.Image{}, "")
	assert.ErrorIs(t, err, ErrNoText)

	boom := errors.New("boom")
	_, err = (&Service{OCR: fakeOCR{err: boom}}).FromImage(context.Background(), ocr.Image{}, "")
	assert.ErrorIs(t, err, boom)

	_, err = (&Service{}).FromImage(context.Background(), ocr.Image{}, "")
	assert.Error(t, err)
}
