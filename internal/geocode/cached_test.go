package geocode

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/placepin/internal/cache"
)

type countingGeocoder struct {
	calls   int
	results []Result
	err     error
}

func (g *countingGeocoder) Lookup(_ context.Context, query string) ([]Result, error) {
	g.calls++
	return g.results, g.err
}

func TestCached_HitAfterMiss(t *testing.T) {
	inner := &countingGeocoder{results: []Result{{Query: "강남역", Title: "강남역", Lat: 37.4979, Lng: 127.0276}}}
	c := &Cached{Inner: inner, Cache: &cache.LookupCache{Dir: t.TempDir()}, Provider: ProviderNaver}

	first, err := c.Lookup(context.Background(), "강남역")
	require.NoError(t, err)
	second, err := c.Lookup(context.Background(), "강남역 ")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first, second)
}

func TestCached_EmptyResultCached(t *testing.T) {
	inner := &countingGeocoder{results: []Result{}}
	c := &Cached{Inner: inner, Cache: &cache.LookupCache{Dir: t.TempDir()}, Provider: ProviderNaver}

	for i := 0; i < 2; i++ {
		got, err := c.Lookup(context.Background(), "없는곳")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
	assert.Equal(t, 1, inner.calls)
}

func TestCached_ErrorsNotCached(t *testing.T) {
	inner := &countingGeocoder{err: ErrRateLimited}
	c := &Cached{Inner: inner, Cache: &cache.LookupCache{Dir: t.TempDir()}, Provider: ProviderNaver}

	for i := 0; i < 2; i++ {
		_, err := c.Lookup(context.Background(), "강남역")
		assert.True(t, errors.Is(err, ErrRateLimited))
	}
	assert.Equal(t, 2, inner.calls)
}

func TestCached_NoCacheDir(t *testing.T) {
	inner := &countingGeocoder{results: []Result{}}
	c := &Cached{Inner: inner}
	_, _ = c.Lookup(context.Background(), "a")
	_, _ = c.Lookup(context.Background(), "a")
	assert.Equal(t, 2, inner.calls)
}

func TestCached_MemoryOnly(t *testing.T) {
	inner := &countingGeocoder{results: []Result{{Title: "강남역"}}}
	c := &Cached{Inner: inner, Memory: NewMemory(0), Provider: ProviderNaver}

	first, err := c.Lookup(context.Background(), "강남역")
	require.NoError(t, err)
	first[0].Title = "changed"

	second, err := c.Lookup(context.Background(), "강남역")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, "강남역", second[0].Title)
}

func TestCached_DiskHitFillsMemory(t *testing.T) {
	dir := t.TempDir()
	seed := &Cached{Inner: &countingGeocoder{results: []Result{{Title: "현선이네"}}}, Cache: &cache.LookupCache{Dir: dir}, Provider: ProviderNaver}
	_, err := seed.Lookup(context.Background(), "현선이네")
	require.NoError(t, err)

	inner := &countingGeocoder{}
	c := &Cached{Inner: inner, Cache: &cache.LookupCache{Dir: dir}, Memory: NewMemory(time.Minute), Provider: ProviderNaver}
	got, err := c.Lookup(context.Background(), "현선이네")
	require.NoError(t, err)
	assert.Equal(t, "현선이네", got[0].Title)

	_, found := c.Memory.Get(cache.LookupKey(ProviderNaver, "현선이네"))
	assert.True(t, found)
	assert.Equal(t, 0, inner.calls)
}
