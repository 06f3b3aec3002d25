package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/placepin/internal/candidate"
	"github.com/hyperifyio/placepin/internal/geocode"
	"github.com/hyperifyio/placepin/internal/ocr"
)

func TestNew_WithoutGeocoder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CacheDir = t.TempDir()

	a, err := New(cfg)
	require.NoError(t, err)
	assert.Nil(t, a.Service().Geocoder)
	assert.IsType(t, &ocr.SpaceClient{}, a.Service().OCR)
	assert.Equal(t, candidate.ModePlace, a.Mode())
}

func TestNew_WiresGeocoderAndVision(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CacheDir = t.TempDir()
	cfg.NaverClientID, cfg.NaverClientSecret = "id", "secret"
	cfg.OCRBackend = ocr.BackendVision
	cfg.VisionModel = "llava"

	a, err := New(cfg)
	require.NoError(t, err)
	cached, ok := a.Service().Geocoder.(*geocode.Cached)
	require.True(t, ok)
	assert.NotNil(t, cached.Cache)
	assert.NotNil(t, cached.Memory)
	assert.IsType(t, &ocr.VisionClient{}, a.Service().OCR)

	srv := a.Server()
	assert.Same(t, a.Service(), srv.Locate)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CandidateMode = "bogus"
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNew_CacheClear(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "old.lookup.json")
	require.NoError(t, os.WriteFile(stale, []byte("[]"), 0o600))

	cfg := DefaultConfig()
	cfg.CacheDir = dir
	cfg.CacheClear = true
	_, err := New(cfg)
	require.NoError(t, err)
	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
}

func TestCandidates_UsesConfiguredModeAndExclusions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NoCache = true
	cfg.CandidateMode = "address"
	cfg.ExcludedPlaces = []string{"강남역"}

	a, err := New(cfg)
	require.NoError(t, err)

	text := "강남역 맛집! 서울 용산구 한강대로39길 2-13 #현선이네"
	got := a.Candidates(text, "")
	require.NotEmpty(t, got)
	assert.Equal(t, "서울 용산구 한강대로39길 2-13", got[0])
	assert.NotContains(t, a.Candidates(text, candidate.ModePlace), "강남역")
}

func TestReadImage(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a.png")
	require.NoError(t, os.WriteFile(p, []byte{0x89, 'P', 'N', 'G'}, 0o600))
	img, err := ReadImage(p)
	require.NoError(t, err)
	assert.Len(t, img.Data, 4)

	_, err = ReadImage(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
