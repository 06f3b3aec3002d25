package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/placepin/internal/candidate"
	"github.com/hyperifyio/placepin/internal/locate"
)

const sample = "강남역 맛집! 서울 용산구 한강대로39길 2-13 #현선이네"

var envKeys = []string{
	"NAVER_CLIENT_ID", "NAVER_CLIENT_SECRET", "CANDIDATE_MODE", "CANDIDATES_EXCLUDE",
	"OCR_BACKEND", "VISION_MODEL", "CACHE_DIR", "NO_CACHE", "VERBOSE", "LISTEN_ADDR", "PORT",
}

// isolateEnv unsets the variables the config reads and restores them afterwards.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		if v, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { _ = os.Setenv(k, v) })
		} else {
			t.Cleanup(func() { _ = os.Unsetenv(k) })
		}
		_ = os.Unsetenv(k)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	isolateEnv(t)
	base := []string{"--env-file", filepath.Join(t.TempDir(), "missing.env"), "--no-cache"}
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(base, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "placepin "))
}

func TestCandidates_FromArgs(t *testing.T) {
	out, err := execute(t, "", "candidates", sample)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{"서울 용산구 한강대로39길 2-13", "현선이네", "강남역"}, lines)
}

func TestCandidates_StdinJSON(t *testing.T) {
	out, err := execute(t, sample, "candidates", "--json", "--mode", "address", "-")
	require.NoError(t, err)
	var got struct {
		Mode       string   `json:"mode"`
		Candidates []string `json:"candidates"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "address", got.Mode)
	require.NotEmpty(t, got.Candidates)
	assert.Equal(t, "서울 용산구 한강대로39길 2-13", got.Candidates[0])
	assert.NotContains(t, got.Candidates, "강남역")
}

func TestCandidates_UnknownMode(t *testing.T) {
	_, err := execute(t, "", "candidates", "--mode", "nearby", sample)
	assert.ErrorIs(t, err, candidate.ErrUnknownMode)
}

func TestCandidates_ExcludeFlag(t *testing.T) {
	out, err := execute(t, "", "--exclude", "강남역", "candidates", sample)
	require.NoError(t, err)
	assert.NotContains(t, out, "강남역")
	assert.Contains(t, out, "현선이네")
}

func TestCandidates_ConfigFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "placepin.yaml")
	require.NoError(t, os.WriteFile(path, []byte("candidates:\n  mode: address\n"), 0o644))
	out, err := execute(t, "", "--config", path, "candidates", "--json", sample)
	require.NoError(t, err)
	assert.Contains(t, out, `"mode": "address"`)
}

func TestLocate_TextWithoutGeocoder(t *testing.T) {
	out, err := execute(t, "", "locate", sample)
	require.NoError(t, err)
	var rep locate.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, locate.SourceText, rep.Source)
	assert.Equal(t, rep.Candidates, rep.Unresolved)
	assert.Empty(t, rep.Places)
}

func TestLocate_WithMap(t *testing.T) {
	out, err := execute(t, "", "locate", "--map", sample)
	require.NoError(t, err)
	var got struct {
		Map struct {
			Zoom    int               `json:"zoom"`
			Markers []json.RawMessage `json:"markers"`
		} `json:"map"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 15, got.Map.Zoom)
	assert.Empty(t, got.Map.Markers)
}

func TestLocate_ConflictingSources(t *testing.T) {
	_, err := execute(t, "", "locate", "--url", "https://example.com/p/1", "--image", "a.jpg")
	assert.Error(t, err)

	_, err = execute(t, "", "locate", "--url", "https://example.com/p/1", "extra")
	assert.Error(t, err)
}

func TestOCR_MissingFile(t *testing.T) {
	_, err := execute(t, "", "ocr", filepath.Join(t.TempDir(), "nope.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScrape_RejectsBadURL(t *testing.T) {
	_, err := execute(t, "", "scrape", "ftp://example.com/x")
	assert.Error(t, err)
}
