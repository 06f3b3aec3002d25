package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
listen: ":9000"
naver:
  clientId: file-id
  clientSecret: file-secret
ocr:
  backend: vision
  language: kor
vision:
  base: http://localhost:11434/v1
  model: llava
candidates:
  mode: all
  exclude: ["취향대", "대호"]
  maxInputRunes: 1000
http:
  timeout: 5s
cache:
  dir: /tmp/pp
  maxAge: 24h
  strictPerms: true
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoadConfigFile_YAML(t *testing.T) {
	fc, err := LoadConfigFile(writeFile(t, "placepin.yaml", sampleYAML))
	require.NoError(t, err)

	cfg := DefaultConfig()
	ApplyFileConfig(&cfg, fc)
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "file-id", cfg.NaverClientID)
	assert.Equal(t, "vision", cfg.OCRBackend)
	assert.Equal(t, "llava", cfg.VisionModel)
	assert.Equal(t, "all", cfg.CandidateMode)
	assert.Equal(t, []string{"취향대", "대호"}, cfg.ExcludedPlaces)
	assert.Equal(t, 1000, cfg.MaxInputRunes)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 24*time.Hour, cfg.CacheMaxAge)
	assert.True(t, cfg.CacheStrictPerms)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadConfigFile_JSON(t *testing.T) {
	fc, err := LoadConfigFile(writeFile(t, "placepin.json", `{"candidates":{"exclude":[]},"ocr":{"ocrspace":{"key":"k"}}}`))
	require.NoError(t, err)

	cfg := DefaultConfig()
	ApplyFileConfig(&cfg, fc)
	assert.NotNil(t, cfg.ExcludedPlaces)
	assert.Empty(t, cfg.ExcludedPlaces)
	assert.Equal(t, "k", cfg.OCRSpaceAPIKey)
	assert.Equal(t, DefaultListenAddr, cfg.ListenAddr)
}

func TestLoadConfigFile_Errors(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfigFile(writeFile(t, "bad.yaml", "listen: [unterminated"))
	assert.Error(t, err)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Setenv("NAVER_CLIENT_ID", "env-id")
	t.Setenv("CANDIDATE_MODE", "address")

	cfg, err := LoadConfig(writeFile(t, "placepin.yaml", sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, "env-id", cfg.NaverClientID)
	assert.Equal(t, "file-secret", cfg.NaverClientSecret)
	assert.Equal(t, "address", cfg.CandidateMode)
}

func TestValidateConfig(t *testing.T) {
	ok := DefaultConfig()
	require.NoError(t, ValidateConfig(ok))

	tests := map[string]func(c *Config){
		"empty listen":      func(c *Config) { c.ListenAddr = " " },
		"bad mode":          func(c *Config) { c.CandidateMode = "ner" },
		"half credentials":  func(c *Config) { c.NaverClientID = "id" },
		"unknown backend":   func(c *Config) { c.OCRBackend = "abbyy" },
		"vision sans model": func(c *Config) { c.OCRBackend = "vision" },
		"negative limit":    func(c *Config) { c.MaxInputRunes = -1 },
		"negative duration": func(c *Config) { c.HTTPTimeout = -time.Second },
	}
	for name, mutate := range tests {
		c := DefaultConfig()
		mutate(&c)
		assert.Error(t, ValidateConfig(c), name)
	}
}
