package app

import (
    "encoding/json"
    "fmt"
    "os"
    "path/filepath"
    "time"

    yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
// Nested sections map naturally to flags/env.
type FileConfig struct {
    Listen string `yaml:"listen" json:"listen"`
    Static string `yaml:"static" json:"static"`

    Naver struct {
        ClientID     string `yaml:"clientId" json:"clientId"`
        ClientSecret string `yaml:"clientSecret" json:"clientSecret"`
        BaseURL      string `yaml:"baseURL" json:"baseURL"`
    } `yaml:"naver" json:"naver"`

    OCR struct {
        Backend  string `yaml:"backend" json:"backend"`
        Language string `yaml:"language" json:"language"`
        Space    struct {
            Key      string `yaml:"key" json:"key"`
            Endpoint string `yaml:"endpoint" json:"endpoint"`
        } `yaml:"ocrspace" json:"ocrspace"`
    } `yaml:"ocr" json:"ocr"`

    Vision struct {
        BaseURL string `yaml:"base" json:"base"`
        Model   string `yaml:"model" json:"model"`
        APIKey  string `yaml:"key" json:"key"`
    } `yaml:"vision" json:"vision"`

    Candidates struct {
        Mode string `yaml:"mode" json:"mode"`
        // Exclude replaces the built-in false positive list; an explicit
        // empty list disables filtering.
        Exclude       *[]string `yaml:"exclude" json:"exclude"`
        MaxInputRunes int       `yaml:"maxInputRunes" json:"maxInputRunes"`
    } `yaml:"candidates" json:"candidates"`

    HTTP struct {
        UserAgent         string        `yaml:"userAgent" json:"userAgent"`
        Timeout           time.Duration `yaml:"timeout" json:"timeout"`
        MaxAttempts       int           `yaml:"maxAttempts" json:"maxAttempts"`
        AllowPrivateHosts bool          `yaml:"allowPrivateHosts" json:"allowPrivateHosts"`
    } `yaml:"http" json:"http"`

    Geocode struct {
        Concurrency int `yaml:"concurrency" json:"concurrency"`
    } `yaml:"geocode" json:"geocode"`

    Cache struct {
        Dir         string        `yaml:"dir" json:"dir"`
        MaxAge      time.Duration `yaml:"maxAge" json:"maxAge"`
        Clear       bool          `yaml:"clear" json:"clear"`
        StrictPerms bool          `yaml:"strictPerms" json:"strictPerms"`
        Disable     bool          `yaml:"disable" json:"disable"`
    } `yaml:"cache" json:"cache"`

    Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
    var fc FileConfig
    b, err := os.ReadFile(path)
    if err != nil {
        return fc, err
    }
    switch ext := filepath.Ext(path); ext {
    case ".yaml", ".yml":
        if err := yaml.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse yaml: %w", err)
        }
    case ".json":
        if err := json.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse json: %w", err)
        }
    default:
        // Try YAML then JSON
        if err := yaml.Unmarshal(b, &fc); err != nil {
            if jerr := json.Unmarshal(b, &fc); jerr != nil {
                return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
            }
        }
    }
    return fc, nil
}

// ApplyFileConfig overlays every value set in fc onto cfg. Call it on top
// of DefaultConfig and before env and flag overrides.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
    if cfg == nil { return }

    setStr := func(dst *string, v string) { if v != "" { *dst = v } }
    setInt := func(dst *int, v int) { if v > 0 { *dst = v } }
    setDur := func(dst *time.Duration, v time.Duration) { if v > 0 { *dst = v } }
    setBool := func(dst *bool, v bool) { if v { *dst = true } }

    setStr(&cfg.ListenAddr, fc.Listen)
    setStr(&cfg.StaticDir, fc.Static)

    setStr(&cfg.NaverClientID, fc.Naver.ClientID)
    setStr(&cfg.NaverClientSecret, fc.Naver.ClientSecret)
    setStr(&cfg.NaverBaseURL, fc.Naver.BaseURL)

    setStr(&cfg.OCRBackend, fc.OCR.Backend)
    setStr(&cfg.OCRLanguage, fc.OCR.Language)
    setStr(&cfg.OCRSpaceAPIKey, fc.OCR.Space.Key)
    setStr(&cfg.OCRSpaceEndpoint, fc.OCR.Space.Endpoint)

    setStr(&cfg.VisionBaseURL, fc.Vision.BaseURL)
    setStr(&cfg.VisionModel, fc.Vision.Model)
    setStr(&cfg.VisionAPIKey, fc.Vision.APIKey)

    setStr(&cfg.CandidateMode, fc.Candidates.Mode)
    if fc.Candidates.Exclude != nil {
        cfg.ExcludedPlaces = append([]string{}, (*fc.Candidates.Exclude)...)
    }
    setInt(&cfg.MaxInputRunes, fc.Candidates.MaxInputRunes)

    setStr(&cfg.UserAgent, fc.HTTP.UserAgent)
    setDur(&cfg.HTTPTimeout, fc.HTTP.Timeout)
    setInt(&cfg.HTTPMaxAttempts, fc.HTTP.MaxAttempts)
    setBool(&cfg.AllowPrivateHosts, fc.HTTP.AllowPrivateHosts)
    setInt(&cfg.GeocodeConcurrency, fc.Geocode.Concurrency)

    setStr(&cfg.CacheDir, fc.Cache.Dir)
    setDur(&cfg.CacheMaxAge, fc.Cache.MaxAge)
    setBool(&cfg.CacheClear, fc.Cache.Clear)
    setBool(&cfg.CacheStrictPerms, fc.Cache.StrictPerms)
    setBool(&cfg.NoCache, fc.Cache.Disable)

    setBool(&cfg.Verbose, fc.Verbose)
}
