package app

import (
    "os"
    "strconv"
    "strings"
    "time"
)

// ApplyEnvOverrides overrides cfg fields with environment variables that are
// set. Env takes precedence over the config file; flags remain highest.
func ApplyEnvOverrides(cfg *Config) {
    if cfg == nil { return }

    setStr := func(dst *string, keys ...string) {
        for _, k := range keys {
            if v := strings.TrimSpace(os.Getenv(k)); v != "" {
                *dst = v
                return
            }
        }
    }
    setStr(&cfg.ListenAddr, "LISTEN_ADDR")
    if cfg.ListenAddr == DefaultListenAddr {
        // PORT is what most hosting platforms inject
        if p := strings.TrimSpace(os.Getenv("PORT")); p != "" {
            cfg.ListenAddr = ":" + p
        }
    }
    setStr(&cfg.StaticDir, "STATIC_DIR")

    setStr(&cfg.NaverClientID, "NAVER_CLIENT_ID")
    setStr(&cfg.NaverClientSecret, "NAVER_CLIENT_SECRET")
    setStr(&cfg.NaverBaseURL, "NAVER_BASE_URL")

    setStr(&cfg.OCRBackend, "OCR_BACKEND")
    setStr(&cfg.OCRLanguage, "OCR_LANGUAGE")
    setStr(&cfg.OCRSpaceAPIKey, "OCRSPACE_API_KEY")
    setStr(&cfg.OCRSpaceEndpoint, "OCRSPACE_ENDPOINT")

    setStr(&cfg.VisionBaseURL, "VISION_BASE_URL", "LLM_BASE_URL")
    setStr(&cfg.VisionModel, "VISION_MODEL")
    setStr(&cfg.VisionAPIKey, "VISION_API_KEY", "LLM_API_KEY")

    setStr(&cfg.CandidateMode, "CANDIDATE_MODE")
    if v, ok := os.LookupEnv("CANDIDATES_EXCLUDE"); ok {
        cfg.ExcludedPlaces = splitList(v)
    }
    setStr(&cfg.UserAgent, "USER_AGENT")
    setStr(&cfg.CacheDir, "CACHE_DIR")

    setInt := func(dst *int, key string) {
        if s := strings.TrimSpace(os.Getenv(key)); s != "" {
            if n, err := strconv.Atoi(s); err == nil && n >= 0 {
                *dst = n
            }
        }
    }
    setInt(&cfg.MaxInputRunes, "CANDIDATES_MAX_RUNES")
    setInt(&cfg.HTTPMaxAttempts, "HTTP_MAX_ATTEMPTS")
    setInt(&cfg.GeocodeConcurrency, "GEOCODE_CONCURRENCY")

    setDur := func(dst *time.Duration, key string) {
        if s := os.Getenv(key); s != "" {
            if d, err := time.ParseDuration(s); err == nil {
                *dst = d
            }
        }
    }
    setDur(&cfg.HTTPTimeout, "HTTP_TIMEOUT")
    setDur(&cfg.CacheMaxAge, "CACHE_MAX_AGE")

    // Booleans override when env present and truthy/falsey
    setBool := func(dst *bool, envKey string) {
        if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
            switch s {
            case "1", "true", "yes", "on":
                *dst = true
            case "0", "false", "no", "off":
                *dst = false
            }
        }
    }
    setBool(&cfg.Verbose, "VERBOSE")
    setBool(&cfg.AllowPrivateHosts, "ALLOW_PRIVATE_HOSTS")
    setBool(&cfg.CacheClear, "CACHE_CLEAR")
    setBool(&cfg.CacheStrictPerms, "CACHE_STRICT_PERMS")
    setBool(&cfg.NoCache, "NO_CACHE")
}

// splitList parses a comma separated list. An empty string yields an empty,
// non-nil list.
func splitList(s string) []string {
    out := []string{}
    for _, p := range strings.Split(s, ",") {
        if p = strings.TrimSpace(p); p != "" {
            out = append(out, p)
        }
    }
    return out
}
