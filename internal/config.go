package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds the tunables of the recovery pipeline. Values are layered:
// built-in defaults, then a .env file and the environment (GEMINI_SESSION_
// prefix), then command-line flags.
type Config struct {
	// Marker is the literal token that identifies a prompt record.
	Marker string `koanf:"marker" validate:"required"`
	// EnvelopeTag identifies batched-RPC envelope chunks.
	EnvelopeTag string `koanf:"envelope_tag" validate:"required"`
	// GuardPrefix is the anti-scraping token stripped from response bodies.
	GuardPrefix string `koanf:"guard_prefix" validate:"required"`
	// TimestampIndex is the documented offset of the timestamp cell in the
	// sequence enclosing a record.
	TimestampIndex int `koanf:"timestamp_index" validate:"gte=0"`
	// ResponseIndex is the documented offset of the response cell.
	ResponseIndex int `koanf:"response_index" validate:"gte=0"`
	// SessionGapMinutes is the idle gap that splits two sessions.
	SessionGapMinutes int `koanf:"session_gap_minutes" validate:"gt=0"`
	// MaxScanDepth bounds the recursive signature scan.
	MaxScanDepth int `koanf:"max_scan_depth" validate:"gt=0"`
	// URLFilter restricts scanning to exchanges whose URL contains one of
	// these substrings. Empty means scan everything.
	URLFilter []string `koanf:"url_filter"`
}

const envPrefix = "GEMINI_SESSION_"

// DefaultConfig returns the tokens and offsets observed in current captures.
// They are hints, not a contract: the producing service reorders its
// positional layout between revisions, so every one of them can be
// overridden.
func DefaultConfig() Config {
	return Config{
		Marker:            "Prompted",
		EnvelopeTag:       "wrb.fr",
		GuardPrefix:       ")]}'",
		TimestampIndex:    4,
		ResponseIndex:     34,
		SessionGapMinutes: 120,
		MaxScanDepth:      512,
	}
}

// LoadConfig layers .env and environment overrides on top of the defaults
// and validates the result.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	k := koanf.New(".")
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return cfg, fmt.Errorf("failed to load environment: %w", err)
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SessionGap returns the clustering gap as a duration.
func (c Config) SessionGap() time.Duration {
	return time.Duration(c.SessionGapMinutes) * time.Minute
}

// MatchesURL reports whether an exchange URL passes the filter.
func (c Config) MatchesURL(url string) bool {
	if len(c.URLFilter) == 0 {
		return true
	}
	for _, f := range c.URLFilter {
		if f != "" && strings.Contains(url, f) {
			return true
		}
	}
	return false
}
