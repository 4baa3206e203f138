// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load() layers file/env.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// MarketURL is the market snapshot endpoint.
	MarketURL string `koanf:"market_url"`

	// ValuationURL is the valuation feed endpoint. Optional.
	ValuationURL string `koanf:"valuation_url"`

	// ValuationToken is the bearer credential for the valuation feed.
	// Absence is not an error; the feed is simply skipped.
	ValuationToken string `koanf:"valuation_token"`

	// RefreshIntervalSeconds is the periodic market refresh cadence.
	RefreshIntervalSeconds int `koanf:"refresh_interval_seconds"`

	// FetchTimeoutMS bounds each upstream fetch.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// FallbackSnapshotPath points at a local market dataset used when the
	// upstream fetch fails. Optional.
	FallbackSnapshotPath string `koanf:"fallback_snapshot_path"`

	// ClubTablePath overrides the embedded club synonym table. Optional.
	ClubTablePath string `koanf:"club_table_path"`

	// MaxRosterRows caps the number of rows accepted per upload.
	MaxRosterRows int `koanf:"max_roster_rows"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		Addr:                   ":9080",
		MarketURL:              "https://api.cartola.globo.com/atletas/mercado",
		ValuationURL:           "",
		ValuationToken:         "",
		RefreshIntervalSeconds: 300,
		FetchTimeoutMS:         10_000,
		FallbackSnapshotPath:   "",
		ClubTablePath:          "",
		MaxRosterRows:          200,
	}
}
