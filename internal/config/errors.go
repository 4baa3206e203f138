package config

import "errors"

// Sentinel kinds for configuration errors.
var (
	ErrEmptyAddr          = errors.New("addr must not be empty")
	ErrNoMarketSource     = errors.New("market_url or fallback_snapshot_path must be set")
	ErrBadRefreshInterval = errors.New("refresh_interval_seconds must be positive")
)
