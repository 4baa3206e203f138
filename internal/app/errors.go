package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNoMarketSource = errors.New("no market source configured")
	ErrRosterTooLarge = errors.New("roster exceeds the configured row limit")
)
