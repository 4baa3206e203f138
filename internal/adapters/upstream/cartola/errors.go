package cartola

import "errors"

// Sentinel kinds for market feed errors.
var (
	ErrUpstream = errors.New("market feed request failed")
)
