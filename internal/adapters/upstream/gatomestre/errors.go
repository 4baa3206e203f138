package gatomestre

import "errors"

// Sentinel kinds for valuation feed errors.
var (
	ErrNoCredential      = errors.New("valuation credential not configured")
	ErrCredentialExpired = errors.New("valuation credential expired or rejected")
	ErrUpstream          = errors.New("valuation feed request failed")
)
