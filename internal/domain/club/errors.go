package club

import "errors"

// Sentinel kinds for club table errors.
var (
	ErrEmptyTable = errors.New("club table has no clubs")
)
