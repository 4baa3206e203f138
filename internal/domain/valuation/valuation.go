// Package valuation looks up the secondary per-player valuation metric
// (minimum score to appreciate) and maps it to a presentation tier.
package valuation

import "github.com/tcorrea/cartoart/internal/domain/position"

// Tier buckets a metric value for presentation.
type Tier string

const (
	TierGood    Tier = "good"
	TierNeutral Tier = "neutral"
	TierBad     Tier = "bad"
)

// Feed is one fetch of the valuation feed: record id -> metric. Like the
// market index it is replaced wholesale on refresh and read-only after
// construction. A nil *Feed behaves as an empty feed, so callers never
// need to distinguish "feed not loaded" from "id unknown".
type Feed struct {
	metrics map[string]float64
}

// NewFeed wraps a fetched metric map. The map is not copied; the fetch
// layer hands over ownership.
func NewFeed(metrics map[string]float64) *Feed {
	return &Feed{metrics: metrics}
}

// Metric returns the metric for a record id. ok is false when the feed was
// never loaded, the credential was absent or expired (feed nil), or the id
// is unknown; the three cases are equivalent "no data" outcomes.
func (f *Feed) Metric(recordID string) (float64, bool) {
	if f == nil || recordID == "" {
		return 0, false
	}
	v, ok := f.metrics[recordID]
	return v, ok
}

// Len reports how many records the feed covers. Nil-safe.
func (f *Feed) Len() int {
	if f == nil {
		return 0
	}
	return len(f.metrics)
}

// TierFor maps (position, metric) to a tier using position-specific
// thresholds: the cheaper a position appreciates, the stricter its bands.
func TierFor(pos position.Code, metric float64) Tier {
	var good, neutral float64
	switch pos {
	case position.Coach, position.Keeper, position.CentreBack:
		good, neutral = 2.5, 6.0
	case position.Fullback:
		good, neutral = 3.0, 6.5
	case position.Midfielder, position.Forward:
		good, neutral = 3.0, 7.0
	default:
		return TierNeutral
	}
	switch {
	case metric <= good:
		return TierGood
	case metric <= neutral:
		return TierNeutral
	default:
		return TierBad
	}
}
