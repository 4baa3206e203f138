// Package types contains common read shapes shared between the service
// and the HTTP API.
package types

import "github.com/shopspring/decimal"

// Pick mirrors one enriched roster entry as exposed to the renderer.
// Price is null when the pick is unresolved or the record had no price;
// Metric and Tier are present only when the valuation feed knows the
// resolved record.
type Pick struct {
	Position     string           `json:"position"`
	Name         string           `json:"name"`
	Club         string           `json:"club"`
	Confidence   string           `json:"confidence"`
	Captain      bool             `json:"captain"`
	Unanimous    bool             `json:"unanimous"`
	LuxuryBackup bool             `json:"luxury_backup"`
	Found        bool             `json:"found"`
	Price        *decimal.Decimal `json:"price"`
	RecordID     string           `json:"record_id,omitempty"`
	Metric       *float64         `json:"metric,omitempty"`
	Tier         string           `json:"tier,omitempty"`
}

// ResolveAnswer is the diagnostic response of a single-query resolution.
// Reason is set only when Found is false; it explains the refusal without
// changing the contract (refusals are a designed outcome, not errors).
type ResolveAnswer struct {
	Found     bool             `json:"found"`
	Price     *decimal.Decimal `json:"price"`
	RecordID  string           `json:"record_id,omitempty"`
	MatchedBy string           `json:"matched_by,omitempty"`
	Reason    string           `json:"reason,omitempty"`
	Metric    *float64         `json:"metric,omitempty"`
	Tier      string           `json:"tier,omitempty"`
}

// Lineup is the full read-back of the stored roster after enrichment,
// including the diagnostic list of picks that did not resolve.
type Lineup struct {
	SnapshotID string   `json:"snapshot_id"`
	Picks      []Pick   `json:"picks"`
	NotFound   []string `json:"not_found"`
}
