// Package market holds the market snapshot model, the lookup index built
// from it, and the name-resolution engine that matches free-text picks to
// market records.
package market

import (
	"github.com/shopspring/decimal"

	"github.com/tcorrea/cartoart/internal/domain/position"
	"github.com/tcorrea/cartoart/internal/domain/text"
)

// Record is one professional player or coach in a market snapshot.
// Records are created fresh on every snapshot fetch and never mutated;
// a refresh replaces the whole set.
type Record struct {
	ID string

	// Name variants. At least one must be non-empty for the record to be
	// indexable. DisplayName is the short name shown on cards ("apelido").
	DisplayName string
	ShortName   string
	FullName    string

	// Club reference: either an id into the snapshot's club list or an
	// inline club descriptor. Feeds vary; both are supported.
	ClubID   string
	ClubName string

	// Position is Unknown when the feed carried none; such records are
	// excluded from the index rather than defaulted.
	Position position.Code

	// Price may be absent (Valid == false) in degraded feeds.
	Price decimal.NullDecimal
}

// nameVariants returns the record's normalized, de-duplicated name
// variants in display/short/full order. Empty variants are dropped.
func (r *Record) nameVariants() []string {
	var out []string
	seen := make(map[string]struct{}, 3)
	for _, raw := range []string{r.DisplayName, r.ShortName, r.FullName} {
		n := text.Normalize(raw)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// Club is a club referenced by id from market records. Snapshots may omit
// clubs entirely; records then need inline club names to be indexable.
type Club struct {
	ID           string
	Name         string
	Nickname     string
	Abbreviation string
}

// preferredName picks the label used to derive the club's canonical key.
// The nickname ("Flamengo") is preferred over the official long form
// ("Clube de Regatas do Flamengo") because it is what synonym tables and
// CSV authors use.
func (c Club) preferredName() string {
	for _, s := range []string{c.Nickname, c.Name, c.Abbreviation} {
		if s != "" {
			return s
		}
	}
	return ""
}
