// Package roster parses the uploaded picks CSV and holds the entries the
// resolution engine enriches.
package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tcorrea/cartoart/internal/domain/text"
	"github.com/tcorrea/cartoart/internal/domain/valuation"
)

// Entry is one row of the uploaded CSV: a pick the author wants priced.
// The query fields are kept as typed free text; enrichment fills the
// resolved fields in place once per market refresh or generation trigger.
type Entry struct {
	Position   string // raw code: TEC, GOL, LAT, ZAG, MEI, ATA
	Name       string
	Club       string
	Confidence string // ordinal confidence tier label

	Captain      bool
	Unanimous    bool
	LuxuryBackup bool

	// Enrichment. Price is valid only when Found is true; Found is true
	// only when resolution reached a uniquely-identified market record.
	Found    bool
	Price    decimal.NullDecimal
	RecordID string
	Metric   *float64
	Tier     valuation.Tier
}

// Label is the human-readable form used on the "players not found" list.
func (e Entry) Label() string {
	return fmt.Sprintf("%s (%s)", e.Name, e.Club)
}

// minColumns is position, name, club, confidence. Anything after those is
// an indicator token.
const minColumns = 4

// Parse reads the picks CSV. The first line is a header and is skipped;
// blank lines are skipped; rows with fewer than four columns are skipped
// rather than failing the upload. Trailing columns are indicator tokens
// (cap/capitao, uni/unanimidade, rl/luxo), compared after normalization.
func Parse(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var entries []Entry
	line := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("roster: read csv: %w", err)
		}
		line++
		if line == 1 {
			continue // header
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		if len(row) < minColumns {
			continue
		}

		e := Entry{
			Position:   strings.TrimSpace(row[0]),
			Name:       strings.TrimSpace(row[1]),
			Club:       strings.TrimSpace(row[2]),
			Confidence: strings.TrimSpace(row[3]),
		}
		for _, col := range row[minColumns:] {
			switch text.Normalize(col) {
			case "cap", "capitao":
				e.Captain = true
			case "uni", "unanimidade":
				e.Unanimous = true
			case "rl", "luxo":
				e.LuxuryBackup = true
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}
