package market

import (
	"github.com/tcorrea/cartoart/internal/domain/club"
	"github.com/tcorrea/cartoart/internal/domain/position"
)

// nameKey addresses a single record by (club key, position, normalized name).
type nameKey struct {
	club string
	pos  position.Code
	name string
}

// bucketKey addresses the ordered candidate list for (club key, position).
type bucketKey struct {
	club string
	pos  position.Code
}

// candidate pairs an indexed record with its precomputed name variants so
// the fuzzy tier never re-normalizes during a query.
type candidate struct {
	rec   *Record
	names []string
}

// Index is the derived lookup structure over one market snapshot. It is
// built wholesale by BuildIndex and read-only afterwards; callers swap in
// a new Index on refresh and discard the old one, so no locking is needed
// on the read path.
type Index struct {
	clubs *club.Resolver

	byName   map[nameKey]*Record
	byBucket map[bucketKey][]candidate

	indexed int
	skipped int
}

// BuildIndex constructs the index for a snapshot. Pure function of its
// inputs: records with no determinable club or no known position are
// skipped (excluded, not an error), name-key collisions keep the first
// writer, and bucket order preserves input order.
func BuildIndex(records []Record, clubRecords []Club, clubs *club.Resolver) *Index {
	ix := &Index{
		clubs:    clubs,
		byName:   make(map[nameKey]*Record, len(records)*2),
		byBucket: make(map[bucketKey][]candidate),
	}

	clubIDToKey := make(map[string]string, len(clubRecords))
	for _, c := range clubRecords {
		if c.ID == "" {
			continue
		}
		if name := c.preferredName(); name != "" {
			clubIDToKey[c.ID] = clubs.Key(name)
		}
	}

	// Copy the records so the index owns its snapshot regardless of what
	// the caller does with the input slice afterwards.
	owned := make([]Record, len(records))
	copy(owned, records)

	for i := range owned {
		rec := &owned[i]
		if rec.Position == position.Unknown {
			ix.skipped++
			continue
		}

		clubKey := ""
		switch {
		case rec.ClubName != "":
			clubKey = clubs.Key(rec.ClubName)
		case rec.ClubID != "":
			clubKey = clubIDToKey[rec.ClubID]
		}
		if clubKey == "" {
			ix.skipped++
			continue
		}

		names := rec.nameVariants()
		if len(names) == 0 {
			ix.skipped++
			continue
		}

		for _, n := range names {
			key := nameKey{club: clubKey, pos: rec.Position, name: n}
			// First registration wins: stability over recency.
			if _, taken := ix.byName[key]; !taken {
				ix.byName[key] = rec
			}
		}

		bk := bucketKey{club: clubKey, pos: rec.Position}
		ix.byBucket[bk] = append(ix.byBucket[bk], candidate{rec: rec, names: names})
		ix.indexed++
	}

	return ix
}

// Len reports how many records were indexed.
func (ix *Index) Len() int { return ix.indexed }

// Skipped reports how many records were excluded for missing club,
// position, or name data.
func (ix *Index) Skipped() int { return ix.skipped }

// ClubTableVersion reports the synonym table version the index was built
// against.
func (ix *Index) ClubTableVersion() string { return ix.clubs.Version() }
