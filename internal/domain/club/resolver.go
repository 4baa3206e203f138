// Package club maps arbitrary club labels to canonical club keys.
//
// The synonym table is a versioned data asset (clubs.yaml): adding a club
// or a nickname is a data change, not a logic change. A default table is
// embedded in the binary and can be overridden by a file at runtime.
package club

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/tcorrea/cartoart/internal/domain/text"
)

//go:embed clubs.yaml
var defaultTable []byte

// connectives are dropped when normalizing club labels. This is safe for
// clubs ("Vasco da Gama" / "Vasco Gama") but must never be applied to
// player names, where connectives keep distinct surnames apart.
var connectives = map[string]struct{}{
	"de": {}, "da": {}, "do": {}, "das": {}, "dos": {},
}

// table mirrors the YAML asset.
type table struct {
	Version string              `koanf:"version"`
	Clubs   map[string][]string `koanf:"clubs"`
}

// Resolver maps club labels to canonical keys.
type Resolver struct {
	version  string
	synonyms map[string]string // normalized synonym -> canonical key
}

// Default builds a Resolver from the embedded synonym table.
func Default() *Resolver {
	r, err := fromProvider(rawbytes.Provider(defaultTable))
	if err != nil {
		// The embedded asset is validated by tests; an unparsable table
		// here is a build defect, not a runtime condition.
		panic(fmt.Sprintf("club: embedded table invalid: %v", err))
	}
	return r
}

// FromFile builds a Resolver from a YAML file with the same shape as the
// embedded asset.
func FromFile(path string) (*Resolver, error) {
	r, err := fromProvider(file.Provider(path))
	if err != nil {
		return nil, fmt.Errorf("club: load table %s: %w", path, err)
	}
	return r, nil
}

func fromProvider(p koanf.Provider) (*Resolver, error) {
	k := koanf.New(".")
	if err := k.Load(p, yaml.Parser()); err != nil {
		return nil, err
	}
	var t table
	if err := k.UnmarshalWithConf("", &t, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}
	if len(t.Clubs) == 0 {
		return nil, ErrEmptyTable
	}

	r := &Resolver{
		version:  t.Version,
		synonyms: make(map[string]string, len(t.Clubs)*4),
	}
	for canonical, names := range t.Clubs {
		key := normalizeLabel(canonical)
		if key == "" {
			continue
		}
		// The canonical key accepts itself.
		r.synonyms[key] = key
		for _, name := range names {
			if n := normalizeLabel(name); n != "" {
				r.synonyms[n] = key
			}
		}
	}
	return r, nil
}

// Key resolves an arbitrary club label (full name, abbreviation, nickname,
// accented or not) to its canonical key. Unknown labels fall back to the
// normalized input itself, so the function is total: an unknown club simply
// becomes its own singleton key.
func (r *Resolver) Key(raw string) string {
	n := normalizeLabel(raw)
	if key, ok := r.synonyms[n]; ok {
		return key
	}
	return n
}

// Version reports the loaded table's version string.
func (r *Resolver) Version() string { return r.version }

// Size reports the number of synonym entries.
func (r *Resolver) Size() int { return len(r.synonyms) }

// normalizeLabel applies the shared text normalization and then drops
// connective words, which only the club path is allowed to do.
func normalizeLabel(raw string) string {
	tokens := text.Tokens(raw)
	kept := tokens[:0]
	for _, tok := range tokens {
		if _, skip := connectives[tok]; !skip {
			kept = append(kept, tok)
		}
	}
	if len(kept) == 0 {
		// A label made only of connectives still needs a stable key.
		return text.Normalize(raw)
	}
	return strings.Join(kept, " ")
}
