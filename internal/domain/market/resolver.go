package market

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tcorrea/cartoart/internal/domain/position"
	"github.com/tcorrea/cartoart/internal/domain/text"
)

// Match scores for the fuzzy tier.
const (
	scoreExact       = 100 // query equals a candidate name outright
	scoreVariant     = 90  // a derived query variant equals a candidate name
	scoreFirstToken  = 85  // single-token name equals the other side's first token
	scorePrefix      = 80  // one normalized name is a prefix of the other
	scoreTokenSubset = 75  // shorter name's tokens all appear in the longer

	// acceptThreshold is the minimum score a best candidate needs.
	acceptThreshold = 80
	// acceptMargin is the lead the best candidate must hold over the
	// runner-up. Reporting "not found" beats attaching a wrong price.
	acceptMargin = 10
)

// Reason explains why a resolution refused. The external contract only
// exposes found=false; reasons exist for logs, metrics, and the /resolve
// diagnostic endpoint.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonBadPosition
	ReasonNoCandidate
	ReasonBelowThreshold
	ReasonAmbiguous
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonBadPosition:
		return "bad_position"
	case ReasonNoCandidate:
		return "no_candidate"
	case ReasonBelowThreshold:
		return "below_threshold"
	case ReasonAmbiguous:
		return "ambiguous"
	default:
		return "unknown"
	}
}

// MatchTier names the tier that produced a successful resolution.
type MatchTier string

const (
	MatchExact   MatchTier = "exact"
	MatchVariant MatchTier = "variant"
)

// Resolution is the outcome of resolving one (name, club, position) query.
// Price is valid only when Found is true and the matched record carried a
// price; an unresolved query is a legitimate terminal outcome.
type Resolution struct {
	Found     bool
	Record    *Record
	Price     decimal.NullDecimal
	MatchedBy MatchTier
	Reason    Reason
}

// Resolve maps a free-text (name, club, position) triple to at most one
// market record. Tiers, in order: exact composite-key lookup, then a
// margin-guarded fuzzy pass over the (club, position) bucket, then refusal.
// It never crosses club or position boundaries and never throws: malformed
// position codes and empty buckets both come back as found=false.
func (ix *Index) Resolve(name, clubLabel, rawPosition string) Resolution {
	pos, ok := position.Parse(rawPosition)
	if !ok {
		return Resolution{Reason: ReasonBadPosition}
	}

	clubKey := ix.clubs.Key(clubLabel)
	qNorm := text.Normalize(name)
	if qNorm == "" {
		return Resolution{Reason: ReasonNoCandidate}
	}

	// Exact tier.
	if rec, hit := ix.byName[nameKey{club: clubKey, pos: pos, name: qNorm}]; hit {
		return Resolution{Found: true, Record: rec, Price: rec.Price, MatchedBy: MatchExact}
	}

	// Variant tier.
	bucket := ix.byBucket[bucketKey{club: clubKey, pos: pos}]
	if len(bucket) == 0 {
		return Resolution{Reason: ReasonNoCandidate}
	}

	qVars := queryVariants(qNorm)
	qToks := strings.Split(qNorm, " ")

	best, second := 0, 0
	var bestRec *Record
	for _, cand := range bucket {
		s := scoreCandidate(qNorm, qVars, qToks, cand)
		switch {
		case s > best:
			second = best
			best = s
			bestRec = cand.rec
		case s > second:
			second = s
		}
	}

	switch {
	case best < acceptThreshold:
		return Resolution{Reason: ReasonBelowThreshold}
	case second > 0 && best-second < acceptMargin:
		return Resolution{Reason: ReasonAmbiguous}
	default:
		return Resolution{Found: true, Record: bestRec, Price: bestRec.Price, MatchedBy: MatchVariant}
	}
}

// queryVariants derives the safe name variants tried against each
// candidate: the full name, the first token, the first two tokens, the
// last token, and the token-concatenated form. The last form handles
// one-word nicknames written apart ("Calle Ri" vs "calleri"); the token
// forms handle compound surnames.
func queryVariants(qNorm string) []string {
	toks := strings.Split(qNorm, " ")
	raw := []string{qNorm, toks[0], toks[len(toks)-1], strings.Join(toks, "")}
	if len(toks) >= 2 {
		raw = append(raw, toks[0]+" "+toks[1])
	}

	seen := make(map[string]struct{}, len(raw))
	out := raw[:0]
	for _, v := range raw {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// scoreCandidate returns the candidate's best score across its name
// variants against the query.
func scoreCandidate(qNorm string, qVars, qToks []string, cand candidate) int {
	best := 0
	for _, cn := range cand.names {
		if s := scoreName(qNorm, qVars, qToks, cn); s > best {
			best = s
		}
	}
	return best
}

func scoreName(qNorm string, qVars, qToks []string, cn string) int {
	if cn == qNorm {
		return scoreExact
	}
	for _, v := range qVars {
		if v == cn {
			return scoreVariant
		}
	}

	cToks := strings.Split(cn, " ")
	// A single-token name matching the other side's first token is how
	// one-word picks ("Walter") find their full record ("Walter Clar").
	if len(qToks) == 1 && qToks[0] == cToks[0] {
		return scoreFirstToken
	}
	if len(cToks) == 1 && cToks[0] == qToks[0] {
		return scoreFirstToken
	}

	if strings.HasPrefix(cn, qNorm) || strings.HasPrefix(qNorm, cn) {
		return scorePrefix
	}

	if tokenSubset(qToks, cToks) {
		return scoreTokenSubset
	}
	return 0
}

// tokenSubset reports whether every token of the shorter name appears
// among the tokens of the longer one.
func tokenSubset(a, b []string) bool {
	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(longer))
	for _, t := range longer {
		set[t] = struct{}{}
	}
	for _, t := range shorter {
		if _, ok := set[t]; !ok {
			return false
		}
	}
	return true
}
