package resolve

import (
	"fmt"

	"proplines/internal/pkg/models"
)

// MatchReason records how a candidate was selected.
type MatchReason string

const (
	MatchReasonExact     MatchReason = "exact"
	MatchReasonExactTeam MatchReason = "exact+team-disambiguated"
	MatchReasonFuzzy     MatchReason = "fuzzy"
)

// MatchCandidate is the transient pairing produced by the matcher; it is
// consumed by the fusion step and discarded.
type MatchCandidate struct {
	Line   models.LineRecord
	Ref    models.ReferenceEntity
	Score  float64
	Reason MatchReason
}

// Options tunes the matching policy. The scoring weights and thresholds are
// configuration, not control flow; accuracy can be tuned without touching the
// matcher.
type Options struct {
	// Threshold is the minimum fuzzy score to accept, in [0,1].
	Threshold float64
	// TieEpsilon: two top fuzzy candidates closer than this are an
	// ambiguous tie and are never auto-resolved.
	TieEpsilon float64
	// TokenWeight weights token overlap against edit distance in the fuzzy
	// score. Zero means the default of 0.5.
	TokenWeight float64
	// RequireTeamDisambiguation rejects ambiguous exact-name matches that
	// no team hint can resolve, instead of falling through to fuzzy
	// scoring over the tied candidates.
	RequireTeamDisambiguation bool
}

const defaultTokenWeight = 0.5

// Validate fails fast on caller mistakes, before any matching work.
func (o Options) Validate() error {
	if o.Threshold < 0 || o.Threshold > 1 {
		return fmt.Errorf("match threshold must be in [0,1], got %v", o.Threshold)
	}
	if o.TieEpsilon < 0 || o.TieEpsilon >= 1 {
		return fmt.Errorf("tie epsilon must be in [0,1), got %v", o.TieEpsilon)
	}
	if o.TokenWeight < 0 || o.TokenWeight > 1 {
		return fmt.Errorf("token weight must be in [0,1], got %v", o.TokenWeight)
	}
	return nil
}

// Matcher finds the best reference entity for a line record. Pure with
// respect to its inputs: identical line, index and options always produce the
// same outcome, and ties are detected by score comparison, never by map
// iteration order.
type Matcher struct {
	norm *Normalizer
	opts Options
}

// NewMatcher validates the options and returns a matcher sharing the given
// normalizer. The same normalizer instance must be the one the index was
// built with; any divergence breaks matching.
func NewMatcher(norm *Normalizer, opts Options) (*Matcher, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.TokenWeight == 0 {
		opts.TokenWeight = defaultTokenWeight
	}
	return &Matcher{norm: norm, opts: opts}, nil
}

// Match resolves one line record against the index. It returns the accepted
// candidate, or nil plus the reason no match was accepted.
func (m *Matcher) Match(line models.LineRecord, ix *Index) (*MatchCandidate, models.UnmatchedReason) {
	key := m.norm.Normalize(line.Player)
	if key.IsEmpty() || ix.Len() == 0 {
		return nil, models.ReasonNoCandidates
	}

	ids := ix.exactLookup(key)
	switch {
	case len(ids) == 1:
		return &MatchCandidate{
			Line:   line,
			Ref:    ix.entries[ids[0]].ref,
			Score:  1.0,
			Reason: MatchReasonExact,
		}, ""
	case len(ids) > 1:
		if cand := m.disambiguateByTeam(line, key, ix, ids); cand != nil {
			return cand, ""
		}
		if m.opts.RequireTeamDisambiguation {
			return nil, models.ReasonAmbiguousTie
		}
		// No unique winner: score only the tied candidates.
		return m.fuzzyMatch(line, key, ix, ids)
	}

	ids = ix.tokenLookup(key)
	if len(ids) == 0 {
		return nil, models.ReasonNoCandidates
	}
	return m.fuzzyMatch(line, key, ix, ids)
}

// disambiguateByTeam resolves an ambiguous exact-name hit using the line's
// team hint or the team tag embedded in the name. Returns nil unless exactly
// one tied candidate plays for that team.
func (m *Matcher) disambiguateByTeam(line models.LineRecord, key Key, ix *Index, ids []int) *MatchCandidate {
	team := m.norm.NormalizeTeam(line.TeamHint)
	if team == "" {
		team = m.norm.NormalizeTeam(key.Team)
	}
	if team == "" {
		return nil
	}

	winner := -1
	for _, id := range ids {
		if ix.entries[id].team != team {
			continue
		}
		if winner >= 0 {
			return nil
		}
		winner = id
	}
	if winner < 0 {
		return nil
	}
	return &MatchCandidate{
		Line:   line,
		Ref:    ix.entries[winner].ref,
		Score:  0.95,
		Reason: MatchReasonExactTeam,
	}
}

// fuzzyMatch scores the given candidates and applies the acceptance threshold
// and tie detection.
func (m *Matcher) fuzzyMatch(line models.LineRecord, key Key, ix *Index, ids []int) (*MatchCandidate, models.UnmatchedReason) {
	bestID := -1
	bestScore := -1.0
	scores := make([]float64, len(ids))
	for i, id := range ids {
		s := m.score(key, ix.entries[id].key)
		scores[i] = s
		if s > bestScore {
			bestScore = s
			bestID = id
		}
	}

	if bestScore < m.opts.Threshold {
		return nil, models.ReasonBelowThreshold
	}

	tied := 0
	for _, s := range scores {
		if bestScore-s < m.opts.TieEpsilon {
			tied++
		}
	}
	if tied > 1 {
		return nil, models.ReasonAmbiguousTie
	}

	return &MatchCandidate{
		Line:   line,
		Ref:    ix.entries[bestID].ref,
		Score:  bestScore,
		Reason: MatchReasonFuzzy,
	}, ""
}

// score combines token-set overlap with normalized edit distance on the flat
// key, producing a similarity in [0,1].
func (m *Matcher) score(a, b Key) float64 {
	w := m.opts.TokenWeight
	return w*jaccard(a.Tokens, b.Tokens) + (1-w)*levenshteinSimilarity(a.String(), b.String())
}

func jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	setA := make(map[string]bool, len(a))
	for _, t := range a {
		setA[t] = true
	}
	setB := make(map[string]bool, len(b))
	for _, t := range b {
		setB[t] = true
	}
	shared := 0
	for t := range setA {
		if setB[t] {
			shared++
		}
	}
	union := len(setA) + len(setB) - shared
	return float64(shared) / float64(union)
}
