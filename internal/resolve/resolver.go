package resolve

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"proplines/internal/pkg/config"
	"proplines/internal/pkg/models"
)

// Result is the output of one resolution pass. Every input line lands in
// exactly one of Canonical or Unmatched. Degraded carries an override-aware
// canonical record for each unmatched line, in the same order, so callers can
// export unmatched lines as degraded records when they choose to.
type Result struct {
	RunID       string                   `json:"run_id"`
	GeneratedAt time.Time                `json:"generated_at"`
	Canonical   []models.CanonicalRecord `json:"canonical"`
	Unmatched   []models.UnmatchedLine   `json:"unmatched"`
	Degraded    []models.CanonicalRecord `json:"degraded,omitempty"`
}

// Resolver runs the full pipeline: build the candidate index over the
// reference set, match each line record, fuse, and collect the rest. It owns
// no state between runs; the index lives only within one Resolve call.
type Resolver struct {
	norm    *Normalizer
	matcher *Matcher
}

// NewResolver validates the configuration and wires the shared normalizer
// into both the index builder and the matcher.
func NewResolver(cfg config.ResolverConfig, aliases config.AliasConfig) (*Resolver, error) {
	norm := NewNormalizer(aliases)
	matcher, err := NewMatcher(norm, Options{
		Threshold:                 cfg.Threshold,
		TieEpsilon:                cfg.TieEpsilon,
		TokenWeight:               cfg.TokenWeight,
		RequireTeamDisambiguation: cfg.RequireTeamDisambiguation,
	})
	if err != nil {
		return nil, err
	}
	return &Resolver{norm: norm, matcher: matcher}, nil
}

// Normalizer exposes the shared normalizer so ingest adapters (the override
// loader in particular) canonicalize names exactly the same way.
func (r *Resolver) Normalizer() *Normalizer {
	return r.norm
}

// Resolve processes the three input sequences in one synchronous pass.
func (r *Resolver) Resolve(lines []models.LineRecord, refs []models.ReferenceEntity, overrides []models.OverrideRecord) *Result {
	started := time.Now()
	ix := BuildIndex(r.norm, refs)
	ovs := r.indexOverrides(overrides)
	collector := &UnmatchedCollector{}

	result := &Result{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}

	for _, line := range lines {
		ov := ovs[r.norm.Normalize(line.Player).String()]
		cand, reason := r.matcher.Match(line, ix)
		if cand == nil {
			collector.Record(line, reason)
			result.Degraded = append(result.Degraded, Fuse(line, nil, ov))
			slog.Debug("line unmatched",
				"player", line.Player, "market", line.Market, "reason", reason)
			continue
		}
		result.Canonical = append(result.Canonical, Fuse(line, cand, ov))
	}

	result.Unmatched = collector.Entries()
	slog.Info("resolution pass finished",
		"run_id", result.RunID,
		"lines", len(lines),
		"reference_entities", ix.Len(),
		"matched", len(result.Canonical),
		"unmatched", collector.Len(),
		"duration", time.Since(started))
	return result
}

// indexOverrides keys the override records by normalized player name using
// the same normalizer as matching. Later records win on duplicate keys.
func (r *Resolver) indexOverrides(overrides []models.OverrideRecord) map[string]*models.OverrideRecord {
	ovs := make(map[string]*models.OverrideRecord, len(overrides))
	for i := range overrides {
		key := r.norm.Normalize(overrides[i].Player)
		if key.IsEmpty() {
			continue
		}
		ovs[key.String()] = &overrides[i]
	}
	return ovs
}
