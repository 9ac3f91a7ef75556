package resolve

import (
	"reflect"
	"testing"

	"proplines/internal/pkg/config"
	"proplines/internal/pkg/models"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(config.ResolverConfig{
		Threshold:  0.75,
		TieEpsilon: 0.02,
	}, config.AliasConfig{})
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	return r
}

func TestNewResolver_InvalidConfig(t *testing.T) {
	_, err := NewResolver(config.ResolverConfig{Threshold: 2, TieEpsilon: 0.02}, config.AliasConfig{})
	if err == nil {
		t.Fatalf("invalid threshold must fail at construction")
	}
}

func TestResolve_EndToEndMatched(t *testing.T) {
	r := newTestResolver(t)

	lines := []models.LineRecord{
		{Player: "TenZ", Market: "kills", Line: 14.5},
	}
	refs := []models.ReferenceEntity{
		{Player: "TenZ", Team: "Sentinels", Opponent: "100 Thieves", Event: "VCT Americas"},
	}

	res := r.Resolve(lines, refs, nil)

	if len(res.Canonical) != 1 || len(res.Unmatched) != 0 {
		t.Fatalf("got %d canonical, %d unmatched; want 1, 0", len(res.Canonical), len(res.Unmatched))
	}
	rec := res.Canonical[0]
	if rec.Player != "TenZ" || rec.Team != "Sentinels" || rec.Market != "kills" ||
		rec.Line != 14.5 || rec.Opponent != "100 Thieves" || rec.Event != "VCT Americas" {
		t.Errorf("fused record wrong: %+v", rec)
	}
	if rec.MatchConfidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", rec.MatchConfidence)
	}
}

func TestResolve_TagAndCaseInsensitive(t *testing.T) {
	r := newTestResolver(t)

	res := r.Resolve(
		[]models.LineRecord{{Player: "tenz", Market: "kills", Line: 14.5}},
		[]models.ReferenceEntity{{Player: "TenZ [SEN]", Team: "Sentinels"}},
		nil,
	)

	if len(res.Canonical) != 1 {
		t.Fatalf("lowercase name should match tagged reference entry, got unmatched %v", res.Unmatched)
	}
	if res.Canonical[0].MatchConfidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0 after normalization", res.Canonical[0].MatchConfidence)
	}
}

func TestResolve_NoCandidates(t *testing.T) {
	r := newTestResolver(t)

	res := r.Resolve(
		[]models.LineRecord{{Player: "Nobody", Market: "kills", Line: 9.5}},
		[]models.ReferenceEntity{{Player: "Derke", Team: "Fnatic"}},
		nil,
	)

	if len(res.Canonical) != 0 || len(res.Unmatched) != 1 {
		t.Fatalf("got %d canonical, %d unmatched; want 0, 1", len(res.Canonical), len(res.Unmatched))
	}
	if res.Unmatched[0].Reason != models.ReasonNoCandidates {
		t.Errorf("reason = %q, want %q", res.Unmatched[0].Reason, models.ReasonNoCandidates)
	}
	// Degraded export mode still carries the raw line data.
	if len(res.Degraded) != 1 {
		t.Fatalf("want one degraded record for the unmatched line")
	}
	deg := res.Degraded[0]
	if deg.Player != "Nobody" || deg.Line != 9.5 || deg.MatchConfidence != 0 {
		t.Errorf("degraded record wrong: %+v", deg)
	}
}

func TestResolve_OverrideApplies(t *testing.T) {
	r := newTestResolver(t)

	res := r.Resolve(
		[]models.LineRecord{{Player: "TenZ", Market: "kills", Line: 14.5}},
		[]models.ReferenceEntity{{Player: "TenZ", Team: "Sentinels"}},
		[]models.OverrideRecord{{Player: "tenz", Team: "Loud"}},
	)

	if len(res.Canonical) != 1 {
		t.Fatalf("want one canonical record")
	}
	if res.Canonical[0].Team != "Loud" {
		t.Errorf("override keyed by normalized name should win, got team %q", res.Canonical[0].Team)
	}
}

func TestResolve_OverrideAppliesToDegraded(t *testing.T) {
	r := newTestResolver(t)

	res := r.Resolve(
		[]models.LineRecord{{Player: "Mystery", Market: "kills", Line: 9.5}},
		nil,
		[]models.OverrideRecord{{Player: "Mystery", Team: "Sentinels"}},
	)

	if len(res.Degraded) != 1 {
		t.Fatalf("want one degraded record")
	}
	if res.Degraded[0].Team != "Sentinels" {
		t.Errorf("overrides apply to unmatched lines too, got team %q", res.Degraded[0].Team)
	}
}

func TestResolve_CoverageInvariant(t *testing.T) {
	r := newTestResolver(t)

	lines := []models.LineRecord{
		{Player: "TenZ", Market: "kills", Line: 14.5},
		{Player: "Nobody", Market: "kills", Line: 9.5},
		{Player: "Derke", Market: "headshots", Line: 8.5},
		{Player: "", Market: "kills", Line: 1.5},
	}
	refs := []models.ReferenceEntity{
		{Player: "TenZ", Team: "Sentinels"},
		{Player: "Derke", Team: "Fnatic"},
	}

	res := r.Resolve(lines, refs, nil)

	if got := len(res.Canonical) + len(res.Unmatched); got != len(lines) {
		t.Errorf("every line must land in exactly one bucket: %d canonical + %d unmatched != %d lines",
			len(res.Canonical), len(res.Unmatched), len(lines))
	}
	if len(res.Degraded) != len(res.Unmatched) {
		t.Errorf("degraded records must mirror unmatched lines: %d vs %d",
			len(res.Degraded), len(res.Unmatched))
	}
}

func TestResolve_DeterministicAcrossRuns(t *testing.T) {
	r := newTestResolver(t)

	lines := []models.LineRecord{
		{Player: "Gabriel Sousa", Market: "kills", Line: 14.5},
		{Player: "TenZ", Market: "kills", Line: 13.5},
	}
	refs := []models.ReferenceEntity{
		{Player: "Gabriel Souza", Team: "Loud"},
		{Player: "Gabriel Santos", Team: "Fnatic"},
		{Player: "TenZ", Team: "Sentinels"},
	}

	strip := func(res *Result) [][2]string {
		var out [][2]string
		for _, c := range res.Canonical {
			out = append(out, [2]string{c.Player, c.MatchReason})
		}
		for _, u := range res.Unmatched {
			out = append(out, [2]string{u.Line.Player, string(u.Reason)})
		}
		return out
	}

	first := strip(r.Resolve(lines, refs, nil))
	for i := 0; i < 20; i++ {
		if got := strip(r.Resolve(lines, refs, nil)); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %v vs %v", i, got, first)
		}
	}
}
