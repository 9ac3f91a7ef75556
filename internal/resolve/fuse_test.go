package resolve

import (
	"testing"
	"time"

	"proplines/internal/pkg/models"
)

func TestFuse_FieldPriority(t *testing.T) {
	line := models.LineRecord{Player: "TenZ", Market: "kills", Line: 14.5, TeamHint: "SEN"}
	cand := &MatchCandidate{
		Line:   line,
		Ref:    models.ReferenceEntity{Player: "TenZ", Team: "Sentinels", Opponent: "100 Thieves", Event: "VCT Americas"},
		Score:  1.0,
		Reason: MatchReasonExact,
	}
	ov := &models.OverrideRecord{Player: "TenZ", Team: "Loud"}

	rec := Fuse(line, cand, ov)

	if rec.Team != "Loud" {
		t.Errorf("team = %q, want override to win", rec.Team)
	}
	if rec.SourceFlags["team"] != models.SourceOverride {
		t.Errorf("team source = %q, want %q", rec.SourceFlags["team"], models.SourceOverride)
	}
	if rec.Market != "kills" || rec.SourceFlags["market"] != models.SourceLine {
		t.Errorf("market is line-owned: got %q from %q", rec.Market, rec.SourceFlags["market"])
	}
	if rec.Opponent != "100 Thieves" || rec.SourceFlags["opponent"] != models.SourceReference {
		t.Errorf("opponent should come from reference, got %q from %q", rec.Opponent, rec.SourceFlags["opponent"])
	}
	if rec.MatchConfidence != 1.0 {
		t.Errorf("match confidence = %v, want 1.0", rec.MatchConfidence)
	}
}

func TestFuse_LineOwnedFieldsOverridable(t *testing.T) {
	line := models.LineRecord{Player: "Derke", Market: "kills", Line: 15.5}
	corrected := 16.5
	ov := &models.OverrideRecord{Player: "Derke", Market: "headshots", Line: &corrected}

	rec := Fuse(line, nil, ov)

	if rec.Market != "headshots" || rec.SourceFlags["market"] != models.SourceOverride {
		t.Errorf("explicit override should replace market, got %q from %q", rec.Market, rec.SourceFlags["market"])
	}
	if rec.Line != 16.5 || rec.SourceFlags["line"] != models.SourceOverride {
		t.Errorf("explicit override should replace line value, got %v from %q", rec.Line, rec.SourceFlags["line"])
	}
}

func TestFuse_UnmatchedDegradesGracefully(t *testing.T) {
	line := models.LineRecord{Player: "Unknown Player", Market: "kills", Line: 10.5, TeamHint: "FNC"}

	rec := Fuse(line, nil, nil)

	if rec.Player != "Unknown Player" {
		t.Errorf("player = %q, want raw line name", rec.Player)
	}
	if rec.Team != "FNC" || rec.SourceFlags["team"] != models.SourceLine {
		t.Errorf("team should fall back to the line hint, got %q from %q", rec.Team, rec.SourceFlags["team"])
	}
	if rec.Event != "" || rec.SourceFlags["event"] != models.SourceNone {
		t.Errorf("event should be empty for unmatched lines, got %q", rec.Event)
	}
	if rec.MatchConfidence != 0 || rec.MatchReason != "unmatched" {
		t.Errorf("confidence/reason = %v/%q, want 0/unmatched", rec.MatchConfidence, rec.MatchReason)
	}
	if rec.SourceFlags["match"] != models.SourceNone {
		t.Errorf("unmatched records must be flagged, flags: %v", rec.SourceFlags)
	}
	if !rec.MatchTime.IsZero() {
		t.Errorf("match time should stay zero without reference data")
	}
}

func TestFuse_MatchTimeFromReference(t *testing.T) {
	when := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	line := models.LineRecord{Player: "aspas", Market: "kills", Line: 17.5}
	cand := &MatchCandidate{
		Ref:    models.ReferenceEntity{Player: "aspas", Team: "Loud", MatchTime: when},
		Score:  1.0,
		Reason: MatchReasonExact,
	}

	rec := Fuse(line, cand, nil)

	if !rec.MatchTime.Equal(when) {
		t.Errorf("match time = %v, want %v", rec.MatchTime, when)
	}
	if rec.SourceFlags["match_time"] != models.SourceReference {
		t.Errorf("match_time source = %q", rec.SourceFlags["match_time"])
	}
}

func TestFuse_UniqueIDs(t *testing.T) {
	line := models.LineRecord{Player: "TenZ", Market: "kills", Line: 14.5}
	a := Fuse(line, nil, nil)
	b := Fuse(line, nil, nil)
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("each canonical record needs its own id: %q vs %q", a.ID, b.ID)
	}
}
