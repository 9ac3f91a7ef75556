package resolve

import (
	"github.com/google/uuid"

	"proplines/internal/pkg/models"
)

// Fuse merges one line record with its optional match candidate and optional
// override into a canonical record. Field priority, highest first: override >
// reference > line > empty. Market and line value are line-owned: reference
// data never touches them, only an explicit override does. Total: every line
// record produces a canonical record, degrading to raw line data when nothing
// matched.
func Fuse(line models.LineRecord, cand *MatchCandidate, ov *models.OverrideRecord) models.CanonicalRecord {
	rec := models.CanonicalRecord{
		ID:          uuid.NewString(),
		Market:      line.Market,
		Line:        line.Line,
		SourceFlags: map[string]models.FieldSource{},
	}
	rec.SourceFlags["market"] = models.SourceLine
	rec.SourceFlags["line"] = models.SourceLine

	var ref *models.ReferenceEntity
	if cand != nil {
		ref = &cand.Ref
		rec.MatchConfidence = cand.Score
		rec.MatchReason = string(cand.Reason)
	} else {
		rec.MatchConfidence = 0
		rec.MatchReason = "unmatched"
		rec.SourceFlags["match"] = models.SourceNone
	}

	rec.Player, rec.SourceFlags["player"] = pickString(
		"", refField(ref, func(r *models.ReferenceEntity) string { return r.Player }), line.Player)
	rec.Team, rec.SourceFlags["team"] = pickString(
		ovField(ov, func(o *models.OverrideRecord) string { return o.Team }),
		refField(ref, func(r *models.ReferenceEntity) string { return r.Team }),
		line.TeamHint)
	rec.Opponent, rec.SourceFlags["opponent"] = pickString(
		ovField(ov, func(o *models.OverrideRecord) string { return o.Opponent }),
		refField(ref, func(r *models.ReferenceEntity) string { return r.Opponent }),
		line.Opponent)
	rec.Event, rec.SourceFlags["event"] = pickString(
		ovField(ov, func(o *models.OverrideRecord) string { return o.Event }),
		refField(ref, func(r *models.ReferenceEntity) string { return r.Event }),
		"")

	if ref != nil && !ref.MatchTime.IsZero() {
		rec.MatchTime = ref.MatchTime
		rec.SourceFlags["match_time"] = models.SourceReference
	} else {
		rec.SourceFlags["match_time"] = models.SourceNone
	}

	// Line-owned fields, overridable only explicitly.
	if ov != nil {
		if ov.Market != "" {
			rec.Market = ov.Market
			rec.SourceFlags["market"] = models.SourceOverride
		}
		if ov.Line != nil {
			rec.Line = *ov.Line
			rec.SourceFlags["line"] = models.SourceOverride
		}
	}

	return rec
}

func refField(ref *models.ReferenceEntity, get func(*models.ReferenceEntity) string) string {
	if ref == nil {
		return ""
	}
	return get(ref)
}

func ovField(ov *models.OverrideRecord, get func(*models.OverrideRecord) string) string {
	if ov == nil {
		return ""
	}
	return get(ov)
}

// pickString resolves one field under the priority policy and reports which
// source won.
func pickString(override, reference, line string) (string, models.FieldSource) {
	switch {
	case override != "":
		return override, models.SourceOverride
	case reference != "":
		return reference, models.SourceReference
	case line != "":
		return line, models.SourceLine
	default:
		return "", models.SourceNone
	}
}
