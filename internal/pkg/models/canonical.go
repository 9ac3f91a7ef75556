package models

import "time"

// FieldSource identifies which input contributed a fused field value.
type FieldSource string

const (
	SourceLine      FieldSource = "line"
	SourceReference FieldSource = "reference"
	SourceOverride  FieldSource = "override"
	SourceNone      FieldSource = "none"
)

// CanonicalRecord is the fused, exportable representation of one player line.
// Exactly one is produced per input LineRecord; unmatched lines carry empty
// reference fields and MatchConfidence 0.
type CanonicalRecord struct {
	ID              string                 `json:"id"`
	Player          string                 `json:"player"`
	Team            string                 `json:"team,omitempty"`
	Market          string                 `json:"market"`
	Line            float64                `json:"line"`
	Opponent        string                 `json:"opponent,omitempty"`
	Event           string                 `json:"event,omitempty"`
	MatchTime       time.Time              `json:"match_time"`
	MatchConfidence float64                `json:"match_confidence"`
	MatchReason     string                 `json:"match_reason"`
	SourceFlags     map[string]FieldSource `json:"source_flags"`
}

// UnmatchedReason explains why a line record could not be enriched.
type UnmatchedReason string

const (
	ReasonBelowThreshold UnmatchedReason = "below-threshold"
	ReasonAmbiguousTie   UnmatchedReason = "ambiguous-tie"
	ReasonNoCandidates   UnmatchedReason = "no-candidates"
)

// UnmatchedLine pairs a skipped line record with its reason. Not an error:
// unmatched lines are valid output, just without enriched fields.
type UnmatchedLine struct {
	Line   LineRecord      `json:"line"`
	Reason UnmatchedReason `json:"reason"`
}
