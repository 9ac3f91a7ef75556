package notify

import (
	"strings"
	"testing"

	"proplines/internal/pkg/models"
	"proplines/internal/resolve"
)

func TestFormatRunSummary(t *testing.T) {
	result := &resolve.Result{
		RunID: "run-123",
		Canonical: []models.CanonicalRecord{
			{Player: "TenZ"},
			{Player: "Derke"},
		},
		Unmatched: []models.UnmatchedLine{
			{Line: models.LineRecord{Player: "Unknown Guy", Market: "kills"}, Reason: models.ReasonNoCandidates},
			{Line: models.LineRecord{Player: "Gabriel S", Market: "assists"}, Reason: models.ReasonAmbiguousTie},
		},
	}

	text := formatRunSummary(result)

	for _, want := range []string{
		"run-123",
		"Matched: 2",
		"Unmatched: 2",
		"no-candidates: 1",
		"ambiguous-tie: 1",
		"Unknown Guy (kills)",
		"Gabriel S (assists)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("formatRunSummary() missing %q in:\n%s", want, text)
		}
	}
}

func TestFormatRunSummaryAllMatched(t *testing.T) {
	result := &resolve.Result{
		RunID:     "run-clean",
		Canonical: []models.CanonicalRecord{{Player: "TenZ"}},
	}

	text := formatRunSummary(result)
	if strings.Contains(text, "•") {
		t.Errorf("formatRunSummary() listed unmatched lines for a clean run:\n%s", text)
	}
	if !strings.Contains(text, "Unmatched: 0") {
		t.Errorf("formatRunSummary() missing zero unmatched count:\n%s", text)
	}
}
