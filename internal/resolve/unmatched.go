package resolve

import "proplines/internal/pkg/models"

// UnmatchedCollector accumulates line records that could not be enriched, in
// insertion order, for reporting rather than silent loss.
type UnmatchedCollector struct {
	entries []models.UnmatchedLine
}

// Record appends one skipped line with its reason.
func (c *UnmatchedCollector) Record(line models.LineRecord, reason models.UnmatchedReason) {
	c.entries = append(c.entries, models.UnmatchedLine{Line: line, Reason: reason})
}

// Entries returns the collected lines in the order they were recorded.
func (c *UnmatchedCollector) Entries() []models.UnmatchedLine {
	return c.entries
}

// Len returns the number of collected lines.
func (c *UnmatchedCollector) Len() int {
	return len(c.entries)
}

// CountByReason summarizes the collected lines for run reporting.
func (c *UnmatchedCollector) CountByReason() map[models.UnmatchedReason]int {
	counts := make(map[models.UnmatchedReason]int)
	for _, e := range c.entries {
		counts[e.Reason]++
	}
	return counts
}
