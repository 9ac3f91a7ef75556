package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"proplines/internal/pkg/config"
	"proplines/internal/pkg/models"
	"proplines/internal/resolve"
)

// Export is the run envelope written to JSON
type Export struct {
	RunID       string                   `json:"run_id"`
	Timestamp   string                   `json:"timestamp"`
	TotalLines  int                      `json:"total_lines"`
	Matched     int                      `json:"matched"`
	Unmatched   int                      `json:"unmatched"`
	Canonical   []models.CanonicalRecord `json:"canonical"`
	Skipped     []SkippedExport          `json:"skipped"`
	Degraded    []models.CanonicalRecord `json:"degraded,omitempty"`
}

// SkippedExport is one unmatched line with its reason
type SkippedExport struct {
	Player string  `json:"player"`
	Market string  `json:"market"`
	Line   float64 `json:"line"`
	Reason string  `json:"reason"`
}

// Exporter writes resolution results to JSON and CSV
type Exporter struct {
	cfg config.ExportConfig
}

// NewExporter creates a new exporter
func NewExporter(cfg config.ExportConfig) *Exporter {
	return &Exporter{cfg: cfg}
}

// Build converts a resolution result to the export envelope
func (e *Exporter) Build(result *resolve.Result) *Export {
	export := &Export{
		RunID:      result.RunID,
		Timestamp:  result.GeneratedAt.UTC().Format(time.RFC3339),
		TotalLines: len(result.Canonical) + len(result.Unmatched),
		Matched:    len(result.Canonical),
		Unmatched:  len(result.Unmatched),
		Canonical:  result.Canonical,
	}
	for _, u := range result.Unmatched {
		export.Skipped = append(export.Skipped, SkippedExport{
			Player: u.Line.Player,
			Market: u.Line.Market,
			Line:   u.Line.Line,
			Reason: string(u.Reason),
		})
	}
	if e.cfg.IncludeUnmatched {
		export.Degraded = result.Degraded
	}
	return export
}

// ExportToJSON renders the run envelope as indented JSON
func (e *Exporter) ExportToJSON(result *resolve.Result) ([]byte, error) {
	return json.MarshalIndent(e.Build(result), "", "  ")
}

var csvHeader = []string{
	"id", "player", "team", "market", "line", "opponent", "event",
	"match_time", "match_confidence", "match_reason", "sources",
}

// ExportToCSV renders canonical records as flat CSV rows. When the export is
// configured to include unmatched lines, their degraded records follow the
// matched ones.
func (e *Exporter) ExportToCSV(result *resolve.Result) ([]byte, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	records := result.Canonical
	if e.cfg.IncludeUnmatched {
		records = append(append([]models.CanonicalRecord{}, records...), result.Degraded...)
	}
	for _, rec := range records {
		if err := w.Write(csvRow(rec)); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return []byte(sb.String()), nil
}

func csvRow(rec models.CanonicalRecord) []string {
	matchTime := ""
	if !rec.MatchTime.IsZero() {
		matchTime = rec.MatchTime.UTC().Format(time.RFC3339)
	}
	return []string{
		rec.ID,
		rec.Player,
		rec.Team,
		rec.Market,
		strconv.FormatFloat(rec.Line, 'f', -1, 64),
		rec.Opponent,
		rec.Event,
		matchTime,
		strconv.FormatFloat(rec.MatchConfidence, 'f', 2, 64),
		rec.MatchReason,
		flattenSources(rec.SourceFlags),
	}
}

// flattenSources renders the audit flags as "field=source" pairs in a stable
// order.
func flattenSources(flags map[string]models.FieldSource) string {
	fields := make([]string, 0, len(flags))
	for field := range flags {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+"="+string(flags[field]))
	}
	return strings.Join(parts, ";")
}

// WriteFiles writes the configured JSON and CSV outputs. Either path may be
// empty to skip that format.
func (e *Exporter) WriteFiles(result *resolve.Result) error {
	if e.cfg.JSONPath != "" {
		data, err := e.ExportToJSON(result)
		if err != nil {
			return err
		}
		if err := os.WriteFile(e.cfg.JSONPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write json export: %w", err)
		}
	}
	if e.cfg.CSVPath != "" {
		data, err := e.ExportToCSV(result)
		if err != nil {
			return err
		}
		if err := os.WriteFile(e.cfg.CSVPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write csv export: %w", err)
		}
	}
	return nil
}
