package export

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"proplines/internal/pkg/models"
	"proplines/internal/resolve"
)

// RenderSummary renders a terminal table for one resolution pass: totals,
// a reasons histogram and a confidence breakdown.
func RenderSummary(result *resolve.Result) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(fmt.Sprintf("Run %s", result.RunID))
	tw.AppendHeader(table.Row{"Metric", "Count"})

	total := len(result.Canonical) + len(result.Unmatched)
	tw.AppendRow(table.Row{"Lines processed", total})
	tw.AppendRow(table.Row{"Matched", len(result.Canonical)})
	tw.AppendRow(table.Row{"Unmatched", len(result.Unmatched)})

	reasons := make(map[models.UnmatchedReason]int)
	for _, u := range result.Unmatched {
		reasons[u.Reason]++
	}
	reasonKeys := make([]string, 0, len(reasons))
	for r := range reasons {
		reasonKeys = append(reasonKeys, string(r))
	}
	sort.Strings(reasonKeys)
	if len(reasonKeys) > 0 {
		tw.AppendSeparator()
		for _, r := range reasonKeys {
			tw.AppendRow(table.Row{"  " + r, reasons[models.UnmatchedReason(r)]})
		}
	}

	exact, fuzzy := 0, 0
	for _, c := range result.Canonical {
		if c.MatchConfidence >= 0.95 {
			exact++
		} else {
			fuzzy++
		}
	}
	tw.AppendSeparator()
	tw.AppendRow(table.Row{"High confidence (>=0.95)", exact})
	tw.AppendRow(table.Row{"Fuzzy (<0.95)", fuzzy})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight},
	})
	return tw.Render()
}
