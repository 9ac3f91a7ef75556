package prizepicks

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"proplines/internal/pkg/models"
)

const sourceName = "prizepicks"

// ParseProjections converts a raw projections payload into line records.
// Projections without a resolvable player are skipped with a log line, never
// an error; duplicates (same player + market) keep the first occurrence.
func ParseProjections(body []byte) ([]models.LineRecord, error) {
	var resp projectionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse projections payload: %w", err)
	}

	players := make(map[string]playerAttributes, len(resp.Included))
	for _, inc := range resp.Included {
		if inc.Type == "new_player" {
			players[inc.ID] = inc.Attributes
		}
	}

	var lines []models.LineRecord
	seen := make(map[string]bool)
	for _, proj := range resp.Data {
		player, ok := players[proj.Relations.NewPlayer.Data.ID]
		if !ok || player.Name == "" {
			slog.Debug("skipping projection without player", "projection_id", proj.ID)
			continue
		}

		market := string(models.StandardizeMarket(proj.Attributes.StatType))
		dupKey := player.Name + "|" + market
		if seen[dupKey] {
			continue
		}
		seen[dupKey] = true

		lines = append(lines, models.LineRecord{
			ID:        proj.ID,
			Player:    player.Name,
			Market:    market,
			Line:      proj.Attributes.LineScore,
			TeamHint:  player.Team,
			Opponent:  parseOpponent(proj.Attributes.Description),
			OfferTime: parseBoardTime(proj.Attributes.BoardTime),
			Source:    sourceName,
		})
	}
	return lines, nil
}

// parseOpponent strips the "vs " / "@ " prefix from the opponent description.
func parseOpponent(desc string) string {
	desc = strings.TrimSpace(desc)
	for _, prefix := range []string{"vs ", "vs. ", "@ "} {
		if strings.HasPrefix(desc, prefix) {
			return strings.TrimSpace(desc[len(prefix):])
		}
	}
	return desc
}

func parseBoardTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
