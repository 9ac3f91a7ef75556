package vlrgg

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"proplines/internal/pkg/models"
)

const sourceName = "vlrgg"

// LoadPlayerMapsCSV reads per-map player rows (date, player, team, opponent,
// event, map_name, role, ...) and collapses them into one reference entity
// per player, keeping the row with the most recent date. Stat columns are
// ignored here; only match metadata feeds identity resolution.
func LoadPlayerMapsCSV(path string) ([]models.ReferenceEntity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open player maps file: %w", err)
	}
	defer f.Close()
	return readPlayerMaps(f)
}

func readPlayerMaps(r io.Reader) ([]models.ReferenceEntity, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read player maps header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["player"]; !ok {
		return nil, fmt.Errorf("player maps file has no player column")
	}

	latest := make(map[string]models.ReferenceEntity)
	var order []string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read player maps row: %w", err)
		}

		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		player := get("player")
		if player == "" {
			slog.Warn("skipping player maps row with empty player name")
			continue
		}

		entity := models.ReferenceEntity{
			Player:    player,
			Team:      get("team"),
			Event:     get("event"),
			Opponent:  get("opponent"),
			MatchTime: parseDate(get("date")),
			Role:      get("role"),
			Source:    sourceName,
		}

		existing, ok := latest[player]
		if !ok {
			order = append(order, player)
			latest[player] = entity
			continue
		}
		if entity.MatchTime.After(existing.MatchTime) {
			latest[player] = entity
		}
	}

	// Input order, not map order, so repeated loads agree.
	entities := make([]models.ReferenceEntity, 0, len(order))
	for _, player := range order {
		entities = append(entities, latest[player])
	}
	return entities, nil
}

func parseDate(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
