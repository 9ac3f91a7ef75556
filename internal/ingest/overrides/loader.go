package overrides

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"proplines/internal/pkg/models"
)

// LoadCSV reads user-supplied correction records. Expected columns: player,
// team, opponent, event, market, line; only player is required, every other
// cell may stay empty to leave that field untouched. Matching an override to
// a line uses the resolver's normalizer, so the player cell may be any
// spelling that normalizes to the same key.
func LoadCSV(path string) ([]models.OverrideRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open overrides file: %w", err)
	}
	defer f.Close()
	return read(f)
}

func read(r io.Reader) ([]models.OverrideRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read overrides header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["player"]; !ok {
		return nil, fmt.Errorf("overrides file has no player column")
	}

	var records []models.OverrideRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read overrides row: %w", err)
		}

		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		rec := models.OverrideRecord{
			Player:   get("player"),
			Team:     get("team"),
			Opponent: get("opponent"),
			Event:    get("event"),
			Market:   get("market"),
		}
		if rec.Player == "" {
			slog.Warn("skipping override row with empty player name")
			continue
		}
		if raw := get("line"); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				slog.Warn("skipping override with bad line value", "player", rec.Player, "line", raw)
				continue
			}
			rec.Line = &v
		}
		records = append(records, rec)
	}
	return records, nil
}
