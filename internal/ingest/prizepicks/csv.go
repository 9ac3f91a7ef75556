package prizepicks

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"proplines/internal/pkg/models"
)

// LoadOffersCSV reads line records from a sample-offers CSV file with the
// columns offer_id, player, team, opponent, stat_type, line, series_id,
// offer_time. Column order is free; unknown columns are ignored. Rows with an
// unparseable line value are skipped with a log line.
func LoadOffersCSV(path string) ([]models.LineRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open offers file: %w", err)
	}
	defer f.Close()
	return readOffers(f)
}

func readOffers(r io.Reader) ([]models.LineRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read offers header: %w", err)
	}
	cols := columnIndex(header)
	if _, ok := cols["player"]; !ok {
		return nil, fmt.Errorf("offers file has no player column")
	}

	var lines []models.LineRecord
	seen := make(map[string]bool)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read offers row: %w", err)
		}

		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		lineValue, err := strconv.ParseFloat(get("line"), 64)
		if err != nil {
			slog.Warn("skipping offer with bad line value", "player", get("player"), "line", get("line"))
			continue
		}

		rec := models.LineRecord{
			ID:        get("offer_id"),
			Player:    get("player"),
			Market:    string(models.StandardizeMarket(get("stat_type"))),
			Line:      lineValue,
			TeamHint:  get("team"),
			Opponent:  get("opponent"),
			SeriesID:  get("series_id"),
			OfferTime: parseOfferTime(get("offer_time")),
			Source:    sourceName,
		}

		dupKey := rec.ID
		if dupKey == "" {
			dupKey = rec.Player + "|" + rec.Market
		}
		if seen[dupKey] {
			continue
		}
		seen[dupKey] = true
		lines = append(lines, rec)
	}
	return lines, nil
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

func parseOfferTime(raw string) time.Time {
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
