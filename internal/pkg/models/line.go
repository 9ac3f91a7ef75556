package models

import (
	"strings"
	"time"
)

// LineRecord represents one player prop line from the line provider.
// Immutable once created by the ingest adapter.
type LineRecord struct {
	ID        string    `json:"id"`
	Player    string    `json:"player"`
	Market    string    `json:"market"` // StandardMarketType key
	Line      float64   `json:"line"`
	TeamHint  string    `json:"team_hint,omitempty"`
	Opponent  string    `json:"opponent,omitempty"`
	SeriesID  string    `json:"series_id,omitempty"`
	OfferTime time.Time `json:"offer_time"`
	Source    string    `json:"source"`
}

// StandardMarketType represents standardized prop market types across providers
type StandardMarketType string

const (
	MarketKills       StandardMarketType = "kills"
	MarketHeadshots   StandardMarketType = "headshots"
	MarketAssists     StandardMarketType = "assists"
	MarketDeaths      StandardMarketType = "deaths"
	MarketFirstBloods StandardMarketType = "first_bloods"
	MarketKillsMap12  StandardMarketType = "kills_maps_1_2"
	MarketKillsMap3   StandardMarketType = "kills_map_3"
	MarketUnknown     StandardMarketType = "unknown"
)

// marketAliases maps raw provider stat labels to standard market types.
var marketAliases = map[string]StandardMarketType{
	"kills":               MarketKills,
	"kills on maps 1+2":   MarketKillsMap12,
	"kills on maps 1-2":   MarketKillsMap12,
	"maps 1-2 kills":      MarketKillsMap12,
	"kills on map 3":      MarketKillsMap3,
	"headshots":           MarketHeadshots,
	"headshots on maps 1+2": MarketHeadshots,
	"assists":             MarketAssists,
	"deaths":              MarketDeaths,
	"first bloods":        MarketFirstBloods,
	"fantasy score":       MarketUnknown,
}

func normalizeMarketKey(raw string) string {
	return strings.ToLower(strings.Join(strings.Fields(raw), " "))
}

// StandardizeMarket converts a raw provider stat label into a StandardMarketType.
// Unrecognized labels map to MarketUnknown rather than failing.
func StandardizeMarket(raw string) StandardMarketType {
	key := normalizeMarketKey(raw)
	if m, ok := marketAliases[key]; ok {
		return m
	}
	return MarketUnknown
}

// GetMarketName returns a human-readable name for a standard market type
func GetMarketName(market StandardMarketType) string {
	switch market {
	case MarketKills:
		return "Kills"
	case MarketHeadshots:
		return "Headshots"
	case MarketAssists:
		return "Assists"
	case MarketDeaths:
		return "Deaths"
	case MarketFirstBloods:
		return "First Bloods"
	case MarketKillsMap12:
		return "Kills on Maps 1+2"
	case MarketKillsMap3:
		return "Kills on Map 3"
	default:
		return "Unknown Market"
	}
}
