package models

import "time"

// ReferenceEntity represents one player row from the match/roster reference
// source (upcoming match metadata for a rostered player). Immutable.
type ReferenceEntity struct {
	Player    string    `json:"player"`
	Team      string    `json:"team"`
	Event     string    `json:"event"`
	Opponent  string    `json:"opponent,omitempty"`
	MatchTime time.Time `json:"match_time"`
	Role      string    `json:"role,omitempty"`
	Source    string    `json:"source"`
}

// OverrideRecord is a user-supplied correction keyed by player name.
// Non-empty fields take precedence over both automated sources.
type OverrideRecord struct {
	Player   string   `json:"player"`
	Team     string   `json:"team,omitempty"`
	Opponent string   `json:"opponent,omitempty"`
	Event    string   `json:"event,omitempty"`
	Market   string   `json:"market,omitempty"`
	Line     *float64 `json:"line,omitempty"`
}
