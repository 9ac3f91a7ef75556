package prizepicks

import (
	"strings"
	"testing"
)

func TestParseProjections(t *testing.T) {
	body := []byte(`{
		"data": [
			{
				"id": "101",
				"type": "projection",
				"attributes": {"line_score": 14.5, "stat_type": "Kills", "description": "vs 100T", "board_time": "2026-09-01T18:00:00Z"},
				"relationships": {"new_player": {"data": {"id": "p1", "type": "new_player"}}}
			},
			{
				"id": "102",
				"type": "projection",
				"attributes": {"line_score": 31.5, "stat_type": "Kills on Maps 1+2", "description": "@ FNC"},
				"relationships": {"new_player": {"data": {"id": "p1", "type": "new_player"}}}
			},
			{
				"id": "103",
				"type": "projection",
				"attributes": {"line_score": 9.5, "stat_type": "Kills"},
				"relationships": {"new_player": {"data": {"id": "missing", "type": "new_player"}}}
			}
		],
		"included": [
			{"id": "p1", "type": "new_player", "attributes": {"name": "TenZ", "team": "SEN"}}
		]
	}`)

	lines, err := ParseProjections(body)
	if err != nil {
		t.Fatalf("ParseProjections: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2 (projection without player skipped)", len(lines))
	}

	first := lines[0]
	if first.Player != "TenZ" || first.Market != "kills" || first.Line != 14.5 {
		t.Errorf("first line wrong: %+v", first)
	}
	if first.TeamHint != "SEN" || first.Opponent != "100T" {
		t.Errorf("team/opponent wrong: %+v", first)
	}
	if first.OfferTime.IsZero() {
		t.Errorf("board time should be parsed")
	}

	if lines[1].Market != "kills_maps_1_2" || lines[1].Opponent != "FNC" {
		t.Errorf("second line wrong: %+v", lines[1])
	}
}

func TestParseProjections_Duplicates(t *testing.T) {
	body := []byte(`{
		"data": [
			{"id": "1", "attributes": {"line_score": 14.5, "stat_type": "Kills"}, "relationships": {"new_player": {"data": {"id": "p1"}}}},
			{"id": "2", "attributes": {"line_score": 15.5, "stat_type": "Kills"}, "relationships": {"new_player": {"data": {"id": "p1"}}}}
		],
		"included": [{"id": "p1", "type": "new_player", "attributes": {"name": "Derke", "team": "FNC"}}]
	}`)

	lines, err := ParseProjections(body)
	if err != nil {
		t.Fatalf("ParseProjections: %v", err)
	}
	if len(lines) != 1 || lines[0].Line != 14.5 {
		t.Errorf("duplicate player+market should keep the first line, got %+v", lines)
	}
}

func TestParseProjections_BadPayload(t *testing.T) {
	if _, err := ParseProjections([]byte("not json")); err == nil {
		t.Fatalf("malformed payload must return an error")
	}
}

func TestReadOffers(t *testing.T) {
	csvBody := `offer_id,player,team,opponent,stat_type,line,series_id,offer_time
o1,TenZ,SEN,100T,Kills,14.5,s1,2026-09-01T18:00:00Z
o2,Derke,FNC,TL,Headshots,8.5,s2,
o2,Derke,FNC,TL,Headshots,8.5,s2,
bad,NoLine,SEN,100T,Kills,,s3,
`
	lines, err := readOffers(strings.NewReader(csvBody))
	if err != nil {
		t.Fatalf("readOffers: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2 (duplicate and bad row dropped)", len(lines))
	}
	if lines[0].Player != "TenZ" || lines[0].Line != 14.5 || lines[0].Market != "kills" {
		t.Errorf("first offer wrong: %+v", lines[0])
	}
	if lines[1].Market != "headshots" {
		t.Errorf("stat type should be standardized, got %q", lines[1].Market)
	}
}

func TestReadOffers_MissingPlayerColumn(t *testing.T) {
	_, err := readOffers(strings.NewReader("a,b\n1,2\n"))
	if err == nil {
		t.Fatalf("missing player column must be an error")
	}
}
