package prizepicks

// Projections API response, JSON:API shaped: projection resources reference
// player resources listed under "included".
type projectionsResponse struct {
	Data     []projectionResource `json:"data"`
	Included []includedResource   `json:"included"`
}

type projectionResource struct {
	ID         string                `json:"id"`
	Type       string                `json:"type"`
	Attributes projectionAttributes  `json:"attributes"`
	Relations  projectionRelationMap `json:"relationships"`
}

type projectionAttributes struct {
	LineScore   float64 `json:"line_score"`
	StatType    string  `json:"stat_type"`
	Description string  `json:"description"` // opponent description, e.g. "vs 100T"
	BoardTime   string  `json:"board_time"`
}

type projectionRelationMap struct {
	NewPlayer relationRef `json:"new_player"`
}

type relationRef struct {
	Data relationData `json:"data"`
}

type relationData struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type includedResource struct {
	ID         string           `json:"id"`
	Type       string           `json:"type"`
	Attributes playerAttributes `json:"attributes"`
}

type playerAttributes struct {
	Name string `json:"name"`
	Team string `json:"team"`
}
