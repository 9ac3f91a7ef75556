package vlrgg

import (
	"context"
	"fmt"

	"proplines/internal/pkg/models"
)

// Provider serves reference entities from a per-map stats CSV export.
type Provider struct {
	path string
}

func NewProvider(path string) *Provider {
	return &Provider{path: path}
}

func (p *Provider) References(ctx context.Context) ([]models.ReferenceEntity, error) {
	if p.path == "" {
		return nil, fmt.Errorf("no reference source configured: set ingest.player_maps_csv")
	}
	return LoadPlayerMapsCSV(p.path)
}
