package prizepicks

import (
	"context"
	"fmt"
	"log/slog"

	"proplines/internal/pkg/config"
	"proplines/internal/pkg/models"
)

// Provider serves line records from the projections API when a base URL is
// configured, otherwise from a CSV snapshot.
type Provider struct {
	cfg config.IngestConfig
}

func NewProvider(cfg config.IngestConfig) *Provider {
	return &Provider{cfg: cfg}
}

func (p *Provider) Lines(ctx context.Context) ([]models.LineRecord, error) {
	if p.cfg.PrizePicks.BaseURL != "" {
		client := NewHTTPClient(&p.cfg.PrizePicks)
		body, err := client.GetProjections(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch projections: %w", err)
		}
		lines, err := ParseProjections(body)
		if err != nil {
			return nil, err
		}
		slog.Info("Fetched projections", "source", sourceName, "count", len(lines))
		return lines, nil
	}

	if p.cfg.OffersCSV == "" {
		return nil, fmt.Errorf("no line source configured: set ingest.prizepicks.base_url or ingest.offers_csv")
	}
	return LoadOffersCSV(p.cfg.OffersCSV)
}
