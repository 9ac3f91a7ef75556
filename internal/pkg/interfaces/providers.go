package interfaces

import (
	"context"

	"proplines/internal/pkg/models"
)

// LineProvider produces a finite, deduplicated sequence of line records.
// Implemented by the prizepicks adapter (HTTP or CSV backed).
type LineProvider interface {
	Lines(ctx context.Context) ([]models.LineRecord, error)
}

// ReferenceProvider produces a finite sequence of reference entities;
// entities may carry missing optional fields (opponent, match time).
type ReferenceProvider interface {
	References(ctx context.Context) ([]models.ReferenceEntity, error)
}

// OverrideLoader produces user-supplied correction records keyed by player
// name.
type OverrideLoader interface {
	Overrides() ([]models.OverrideRecord, error)
}

// DataSanitizer cleans raw records in place before resolution. Sanitizing
// never rejects a record; bad data degrades instead of failing the batch.
type DataSanitizer interface {
	SanitizeLine(line *models.LineRecord)
	SanitizeReference(ref *models.ReferenceEntity)
}
