package validation

import (
	"regexp"
	"strings"

	"proplines/internal/pkg/interfaces"
	"proplines/internal/pkg/models"
)

// Sanitizer implements data sanitization for incoming raw records
type Sanitizer struct{}

// NewSanitizer creates a new sanitizer
func NewSanitizer() interfaces.DataSanitizer {
	return &Sanitizer{}
}

// SanitizeLine cleans a line record in place. Cleaning never rejects the
// record: a garbage name normalizes to an empty key downstream and simply
// never matches.
func (s *Sanitizer) SanitizeLine(line *models.LineRecord) {
	if line == nil {
		return
	}
	line.ID = sanitizeString(line.ID)
	line.Player = sanitizeName(line.Player)
	line.Market = strings.ToLower(strings.TrimSpace(line.Market))
	line.TeamHint = sanitizeName(line.TeamHint)
	line.Opponent = sanitizeName(line.Opponent)
	line.SeriesID = sanitizeString(line.SeriesID)

	// Prop lines outside this range are provider glitches.
	if line.Line < 0 {
		line.Line = 0
	}
	if line.Line > 500 {
		line.Line = 500
	}
}

// SanitizeReference cleans a reference entity in place.
func (s *Sanitizer) SanitizeReference(ref *models.ReferenceEntity) {
	if ref == nil {
		return
	}
	ref.Player = sanitizeName(ref.Player)
	ref.Team = sanitizeName(ref.Team)
	ref.Event = sanitizeName(ref.Event)
	ref.Opponent = sanitizeName(ref.Opponent)
	ref.Role = strings.ToLower(strings.TrimSpace(ref.Role))
}

var (
	controlChars = regexp.MustCompile(`[\x00-\x1F\x7F]`)
	multiSpace   = regexp.MustCompile(`\s+`)
)

func sanitizeString(str string) string {
	sanitized := controlChars.ReplaceAllString(strings.TrimSpace(str), "")
	if len(sanitized) > 200 {
		sanitized = sanitized[:200]
	}
	return sanitized
}

func sanitizeName(name string) string {
	sanitized := controlChars.ReplaceAllString(strings.TrimSpace(name), "")
	sanitized = multiSpace.ReplaceAllString(sanitized, " ")
	if len(sanitized) > 100 {
		sanitized = sanitized[:100]
	}
	return sanitized
}
