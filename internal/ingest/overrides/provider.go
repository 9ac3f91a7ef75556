package overrides

import "proplines/internal/pkg/models"

// Loader serves override records from an optional CSV file. A missing path
// just means no overrides.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

func (l *Loader) Overrides() ([]models.OverrideRecord, error) {
	if l.path == "" {
		return nil, nil
	}
	return LoadCSV(l.path)
}
