package performance

import (
	"log/slog"
	"sync"
	"time"
)

// Tracker collects timings for the stages of a resolution run.
type Tracker struct {
	mu sync.Mutex

	started time.Time
	stages  []stageTiming

	// Counters filled in at the end of the run.
	Lines      int
	References int
	Matched    int
	Unmatched  int
}

type stageTiming struct {
	name     string
	duration time.Duration
}

func NewTracker() *Tracker {
	return &Tracker{started: time.Now()}
}

// Stage times fn and records it under name.
func (t *Tracker) Stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()

	t.mu.Lock()
	t.stages = append(t.stages, stageTiming{name: name, duration: time.Since(start)})
	t.mu.Unlock()
	return err
}

// RecordCounts stores the run totals for the summary.
func (t *Tracker) RecordCounts(lines, references, matched, unmatched int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Lines = lines
	t.References = references
	t.Matched = matched
	t.Unmatched = unmatched
}

// PrintSummary logs per-stage timings and run totals.
func (t *Tracker) PrintSummary() {
	t.mu.Lock()
	defer t.mu.Unlock()

	total := time.Since(t.started)
	for _, s := range t.stages {
		percent := 0.0
		if total > 0 {
			percent = float64(s.duration) / float64(total) * 100
		}
		slog.Info("Stage timing", "stage", s.name, "duration", s.duration, "percent", percent)
	}
	slog.Info("Run timing",
		"total", total,
		"lines", t.Lines,
		"references", t.References,
		"matched", t.Matched,
		"unmatched", t.Unmatched)
}
