package tasks

import (
	"github.com/spindle-fm/spindle/internal/recommender"
)

// ExportEngine runs batch exports over the recommendation engine.
type ExportEngine struct {
	engine *recommender.Recommender
}

// NewExportEngine creates a new ExportEngine over a ready recommender.
func NewExportEngine(engine *recommender.Recommender) *ExportEngine {
	return &ExportEngine{engine: engine}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *ExportEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}
