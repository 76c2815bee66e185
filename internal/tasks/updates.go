package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	SampleGenre Phase = iota
	ExportGenre
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case SampleGenre:
		return "sample_genre"
	case ExportGenre:
		return "export_genre"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

func samplingUpdate(step, total int, genre string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SampleGenre,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Sampling: %s...", step, total, genre),
	}
}

func exportCompletedUpdate(step, total int, genre string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportGenre,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, genre, filesCount),
	}
}

func exportFailedUpdate(step, total int, genre string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportGenre,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, genre, err),
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing manifest: %s", path),
	}
}
