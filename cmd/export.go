package main

import (
	"context"
	"fmt"

	"github.com/spindle-fm/spindle/internal/models"
	"github.com/spindle-fm/spindle/internal/shared"
	"github.com/spindle-fm/spindle/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export runs a concurrent per-genre batch export and streams progress to
// the output while workers write files.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.loadEngine()
	if err != nil {
		return err
	}

	format := cmd.String("format")
	switch format {
	case "json", "csv", "markdown", "txt":
	default:
		return fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, format)
	}

	songType, err := models.ParseSongType(cmd.String("song-type"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}

	genres := splitFlag(cmd.String("genres"))
	opts := tasks.BulkExportOpts{
		Format:     format,
		OutputDir:  cmd.String("output"),
		NumWorkers: cmd.Int("workers"),
		SongType:   songType,
	}

	prog := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range prog {
			r.writePlain("%s\n", update.Message)
		}
	}()

	exporter := tasks.NewExportEngine(engine)
	result, err := exporter.BulkExport(ctx, prog, genres, opts)
	close(prog)
	<-done
	if err != nil {
		return err
	}

	r.writePlainln("Exported %d/%d genres to %s",
		result.SuccessfulExports, result.TotalGenres, result.OutputDirectory)
	if result.FailedExports > 0 {
		r.writePlain("%d genres failed; see %s for details.\n",
			result.FailedExports, result.ManifestPath)
	}

	return nil
}
