package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spindle-fm/spindle/internal/formatter"
	"github.com/spindle-fm/spindle/internal/models"
	"github.com/spindle-fm/spindle/internal/shared"
)

// BulkExportOpts contains configuration for per-genre batch exports.
type BulkExportOpts struct {
	Format     string          // Export format: json, csv, markdown, txt
	OutputDir  string          // Base output directory (default: spindle_export_{epoch})
	NumWorkers int             // Concurrent workers (default: 5)
	SongType   models.SongType // Audio availability filter (default: any)
}

// GenreExportJob carries one sampled genre to the export workers.
type GenreExportJob struct {
	Genre string
	Songs []models.Song
}

// GenreExportResult is the outcome of exporting a single genre.
type GenreExportResult struct {
	Genre   string   `json:"genre"`
	Success bool     `json:"success"`
	Files   []string `json:"files,omitempty"`
	Error   error    `json:"-"`
}

// BulkExportResult summarizes a complete batch export.
type BulkExportResult struct {
	TotalGenres       int                 `json:"total_genres"`
	SuccessfulExports int                 `json:"successful_exports"`
	FailedExports     int                 `json:"failed_exports"`
	OutputDirectory   string              `json:"output_directory"`
	ManifestPath      string              `json:"-"`
	Results           []GenreExportResult `json:"results"`
}

// BulkExport samples recommendations for each genre and exports them
// concurrently with progress tracking.
//
// This method implements a worker pool pattern: the producer samples each
// genre's batch in order, workers write files in parallel. Partial failures
// are recorded per genre, and a manifest file summarizes the run.
func (e *ExportEngine) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	genres []string,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if e.engine == nil {
		return nil, fmt.Errorf("%w: recommendation engine not initialized", shared.ErrServiceUnavailable)
	}

	if len(genres) == 0 {
		genres = e.engine.GenreUniverse()
	}
	for _, g := range genres {
		if !e.engine.KnownGenre(g) {
			return nil, fmt.Errorf("%w: unknown genre %q", shared.ErrInvalidArgument, g)
		}
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("spindle_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.SongType == "" {
		opts.SongType = models.SongTypeAny
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalGenres:     len(genres),
		OutputDirectory: opts.OutputDir,
		Results:         make([]GenreExportResult, 0, len(genres)),
	}

	jobs := make(chan GenreExportJob, len(genres))
	results := make(chan GenreExportResult, len(genres))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		for i, genre := range genres {
			select {
			case <-ctx.Done():
				close(jobs)
				return
			default:
			}

			e.sendProgress(prog, samplingUpdate(i+1, len(genres), genre))

			songs := e.engine.Recommend(models.Preferences{Genres: []string{genre}}, opts.SongType)
			jobs <- GenreExportJob{Genre: genre, Songs: songs}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(genres), res.Genre, len(res.Files)))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(genres), res.Genre, res.Error))
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	e.sendProgress(prog, manifestUpdate(manifestPath))
	if err := writeManifest(result, opts.Format, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker is a worker goroutine that exports genre batches from the jobs channel.
func (e *ExportEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan GenreExportJob,
	results chan<- GenreExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- exportSingleGenre(job, opts)
	}
}

// exportSingleGenre writes one genre's batch in the requested format.
func exportSingleGenre(j GenreExportJob, opts BulkExportOpts) GenreExportResult {
	result := GenreExportResult{
		Genre:   j.Genre,
		Success: false,
		Files:   []string{},
	}

	list := &formatter.SongList{
		Title: fmt.Sprintf("Recommendations: %s", j.Genre),
		Songs: j.Songs,
	}

	switch opts.Format {
	case "csv":
		baseFilepath := filepath.Join(opts.OutputDir, j.Genre)
		csvRes, err := formatter.WriteCSVExport(list, baseFilepath)
		if err != nil {
			result.Error = fmt.Errorf("CSV export failed: %w", err)
			return result
		}
		result.Files = []string{csvRes.SongsFile}
		result.Success = true

	case "markdown":
		outputDir := filepath.Join(opts.OutputDir, j.Genre)
		mdRes, err := formatter.WriteMarkdownExport(list, outputDir, "")
		if err != nil {
			result.Error = fmt.Errorf("markdown export failed: %w", err)
			return result
		}
		result.Files = mdRes.Files
		result.Success = true

	case "txt":
		txtPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_songs.txt", j.Genre))
		path, err := formatter.WriteTextExport(list, txtPath)
		if err != nil {
			result.Error = fmt.Errorf("text export failed: %w", err)
			return result
		}
		result.Files = []string{path}
		result.Success = true

	case "json":
		fallthrough
	default:
		jsonPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s.json", j.Genre))
		data, err := formatter.ToJSON(list)
		if err != nil {
			result.Error = fmt.Errorf("JSON marshal failed: %w", err)
			return result
		}
		if err := os.WriteFile(jsonPath, data, 0644); err != nil {
			result.Error = fmt.Errorf("JSON write failed: %w", err)
			return result
		}
		result.Files = []string{jsonPath}
		result.Success = true
	}
	return result
}

// manifest is the export_manifest.json document.
type manifest struct {
	Format     string            `json:"format"`
	ExportedAt string            `json:"exported_at"`
	Summary    *BulkExportResult `json:"summary"`
	Errors     map[string]string `json:"errors,omitempty"`
}

func writeManifest(result *BulkExportResult, format, path string) error {
	if format == "" {
		format = "json"
	}

	doc := manifest{
		Format:     format,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Summary:    result,
	}
	for _, res := range result.Results {
		if res.Error != nil {
			if doc.Errors == nil {
				doc.Errors = make(map[string]string)
			}
			doc.Errors[res.Genre] = res.Error.Error()
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}
