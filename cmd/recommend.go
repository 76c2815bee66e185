package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spindle-fm/spindle/internal/formatter"
	"github.com/spindle-fm/spindle/internal/models"
	"github.com/spindle-fm/spindle/internal/shared"
	"github.com/urfave/cli/v3"
)

// splitFlag parses a comma-separated flag value, trimming whitespace and
// dropping empty entries.
func splitFlag(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Recommend samples recommendations for the requested genres, optionally
// boosting favorite artists and exporting the result.
func (r *Runner) Recommend(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.loadEngine()
	if err != nil {
		return err
	}

	genres := splitFlag(cmd.String("genres"))
	if len(genres) == 0 {
		return fmt.Errorf("%w: --genres must name at least one genre", shared.ErrMissingArgument)
	}
	for _, g := range genres {
		if !engine.KnownGenre(g) {
			return fmt.Errorf("%w: unknown genre %q", shared.ErrInvalidArgument, g)
		}
	}

	artists := splitFlag(cmd.String("artists"))
	for _, a := range artists {
		if !engine.KnownArtist(a) {
			return fmt.Errorf("%w: unknown artist %q", shared.ErrInvalidArgument, a)
		}
	}

	songType, err := models.ParseSongType(cmd.String("song-type"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}

	r.logger.Infof("sampling recommendations for genres %v", genres)

	songs := engine.Recommend(models.Preferences{Genres: genres, Artists: artists}, songType)
	list := &formatter.SongList{
		Title: fmt.Sprintf("Recommendations: %s", strings.Join(genres, ", ")),
		Songs: songs,
	}

	if export := cmd.String("export"); export != "" {
		return r.exportList(list, export, cmd.String("output"))
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, cmd.Bool("pretty"))
	}

	if len(songs) == 0 {
		return r.writePlain("No songs matched the requested genres.\n")
	}

	r.writePlain("Found %d recommendations:\n\n", len(songs))
	for i, song := range songs {
		r.writePlain("%d. %s - %s\n", i+1, song.Artist, song.Name)
		r.writePlain("   Genres: %s\n", strings.Join(song.Genres, ", "))
		if song.PreviewURL != nil {
			r.writePlain("   Preview: %s\n", *song.PreviewURL)
		}
		if song.DownloadURL != nil {
			r.writePlain("   Full: %s\n", *song.DownloadURL)
		}
	}

	return nil
}

// exportList writes the song list in the requested format.
func (r *Runner) exportList(list *formatter.SongList, format, output string) error {
	switch format {
	case "csv":
		result, err := formatter.WriteCSVExport(list, output)
		if err != nil {
			return fmt.Errorf("failed to export CSV: %w", err)
		}
		return r.writePlain("✓ Exported to %s\n", result.SongsFile)
	case "markdown":
		result, err := formatter.WriteMarkdownExport(list, output, "")
		if err != nil {
			return fmt.Errorf("failed to export Markdown: %w", err)
		}
		return r.writePlain("✓ Exported to %s\n", result.Directory)
	case "text":
		path, err := formatter.WriteTextExport(list, output)
		if err != nil {
			return fmt.Errorf("failed to export text: %w", err)
		}
		return r.writePlain("✓ Exported to %s\n", path)
	default:
		return fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, format)
	}
}
