package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spindle-fm/spindle/internal/models"
	"github.com/spindle-fm/spindle/internal/shared"
	"github.com/urfave/cli/v3"
)

// SearchArtists fuzzy-searches the catalog's artists.
func (r *Runner) SearchArtists(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: query argument is required", shared.ErrMissingArgument)
	}

	engine, err := r.loadEngine()
	if err != nil {
		return err
	}

	hits := engine.SearchArtists(query)

	if cmd.Bool("json") {
		return r.writeJSON(hits, cmd.Bool("pretty"))
	}

	if len(hits) == 0 {
		return r.writePlain("No artists matched %q.\n", query)
	}

	for i, hit := range hits {
		r.writePlain("%d. %s (id %d)\n", i+1, hit.Name, hit.ID)
	}
	return nil
}

// SearchSongs fuzzy-searches the catalog's songs.
func (r *Runner) SearchSongs(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: query argument is required", shared.ErrMissingArgument)
	}

	engine, err := r.loadEngine()
	if err != nil {
		return err
	}

	hits := engine.SearchSongs(query)

	if cmd.Bool("json") {
		return r.writeJSON(hits, cmd.Bool("pretty"))
	}

	if len(hits) == 0 {
		return r.writePlain("No songs matched %q.\n", query)
	}

	for i, hit := range hits {
		r.writePlain("%d. %s - %s (id %d)\n", i+1, hit.Artist, hit.Name, hit.ID)
	}
	return nil
}

// LookupSong fetches a single song by catalog id or external platform id.
func (r *Runner) LookupSong(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.loadEngine()
	if err != nil {
		return err
	}

	var song models.Song
	if ext := cmd.String("external-id"); ext != "" {
		song, err = engine.SongByExternalID(ext)
	} else if id := cmd.Int("id"); id >= 0 {
		song, err = engine.Song(id)
	} else {
		return fmt.Errorf("%w: either --id or --external-id is required", shared.ErrMissingArgument)
	}

	if err != nil {
		if errors.Is(err, shared.ErrSongNotFound) {
			return r.writePlain("Song not found.\n")
		}
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(song, cmd.Bool("pretty"))
	}

	r.writePlain("%s - %s\n", song.Artist, song.Name)
	r.writePlain("  ID: %d\n", song.ID)
	r.writePlain("  Genres: %s\n", strings.Join(song.Genres, ", "))
	if song.ExternalID != nil {
		r.writePlain("  External ID: %s\n", *song.ExternalID)
	}
	if song.ISRC != nil {
		r.writePlain("  ISRC: %s\n", *song.ISRC)
	}
	if song.PreviewURL != nil {
		r.writePlain("  Preview: %s\n", *song.PreviewURL)
	}
	if song.DownloadURL != nil {
		r.writePlain("  Full: %s\n", *song.DownloadURL)
	}
	return nil
}

// LookupArtist fetches a single artist by catalog id.
func (r *Runner) LookupArtist(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.loadEngine()
	if err != nil {
		return err
	}

	artist, err := engine.Artist(cmd.Int("id"))
	if err != nil {
		if errors.Is(err, shared.ErrArtistNotFound) {
			return r.writePlain("Artist not found.\n")
		}
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(artist, cmd.Bool("pretty"))
	}

	r.writePlain("%s\n", artist.Name)
	r.writePlain("  ID: %d\n", artist.ID)
	if artist.Description != "" {
		r.writePlain("  %s\n", artist.Description)
	}
	return nil
}

// Genres lists the genre universe, or the slice suggested for an age.
func (r *Runner) Genres(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.loadEngine()
	if err != nil {
		return err
	}

	age := cmd.Int("age")
	var genres []string
	if age >= 0 {
		if age > 100 {
			return fmt.Errorf("%w: age must be between 0 and 100", shared.ErrInvalidFlag)
		}
		genres = engine.GenresForAge(age)
	} else {
		genres = engine.GenreUniverse()
	}

	if cmd.Bool("json") {
		return r.writeJSON(genres, cmd.Bool("pretty"))
	}

	for _, g := range genres {
		r.writePlain("%s\n", g)
	}
	return nil
}
