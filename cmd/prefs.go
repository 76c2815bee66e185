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

// Prefs reads a platform's recent listening activity and infers genre and
// artist preferences from its overlap with the catalog. With --recommend it
// continues straight into sampling recommendations.
func (r *Runner) Prefs(ctx context.Context, cmd *cli.Command) error {
	name := cmd.String("platform")

	platform, err := r.platform(name)
	if err != nil {
		return err
	}

	var token string
	switch name {
	case "spotify":
		token = r.config.Credentials.Spotify.AccessToken
	case "genius":
		token = r.config.Credentials.Genius.AccessToken
	}
	if token == "" {
		return fmt.Errorf("%w: run `spindle auth %s` first", shared.ErrNotAuthenticated, name)
	}

	if err := platform.Authenticate(ctx, map[string]string{"access_token": token}); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	r.logger.Infof("fetching recent listening activity from %v", platform.Name())

	activity, err := platform.Recent(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	engine, err := r.loadEngine()
	if err != nil {
		return err
	}

	prefs, err := engine.InferPreferences(activity)
	if err != nil {
		if errors.Is(err, shared.ErrInsufficientData) {
			return r.writePlain("Not enough overlap with the catalog to infer preferences.\n")
		}
		return err
	}

	if cmd.Bool("recommend") {
		songType, err := models.ParseSongType(cmd.String("song-type"))
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
		}

		songs := engine.Recommend(prefs, songType)
		if cmd.Bool("json") {
			return r.writeJSON(songs, cmd.Bool("pretty"))
		}

		r.writePlain("Inferred genres: %s\n", strings.Join(prefs.Genres, ", "))
		if len(prefs.Artists) > 0 {
			r.writePlain("Inferred artists: %s\n", strings.Join(prefs.Artists, ", "))
		}
		r.writePlain("\nFound %d recommendations:\n\n", len(songs))
		for i, song := range songs {
			r.writePlain("%d. %s - %s\n", i+1, song.Artist, song.Name)
		}
		return nil
	}

	if cmd.Bool("json") {
		return r.writeJSON(prefs, cmd.Bool("pretty"))
	}

	r.writePlain("Genres: %s\n", strings.Join(prefs.Genres, ", "))
	r.writePlain("Artists: %s\n", strings.Join(prefs.Artists, ", "))
	return nil
}
