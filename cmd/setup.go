package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spindle-fm/spindle/internal/catalog"
	"github.com/spindle-fm/spindle/internal/repositories"
	"github.com/spindle-fm/spindle/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup initializes the database, runs migrations, and imports the CSV
// catalog into SQLite so later runs can use catalog.source = "sqlite".
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}
	r.config = config
	r.configPath = configPath

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	src := catalog.CSVSource{
		Dir:       config.Catalog.Dir,
		SongsEN:   config.Catalog.SongsEN,
		SongsFA:   config.Catalog.SongsFA,
		ArtistsEN: config.Catalog.ArtistsEN,
		ArtistsFA: config.Catalog.ArtistsFA,
	}

	r.logger.Info("importing catalog", "dir", config.Catalog.Dir)
	if err := repositories.ImportCatalog(db, src); err != nil {
		return fmt.Errorf("failed to import catalog: %w", err)
	}

	songCount, err := repositories.NewSongRepository(db).Count()
	if err != nil {
		return fmt.Errorf("failed to count songs: %w", err)
	}
	artistCount, err := repositories.NewArtistRepository(db).Count()
	if err != nil {
		return fmt.Errorf("failed to count artists: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", config.Database.Path)

	r.writePlain("✓ Database ready at %s\n", config.Database.Path)
	r.writePlain("✓ Catalog imported: %d songs, %d artists\n", songCount, artistCount)
	r.writePlainln("Set catalog.source = \"sqlite\" in config.toml to serve from the database.")

	return nil
}
