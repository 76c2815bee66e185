package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spindle-fm/spindle/internal/catalog"
	"github.com/spindle-fm/spindle/internal/recommender"
	"github.com/spindle-fm/spindle/internal/repositories"
	"github.com/spindle-fm/spindle/internal/services"
	"github.com/spindle-fm/spindle/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
	engine     *recommender.Recommender
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Engine is optional: when nil, the engine is built lazily from the
// configured catalog source the first time a command needs it.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
	Engine     *recommender.Recommender
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
		engine:     opts.Engine,
	}
}

// SetLogger swaps the runner's logger. The TUI uses this to redirect logs to
// a file so they don't corrupt the rendered frames.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, serveCommand, recommendCommand, exportCommand, searchCommand, lookupCommand, genresCommand, authCommand, prefsCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadEngine builds the recommendation engine from the configured catalog
// source, caching it for later commands in the same process.
func (r *Runner) loadEngine() (*recommender.Recommender, error) {
	if r.engine != nil {
		return r.engine, nil
	}

	src, cleanup, err := r.catalogSource()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	store, err := catalog.New(src, r.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	r.engine = recommender.New(store, r.logger,
		recommender.WithSizes(r.config.Recommend.SampleSize, r.config.Recommend.ResultSize))

	return r.engine, nil
}

// catalogSource resolves the configured catalog backend. The cleanup func
// releases any underlying handle once the catalog has been loaded.
func (r *Runner) catalogSource() (catalog.Source, func(), error) {
	switch r.config.Catalog.Source {
	case "sqlite":
		db, err := shared.NewDatabase(r.config.Database.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
		return repositories.NewSQLiteSource(db), func() { db.Close() }, nil
	case "", "csv":
		c := r.config.Catalog
		return catalog.CSVSource{
			Dir:       c.Dir,
			SongsEN:   c.SongsEN,
			SongsFA:   c.SongsFA,
			ArtistsEN: c.ArtistsEN,
			ArtistsFA: c.ArtistsFA,
		}, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown catalog source %q", shared.ErrInvalidConfig, r.config.Catalog.Source)
	}
}

// platform builds the named listening platform from configured credentials.
// Doubles as the [server.PlatformFactory] for the HTTP API.
func (r *Runner) platform(name string) (services.Platform, error) {
	switch name {
	case "spotify":
		var tags services.TagSource
		if r.config.Credentials.LastFM.APIKey != "" {
			lf, err := services.NewLastFMService(r.config.Credentials.LastFM)
			if err != nil {
				return nil, err
			}
			tags = lf
		}
		return services.NewSpotifyService(r.config.Credentials.Spotify.Map(), tags)
	case "genius":
		return services.NewGeniusService(r.config.Credentials.Genius.Map())
	default:
		return nil, fmt.Errorf("%w: unknown platform %q", shared.ErrInvalidArgument, name)
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
