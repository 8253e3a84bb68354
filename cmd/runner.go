package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jukebox/internal/catalog"
	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/page"
	"github.com/desertthunder/jukebox/internal/repositories"
	"github.com/desertthunder/jukebox/internal/shared"
	"github.com/desertthunder/jukebox/internal/transport"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	factory    transport.Factory
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A non-nil Config is used as is and the --config flag is ignored. Factory replaces the
// configured player backend.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Factory    transport.Factory
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		factory:    opts.Factory,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, catalogCommand, serveCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads the configuration named by --config. A missing file means defaults.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if r.config == nil {
		path := cmd.String("config")
		r.configPath = path

		if _, err := os.Stat(path); err == nil {
			config, err := shared.LoadConfig(path)
			if err != nil {
				return ctx, err
			}
			config.ResolveRelative(path)
			r.config = config
		} else {
			r.logger.Debug("config file not found, using defaults", "path", path)
			r.config = shared.DefaultConfig()
		}
	}

	level := r.config.Log.Level
	if override := cmd.String("log-level"); override != "" {
		level = override
	}
	shared.SetLogLevel(r.logger, shared.ParseLogLevel(level))

	return ctx, nil
}

// SetLogger replaces the runner's logger, e.g. to keep logs off a TUI's screen.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// openSongs opens the configured database and returns its song repository.
func (r *Runner) openSongs() (*repositories.SongRepository, *sql.DB, error) {
	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database %s: %w", r.config.Database.Path, err)
	}
	return repositories.NewSongRepository(db), db, nil
}

// newFetcher builds the catalog source named kind. The returned close function releases
// any database it opened.
func (r *Runner) newFetcher(kind string) (catalog.Fetcher, func(), error) {
	opts := catalog.SourceOpts{Client: r.httpClient}
	release := func() {}

	if kind == "db" {
		songs, db, err := r.openSongs()
		if err != nil {
			return nil, nil, err
		}
		opts.Songs = songs
		release = func() { db.Close() }
	}

	fetcher, err := catalog.NewSource(kind, opts)
	if err != nil {
		release()
		return nil, nil, err
	}
	return fetcher, release, nil
}

// newResource creates the catalog resource for the configured source.
func (r *Runner) newResource(cfg shared.CatalogConfig) (*catalog.Resource, func(), error) {
	fetcher, release, err := r.newFetcher(cfg.Source)
	if err != nil {
		return nil, nil, err
	}

	loc := models.Location{Root: cfg.Root, Path: cfg.Path}
	r.logger.Debug("catalog configured", "source", cfg.Source, "root", loc.Root, "path", loc.Path)

	resource := catalog.NewResource(fetcher, loc, r.logger)
	return resource, func() {
		resource.Close()
		release()
	}, nil
}

// newPage assembles the page with its catalog and player backend and starts loading.
func (r *Runner) newPage(ctx context.Context) (*page.Page, func(), error) {
	resource, releaseCatalog, err := r.newResource(r.config.Catalog)
	if err != nil {
		return nil, nil, err
	}

	factory := r.factory
	releasePlayer := func() {}
	if factory == nil {
		f, closer, err := transport.NewFactory(ctx, r.config.Player, r.logger)
		if err != nil {
			releaseCatalog()
			return nil, nil, err
		}
		factory = f
		releasePlayer = func() {
			if err := closer.Close(); err != nil {
				r.logger.Warn("failed to stop player", "err", err)
			}
		}
	}

	p := page.New(resource, factory, r.logger)
	p.Start()

	return p, func() {
		p.Close()
		releasePlayer()
		releaseCatalog()
	}, nil
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
