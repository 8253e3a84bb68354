package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/jukebox/internal/formatter"
	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/shared"
	"github.com/urfave/cli/v3"
)

// CatalogList loads the catalog once and prints it.
func (r *Runner) CatalogList(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	if cmd.Bool("json") {
		format = "json"
	}

	songs, err := r.loadCatalog(ctx, cmd)
	if err != nil {
		return err
	}

	out, err := formatter.Format(format, songs, cmd.Bool("pretty"))
	if err != nil {
		return err
	}

	if _, err := r.output.Write(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// CatalogImport loads a catalog from a non-database source and makes it the database catalog.
func (r *Runner) CatalogImport(ctx context.Context, cmd *cli.Command) error {
	cfg := r.catalogConfig(cmd)
	if cfg.Source == "db" {
		return fmt.Errorf("%w: import needs a source other than db", shared.ErrInvalidFlag)
	}

	songs, err := r.loadCatalog(ctx, cmd)
	if err != nil {
		return err
	}

	repo, db, err := r.openSongs()
	if err != nil {
		return err
	}
	defer db.Close()

	persisted, err := repo.ReplaceAll(songs)
	if err != nil {
		return fmt.Errorf("failed to import catalog: %w", err)
	}

	r.logger.Info("catalog imported", "source", cfg.Source, "path", cfg.Path, "songs", len(persisted))
	return r.writePlain("✓ imported %d songs into %s\n", len(persisted), r.config.Database.Path)
}

// catalogConfig applies the --source and --path overrides to the configured catalog.
func (r *Runner) catalogConfig(cmd *cli.Command) shared.CatalogConfig {
	cfg := r.config.Catalog
	if source := cmd.String("source"); source != "" {
		cfg.Source = source
	}
	if path := cmd.String("path"); path != "" {
		cfg.Path = path
	}
	return cfg
}

// loadCatalog runs a single fetch through a catalog resource and returns its songs, or the
// classified failure.
func (r *Runner) loadCatalog(ctx context.Context, cmd *cli.Command) ([]models.Song, error) {
	resource, release, err := r.newResource(r.catalogConfig(cmd))
	if err != nil {
		return nil, err
	}
	defer release()

	if timeout := cmd.Duration("timeout"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	resource.Load()
	state, err := resource.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog still pending: %w", err)
	}

	if state.Status == models.Failed {
		return nil, fmt.Errorf("catalog failed (%s): %w", state.Kind, state.Err)
	}
	r.logger.Debug("catalog ready", "songs", len(state.Songs))
	return state.Songs, nil
}
