package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/jukebox/internal/server"
	"github.com/desertthunder/jukebox/internal/shared"
	"github.com/desertthunder/jukebox/internal/web"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 5 * time.Second

// Serve runs the HTML page, its event stream and the JSON API until ctx is cancelled.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	p, release, err := r.newPage(ctx)
	if err != nil {
		return err
	}
	defer release()

	pages := web.NewHandler(p, r.logger)
	srv := server.New(p, r.config.Server, r.logger, pages)
	srv.RegisterOnShutdown(pages.Shutdown)
	if addr := cmd.String("addr"); addr != "" {
		srv.Addr = addr
	}

	errs := make(chan error, 1)
	go func() {
		r.logger.Info("serving", "addr", srv.Addr)
		errs <- srv.ListenAndServe()
	}()

	if cmd.Bool("open") {
		url := fmt.Sprintf("http://%s/", srv.Addr)
		if err := shared.OpenBrowser(url); err != nil {
			r.logger.Warn("failed to open browser", "url", url, "err", err)
		}
	}

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	r.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
