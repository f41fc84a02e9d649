package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nexusaudio/nexus/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the catalog HTTP API until the context is cancelled.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	port := config.Server.Port
	if cmd.Int("port") != 0 {
		port = int(cmd.Int("port"))
	}

	db, svc, err := r.openCatalog(config)
	if err != nil {
		return err
	}
	defer db.Close()

	router := server.NewRouter(svc, r.logger)

	addr := fmt.Sprintf("%s:%d", config.Server.Host, port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	r.logger.Info("catalog API listening", "addr", addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
