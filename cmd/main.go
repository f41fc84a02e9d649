package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/nexusaudio/nexus/internal/services"
	"github.com/nexusaudio/nexus/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	httpClient := &http.Client{
		Timeout: time.Duration(config.ITunes.RequestTimeoutMS) * time.Millisecond,
	}
	provider := services.NewITunesService(config.ITunes.BaseURL, httpClient)

	runner := NewRunner(RunnerOpts{
		Config:     config,
		Provider:   provider,
		HTTPClient: httpClient,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "nexus",
		Usage:    "Music licensing catalog service & browser",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
