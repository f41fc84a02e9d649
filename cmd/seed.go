package main

import (
	"context"
	"fmt"

	"github.com/nexusaudio/nexus/internal/catalog"
	"github.com/nexusaudio/nexus/internal/shared"
	"github.com/nexusaudio/nexus/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Seed populates the catalog from the external provider.
func (r *Runner) Seed(ctx context.Context, cmd *cli.Command) error {
	if r.provider == nil {
		return fmt.Errorf("%w: catalog provider not initialized", shared.ErrServiceUnavailable)
	}

	config := r.loadConfig(cmd)

	tracksPerSub := config.ITunes.TracksPerSub
	if cmd.Int("tracks-per-sub-genre") != 0 {
		tracksPerSub = int(cmd.Int("tracks-per-sub-genre"))
	}

	rateLimit := config.ITunes.RateLimit
	if cmd.Float("rate-limit") != 0 {
		rateLimit = cmd.Float("rate-limit")
	}

	db, _, err := r.openCatalog(config)
	if err != nil {
		return err
	}
	defer db.Close()

	r.logger.Info("ensuring schema is current")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	engine := tasks.NewSeedEngine(r.provider, catalog.NewImporter(db))

	prog := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range prog {
			r.logger.Info(update.Message, "phase", update.Phase.String())
		}
	}()

	result, err := engine.Run(ctx, prog, tasks.SeedOpts{
		TracksPerSub: tracksPerSub,
		NumWorkers:   int(cmd.Int("workers")),
		RateLimit:    rateLimit,
	})
	close(prog)
	<-done

	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	r.writePlain("Seeded %d tracks across %d sub-genres (%d failed)\n",
		result.TracksInserted, result.Succeeded, result.Failed)

	for _, res := range result.Results {
		if !res.Success {
			r.writePlain("  ✗ %s: %v\n", res.Name, res.Error)
		}
	}

	return nil
}
