package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nexusaudio/nexus/internal/formatter"
	"github.com/nexusaudio/nexus/internal/models"
	"github.com/nexusaudio/nexus/internal/shared"
	"github.com/urfave/cli/v3"
)

// CatalogGenres lists genres with their sub-genres and track counts.
func (r *Runner) CatalogGenres(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, svc, err := r.openCatalog(config)
	if err != nil {
		return err
	}
	defer db.Close()

	genres, err := svc.ListGenresWithSubGenres(ctx)
	if err != nil {
		return fmt.Errorf("failed to list genres: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(genres, true)
	}
	return r.writeBytes(formatter.GenresToText(genres))
}

// CatalogStats shows the catalog aggregate.
func (r *Runner) CatalogStats(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, svc, err := r.openCatalog(config)
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := svc.Statistics(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch statistics: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(stats, true)
	}
	return r.writeBytes(formatter.StatisticsToText(stats))
}

// CatalogFeatured lists the most recently added tracks.
func (r *Runner) CatalogFeatured(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	limit := config.Catalog.FeaturedLimit
	if cmd.Int("limit") != 0 {
		limit = int(cmd.Int("limit"))
	}

	db, svc, err := r.openCatalog(config)
	if err != nil {
		return err
	}
	defer db.Close()

	tracks, err := svc.FeaturedTracks(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to fetch featured tracks: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, true)
	}
	return r.writeBytes(formatter.TracksToText(tracks))
}

// CatalogTrack shows a single track by id.
func (r *Runner) CatalogTrack(ctx context.Context, cmd *cli.Command) error {
	rawID := cmd.StringArg("id")
	if rawID == "" {
		return fmt.Errorf("%w: track id is required", shared.ErrMissingArgument)
	}

	trackID, err := strconv.Atoi(rawID)
	if err != nil {
		return fmt.Errorf("%w: track id must be numeric", shared.ErrInvalidArgument)
	}

	config := r.loadConfig(cmd)

	db, svc, err := r.openCatalog(config)
	if err != nil {
		return err
	}
	defer db.Close()

	track, err := svc.TrackByID(ctx, trackID)
	if err != nil {
		return fmt.Errorf("failed to fetch track: %w", err)
	}
	if track == nil {
		return fmt.Errorf("%w: no track with id %d", shared.ErrTrackNotFound, trackID)
	}

	return r.writeJSON(track, true)
}

// CatalogSearch searches tracks by keyword and filters.
func (r *Runner) CatalogSearch(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, svc, err := r.openCatalog(config)
	if err != nil {
		return err
	}
	defer db.Close()

	filters := models.SearchFilters{
		Keyword: cmd.StringArg("keyword"),
		GenreID: int(cmd.Int("genre-id")),
		MinBpm:  int(cmd.Int("min-bpm")),
		MaxBpm:  int(cmd.Int("max-bpm")),
	}

	tracks, err := svc.SearchTracks(ctx, filters)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if csvPath := cmd.String("csv"); csvPath != "" {
		written, err := formatter.WriteTracksCSV(tracks, csvPath)
		if err != nil {
			return err
		}
		return r.writePlain("Wrote %d tracks to %s\n", len(tracks), written)
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, true)
	}
	return r.writeBytes(formatter.TracksToText(tracks))
}
