package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nexusaudio/nexus/internal/models"
	"github.com/nexusaudio/nexus/internal/shared"
)

// Importer holds the seed-time write path of the catalog. The query service
// itself is read-only; only the offline seeding pipeline writes tracks.
type Importer struct {
	db *sql.DB
}

// NewImporter creates an Importer over the given database connection.
func NewImporter(db *sql.DB) *Importer {
	return &Importer{db: db}
}

// InsertTrack inserts a single track and returns its generated id.
// The sub-genre must exist; prices must be non-negative.
func (im *Importer) InsertTrack(ctx context.Context, track *models.Track) (int, error) {
	if err := validateTrack(track); err != nil {
		return 0, err
	}

	query := `
		INSERT INTO tracks (sub_genre_id, title, artist, bpm, duration_sec,
			price_basic_cents, price_pro_cents, price_stems_cents,
			itunes_track_id, preview_url, artwork_url_small, artwork_url_large,
			collection_name, release_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := im.db.ExecContext(ctx, query,
		track.SubGenreID, track.Title, track.Artist, track.Bpm, track.DurationSec,
		track.PriceBasic.Cents(), track.PricePro.Cents(), track.PriceStems.Cents(),
		track.ITunesTrackID, track.PreviewURL, track.ArtworkURLSmall, track.ArtworkURLLarge,
		track.CollectionName, track.ReleaseDate)
	if err != nil {
		return 0, fmt.Errorf("%w: insert track: %v", shared.ErrDataAccess, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: track id: %v", shared.ErrDataAccess, err)
	}

	track.ID = int(id)
	return int(id), nil
}

// InsertTracks inserts a batch of tracks in one transaction. Either the whole
// batch lands or none of it does.
func (im *Importer) InsertTracks(ctx context.Context, tracks []*models.Track) error {
	for _, track := range tracks {
		if err := validateTrack(track); err != nil {
			return err
		}
	}

	tx, err := im.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin batch insert: %v", shared.ErrDataAccess, err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO tracks (sub_genre_id, title, artist, bpm, duration_sec,
			price_basic_cents, price_pro_cents, price_stems_cents,
			itunes_track_id, preview_url, artwork_url_small, artwork_url_large,
			collection_name, release_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("%w: prepare batch insert: %v", shared.ErrDataAccess, err)
	}
	defer stmt.Close()

	for _, track := range tracks {
		result, err := stmt.ExecContext(ctx,
			track.SubGenreID, track.Title, track.Artist, track.Bpm, track.DurationSec,
			track.PriceBasic.Cents(), track.PricePro.Cents(), track.PriceStems.Cents(),
			track.ITunesTrackID, track.PreviewURL, track.ArtworkURLSmall, track.ArtworkURLLarge,
			track.CollectionName, track.ReleaseDate)
		if err != nil {
			return fmt.Errorf("%w: insert track %q: %v", shared.ErrDataAccess, track.Title, err)
		}
		if id, err := result.LastInsertId(); err == nil {
			track.ID = int(id)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit batch insert: %v", shared.ErrDataAccess, err)
	}

	return nil
}

// validateTrack checks the fields every inserted track must carry.
func validateTrack(track *models.Track) error {
	if track.SubGenreID <= 0 {
		return fmt.Errorf("%w: track requires a sub-genre", shared.ErrInvalidInput)
	}
	if track.Title == "" {
		return fmt.Errorf("%w: track requires a title", shared.ErrInvalidInput)
	}
	if track.Artist == "" {
		return fmt.Errorf("%w: track requires an artist", shared.ErrInvalidInput)
	}
	if track.Bpm < 0 {
		return fmt.Errorf("%w: bpm must not be negative", shared.ErrInvalidInput)
	}
	if track.PriceBasic < 0 || track.PricePro < 0 || track.PriceStems < 0 {
		return fmt.Errorf("%w: prices must not be negative", shared.ErrInvalidInput)
	}
	return nil
}
