package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/nexusaudio/nexus/internal/models"
	"github.com/nexusaudio/nexus/internal/shared"
)

// FeaturedLimitMax bounds the limit accepted by [Service.FeaturedTracks].
const FeaturedLimitMax = 100

// trackColumns is the column list every track query selects, in scanTrack order.
const trackColumns = `id, sub_genre_id, title, artist, bpm, duration_sec,
	price_basic_cents, price_pro_cents, price_stems_cents,
	itunes_track_id, preview_url, artwork_url_small, artwork_url_large,
	collection_name, release_date`

// Service provides read access to the catalog.
type Service struct {
	db *sql.DB
}

// NewService creates a catalog Service over the given database connection.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// ListGenres retrieves all genres in insertion order.
func (s *Service) ListGenres(ctx context.Context) ([]models.Genre, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, slug, description FROM genres ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("%w: query genres: %v", shared.ErrDataAccess, err)
	}
	defer rows.Close()

	genres := []models.Genre{}
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug, &g.Description); err != nil {
			return nil, fmt.Errorf("%w: scan genre: %v", shared.ErrDataAccess, err)
		}
		genres = append(genres, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate genres: %v", shared.ErrDataAccess, err)
	}

	return genres, nil
}

// ListGenresWithSubGenres retrieves every genre with its sub-genres and
// per-sub-genre track counts attached.
//
// The join yields one flat row per (genre, sub-genre) pair; a genre without
// sub-genres yields a single row with null sub-genre columns. Rows are grouped
// by genre id preserving first-seen order, so the output never contains a
// duplicate genre and child order follows row order.
func (s *Service) ListGenresWithSubGenres(ctx context.Context) ([]models.GenreWithSubGenres, error) {
	query := `
		SELECT g.id, g.name, g.slug, g.description,
			sg.id, sg.name, sg.slug, sg.description,
			(SELECT COUNT(*) FROM tracks t WHERE t.sub_genre_id = sg.id)
		FROM genres g
		LEFT JOIN sub_genres sg ON sg.genre_id = g.id
		ORDER BY g.id, sg.id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: query genres with sub-genres: %v", shared.ErrDataAccess, err)
	}
	defer rows.Close()

	grouped := []models.GenreWithSubGenres{}
	index := map[int]int{} // genre id -> position in grouped

	for rows.Next() {
		var g models.Genre
		var subID, trackCount sql.NullInt64
		var subName, subSlug, subDesc sql.NullString

		err := rows.Scan(&g.ID, &g.Name, &g.Slug, &g.Description,
			&subID, &subName, &subSlug, &subDesc, &trackCount)
		if err != nil {
			return nil, fmt.Errorf("%w: scan genre row: %v", shared.ErrDataAccess, err)
		}

		pos, seen := index[g.ID]
		if !seen {
			pos = len(grouped)
			index[g.ID] = pos
			grouped = append(grouped, models.GenreWithSubGenres{Genre: g, SubGenres: []models.SubGenre{}})
		}

		// Null sub-genre id marks a genre with no children.
		if subID.Valid {
			grouped[pos].SubGenres = append(grouped[pos].SubGenres, models.SubGenre{
				ID:          int(subID.Int64),
				GenreID:     g.ID,
				Name:        subName.String,
				Slug:        subSlug.String,
				Description: subDesc.String,
				TrackCount:  int(trackCount.Int64),
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate genre rows: %v", shared.ErrDataAccess, err)
	}

	return grouped, nil
}

// Statistics retrieves the single-row catalog aggregate.
//
// An aggregation that yields no row is a hard data error, never defaulted to
// zeros.
func (s *Service) Statistics(ctx context.Context) (*models.Statistics, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM genres),
			(SELECT COUNT(*) FROM sub_genres),
			(SELECT COUNT(*) FROM tracks),
			COALESCE(AVG(price_basic_cents), 0),
			COALESCE(AVG(price_pro_cents), 0),
			COALESCE(AVG(price_stems_cents), 0),
			COALESCE(AVG(CASE WHEN bpm > 0 THEN bpm END), 0),
			COALESCE(AVG(duration_sec), 0)
		FROM tracks
	`

	var stats models.Statistics
	var avgBasic, avgPro, avgStems float64

	err := s.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalGenres, &stats.TotalSubGenres, &stats.TotalTracks,
		&avgBasic, &avgPro, &avgStems, &stats.AvgBpm, &stats.AvgDurationSec)
	if err != nil {
		return nil, fmt.Errorf("%w: catalog statistics: %v", shared.ErrDataAccess, err)
	}

	stats.AvgPriceBasic = models.Price(avgBasic + 0.5)
	stats.AvgPricePro = models.Price(avgPro + 0.5)
	stats.AvgPriceStems = models.Price(avgStems + 0.5)

	return &stats, nil
}

// TracksBySubGenre retrieves all tracks for a sub-genre in insertion order.
// An unknown sub-genre yields an empty slice, not an error.
func (s *Service) TracksBySubGenre(ctx context.Context, subGenreID int) ([]models.Track, error) {
	query := fmt.Sprintf("SELECT %s FROM tracks WHERE sub_genre_id = ? ORDER BY id", trackColumns)
	return s.queryTracks(ctx, query, subGenreID)
}

// TracksByGenre retrieves all tracks for a genre across its sub-genres.
func (s *Service) TracksByGenre(ctx context.Context, genreID int) ([]models.Track, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM tracks
		WHERE sub_genre_id IN (SELECT id FROM sub_genres WHERE genre_id = ?)
		ORDER BY id`, trackColumns)
	return s.queryTracks(ctx, query, genreID)
}

// TrackByID retrieves a single track. A missing track returns (nil, nil),
// distinct from an empty list and distinct from an error.
func (s *Service) TrackByID(ctx context.Context, trackID int) (*models.Track, error) {
	query := fmt.Sprintf("SELECT %s FROM tracks WHERE id = ?", trackColumns)

	track, err := scanTrack(s.db.QueryRowContext(ctx, query, trackID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: track %d: %v", shared.ErrDataAccess, trackID, err)
	}

	return track, nil
}

// SearchTracks retrieves tracks matching the given filters. All filters are
// optional and combine with logical AND; an absent filter places no
// constraint on its dimension. Keyword matching is case-insensitive substring
// over title, artist and collection name.
func (s *Service) SearchTracks(ctx context.Context, filters models.SearchFilters) ([]models.Track, error) {
	query := fmt.Sprintf("SELECT %s FROM tracks WHERE 1=1", trackColumns)
	args := []any{}

	if keyword := strings.TrimSpace(filters.Keyword); keyword != "" {
		pattern := "%" + keyword + "%"
		query += " AND (title LIKE ? OR artist LIKE ? OR COALESCE(collection_name, '') LIKE ?)"
		args = append(args, pattern, pattern, pattern)
	}

	if filters.GenreID != 0 {
		query += " AND sub_genre_id IN (SELECT id FROM sub_genres WHERE genre_id = ?)"
		args = append(args, filters.GenreID)
	}

	if filters.MinBpm != 0 {
		query += " AND bpm >= ?"
		args = append(args, filters.MinBpm)
	}

	if filters.MaxBpm != 0 {
		query += " AND bpm <= ?"
		args = append(args, filters.MaxBpm)
	}

	query += " ORDER BY id"

	return s.queryTracks(ctx, query, args...)
}

// FeaturedTracks retrieves the most recently added tracks.
// Limit must be within [1, FeaturedLimitMax]; a violation is a validation
// error, not silently clamped.
func (s *Service) FeaturedTracks(ctx context.Context, limit int) ([]models.Track, error) {
	if limit < 1 || limit > FeaturedLimitMax {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", shared.ErrInvalidInput, FeaturedLimitMax)
	}

	query := fmt.Sprintf("SELECT %s FROM tracks ORDER BY created_at DESC, id DESC LIMIT ?", trackColumns)
	return s.queryTracks(ctx, query, limit)
}

// TracksByPriceRange retrieves tracks whose basic license price falls within
// [min, max]. Requires 0 <= min <= max; a violation is a validation error and
// never reaches the store.
func (s *Service) TracksByPriceRange(ctx context.Context, min, max models.Price) ([]models.Track, error) {
	if min < 0 {
		return nil, fmt.Errorf("%w: minimum price must not be negative", shared.ErrInvalidInput)
	}
	if min > max {
		return nil, fmt.Errorf("%w: minimum price must not exceed maximum price", shared.ErrInvalidInput)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM tracks
		WHERE price_basic_cents BETWEEN ? AND ?
		ORDER BY price_basic_cents, id`, trackColumns)
	return s.queryTracks(ctx, query, min.Cents(), max.Cents())
}

// queryTracks runs a track query and scans all rows.
func (s *Service) queryTracks(ctx context.Context, query string, args ...any) ([]models.Track, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query tracks: %v", shared.ErrDataAccess, err)
	}
	defer rows.Close()

	tracks := []models.Track{}
	for rows.Next() {
		track, err := scanTrack(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan track: %v", shared.ErrDataAccess, err)
		}
		tracks = append(tracks, *track)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate tracks: %v", shared.ErrDataAccess, err)
	}

	return tracks, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanTrack.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrack scans one track row, converting nullable columns to pointers and
// price cents to [models.Price].
func scanTrack(row scanner) (*models.Track, error) {
	var (
		t                     models.Track
		basic, pro, stems     int64
		itunesID              sql.NullInt64
		preview, small, large sql.NullString
		collection, release   sql.NullString
	)

	err := row.Scan(&t.ID, &t.SubGenreID, &t.Title, &t.Artist, &t.Bpm, &t.DurationSec,
		&basic, &pro, &stems,
		&itunesID, &preview, &small, &large, &collection, &release)
	if err != nil {
		return nil, err
	}

	t.PriceBasic = models.Price(basic)
	t.PricePro = models.Price(pro)
	t.PriceStems = models.Price(stems)

	if itunesID.Valid {
		t.ITunesTrackID = &itunesID.Int64
	}
	if preview.Valid {
		t.PreviewURL = &preview.String
	}
	if small.Valid {
		t.ArtworkURLSmall = &small.String
	}
	if large.Valid {
		t.ArtworkURLLarge = &large.String
	}
	if collection.Valid {
		t.CollectionName = &collection.String
	}
	if release.Valid {
		t.ReleaseDate = &release.String
	}

	return &t, nil
}
