package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nexusaudio/nexus/internal/catalog"
	"github.com/nexusaudio/nexus/internal/models"
	"github.com/nexusaudio/nexus/internal/shared"
)

// newTestRouter builds a router over an in-memory catalog with a few tracks.
func newTestRouter(t *testing.T) (*BasicRouter, *sql.DB) {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	im := catalog.NewImporter(db)
	tracks := []*models.Track{
		{SubGenreID: 1, Title: "Techno Dawn", Artist: "Volt", Bpm: 128, DurationSec: 201, PriceBasic: 199, PricePro: 499, PriceStems: 1999},
		{SubGenreID: 1, Title: "Warehouse Techno", Artist: "Nova", Bpm: 132, DurationSec: 187, PriceBasic: 199, PricePro: 499, PriceStems: 1999},
		{SubGenreID: 4, Title: "Rise", Artist: "Orchestra One", Bpm: 90, DurationSec: 154, PriceBasic: 299, PricePro: 799, PriceStems: 2999},
	}
	if err := im.InsertTracks(context.Background(), tracks); err != nil {
		t.Fatalf("failed to seed tracks: %v", err)
	}

	logger := shared.NewLogger(io.Discard)
	return NewRouter(catalog.NewService(db), logger), db
}

// get performs a GET request against the router and returns the response.
func get(t *testing.T, router *BasicRouter, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode body %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := get(t, router, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decodeBody[map[string]string](t, rec)
	if body["status"] != "active" {
		t.Errorf("expected status active, got %s", body["status"])
	}
	if body["system"] != SystemName {
		t.Errorf("expected system %q, got %q", SystemName, body["system"])
	}
}

func TestGenreEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("list genres", func(t *testing.T) {
		rec := get(t, router, "/api/genres")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		genres := decodeBody[[]models.Genre](t, rec)
		if len(genres) != 5 {
			t.Errorf("expected 5 genres, got %d", len(genres))
		}
	})

	t.Run("with sub-genres", func(t *testing.T) {
		rec := get(t, router, "/api/genres/with-sub-genres")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		grouped := decodeBody[[]models.GenreWithSubGenres](t, rec)
		if len(grouped) != 5 {
			t.Fatalf("expected 5 genres, got %d", len(grouped))
		}
		if len(grouped[0].SubGenres) != 3 {
			t.Errorf("expected 3 sub-genres for first genre, got %d", len(grouped[0].SubGenres))
		}
		if grouped[0].SubGenres[0].TrackCount != 2 {
			t.Errorf("expected track_count 2, got %d", grouped[0].SubGenres[0].TrackCount)
		}
	})

	t.Run("statistics", func(t *testing.T) {
		rec := get(t, router, "/api/genres/statistics")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		stats := decodeBody[models.Statistics](t, rec)
		if stats.TotalTracks != 3 {
			t.Errorf("expected 3 tracks, got %d", stats.TotalTracks)
		}
	})
}

func TestSearchEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("keyword search returns decimal price strings", func(t *testing.T) {
		rec := get(t, router, "/api/tracks/search?q=techno")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		raw := decodeBody[[]map[string]any](t, rec)
		if len(raw) != 2 {
			t.Fatalf("expected 2 matching tracks, got %d", len(raw))
		}
		for _, item := range raw {
			if item["price_basic"] != "1.99" {
				t.Errorf("expected price_basic \"1.99\", got %v", item["price_basic"])
			}
		}
	})

	t.Run("keyword alias", func(t *testing.T) {
		rec := get(t, router, "/api/tracks/search?keyword=techno")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if tracks := decodeBody[[]models.Track](t, rec); len(tracks) != 2 {
			t.Errorf("expected 2 matches via keyword alias, got %d", len(tracks))
		}
	})

	t.Run("combined filters", func(t *testing.T) {
		rec := get(t, router, "/api/tracks/search?q=techno&genreId=1&minBpm=130")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		tracks := decodeBody[[]models.Track](t, rec)
		if len(tracks) != 1 || tracks[0].Title != "Warehouse Techno" {
			t.Errorf("unexpected filtered result: %+v", tracks)
		}
	})

	t.Run("malformed genreId", func(t *testing.T) {
		rec := get(t, router, "/api/tracks/search?genreId=abc")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("no matches yields empty array", func(t *testing.T) {
		rec := get(t, router, "/api/tracks/search?q=zzzz")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if body := rec.Body.String(); body != "[]\n" {
			t.Errorf("expected empty JSON array, got %q", body)
		}
	})
}

func TestFeaturedEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("default limit", func(t *testing.T) {
		rec := get(t, router, "/api/tracks/featured")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if tracks := decodeBody[[]models.Track](t, rec); len(tracks) != 3 {
			t.Errorf("expected all 3 tracks under default limit, got %d", len(tracks))
		}
	})

	t.Run("explicit limit", func(t *testing.T) {
		rec := get(t, router, "/api/tracks/featured?limit=1")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		tracks := decodeBody[[]models.Track](t, rec)
		if len(tracks) != 1 {
			t.Fatalf("expected 1 track, got %d", len(tracks))
		}
		if tracks[0].Title != "Rise" {
			t.Errorf("expected most recently added track, got %s", tracks[0].Title)
		}
	})

	t.Run("invalid limits", func(t *testing.T) {
		for _, query := range []string{"limit=0", "limit=101", "limit=abc", "limit=-5"} {
			rec := get(t, router, "/api/tracks/featured?"+query)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("%s: expected 400, got %d", query, rec.Code)
			}
			body := decodeBody[map[string]string](t, rec)
			if body["error"] != "Invalid limit (must be 1-100)" {
				t.Errorf("%s: unexpected error body %q", query, body["error"])
			}
		}
	})
}

func TestPriceRangeEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("inclusive range", func(t *testing.T) {
		rec := get(t, router, "/api/tracks/price-range?minPrice=1.00&maxPrice=2.00")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if tracks := decodeBody[[]models.Track](t, rec); len(tracks) != 2 {
			t.Errorf("expected 2 tracks at 1.99, got %d", len(tracks))
		}
	})

	t.Run("missing parameters", func(t *testing.T) {
		rec := get(t, router, "/api/tracks/price-range?minPrice=1.00")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		body := decodeBody[map[string]string](t, rec)
		if body["error"] != "Both minPrice and maxPrice are required" {
			t.Errorf("unexpected error body %q", body["error"])
		}
	})

	t.Run("inverted range", func(t *testing.T) {
		rec := get(t, router, "/api/tracks/price-range?minPrice=5.00&maxPrice=1.00")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		body := decodeBody[map[string]string](t, rec)
		if body["error"] != "Invalid price range" {
			t.Errorf("unexpected error body %q", body["error"])
		}
	})
}

func TestTrackLookupEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("by id", func(t *testing.T) {
		rec := get(t, router, "/api/tracks/1")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		track := decodeBody[models.Track](t, rec)
		if track.ID != 1 {
			t.Errorf("expected track 1, got %d", track.ID)
		}
	})

	t.Run("missing track yields 404", func(t *testing.T) {
		rec := get(t, router, "/api/tracks/42")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		body := decodeBody[map[string]string](t, rec)
		if body["error"] != "Track not found" {
			t.Errorf("unexpected error body %q", body["error"])
		}
	})

	t.Run("non-numeric track id yields 400", func(t *testing.T) {
		rec := get(t, router, "/api/tracks/abc")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		body := decodeBody[map[string]string](t, rec)
		if body["error"] != "Invalid track ID" {
			t.Errorf("unexpected error body %q", body["error"])
		}
	})

	t.Run("non-numeric genre id yields 400", func(t *testing.T) {
		rec := get(t, router, "/api/tracks/genre/abc")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		body := decodeBody[map[string]string](t, rec)
		if body["error"] != "Invalid genre ID" {
			t.Errorf("unexpected error body %q", body["error"])
		}
	})

	t.Run("by genre", func(t *testing.T) {
		rec := get(t, router, "/api/tracks/genre/1")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if tracks := decodeBody[[]models.Track](t, rec); len(tracks) != 2 {
			t.Errorf("expected 2 electronic tracks, got %d", len(tracks))
		}
	})

	t.Run("by sub-genre", func(t *testing.T) {
		rec := get(t, router, "/api/tracks/sub-genre/4")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if tracks := decodeBody[[]models.Track](t, rec); len(tracks) != 1 {
			t.Errorf("expected 1 trailer track, got %d", len(tracks))
		}
	})

	t.Run("static routes win over the id wildcard", func(t *testing.T) {
		// "featured" would be a 400 "Invalid track ID" if the wildcard matched first
		rec := get(t, router, "/api/tracks/featured")
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200 for /featured, got %d", rec.Code)
		}
	})
}

func TestMethodFiltering(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/genres", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 for POST, got %d", rec.Code)
	}
}
