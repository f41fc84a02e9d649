package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/nexusaudio/nexus/internal/catalog"
	"github.com/nexusaudio/nexus/internal/services"
	"github.com/nexusaudio/nexus/internal/shared"
	tu "github.com/nexusaudio/nexus/internal/testing"
)

func newTestImporter(t *testing.T) (*catalog.Importer, *catalog.Service) {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return catalog.NewImporter(db), catalog.NewService(db)
}

func TestSeedEngine(t *testing.T) {
	t.Run("Missing Dependencies", func(t *testing.T) {
		importer, _ := newTestImporter(t)

		_, err := NewSeedEngine(nil, importer).Run(context.Background(), nil, SeedOpts{})
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable without provider, got %v", err)
		}

		_, err = NewSeedEngine(&tu.MockProvider{}, nil).Run(context.Background(), nil, SeedOpts{})
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable without importer, got %v", err)
		}
	})

	t.Run("Full Plan", func(t *testing.T) {
		importer, svc := newTestImporter(t)
		provider := &tu.MockProvider{
			Tracks: []services.CatalogTrack{
				{ExternalID: 100, Title: "Alpha", Artist: "A", DurationSec: 180},
				{ExternalID: 200, Title: "Beta", Artist: "B", DurationSec: 200},
			},
		}

		engine := NewSeedEngine(provider, importer)
		result, err := engine.Run(context.Background(), nil, SeedOpts{NumWorkers: 1, RateLimit: 1000})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.TotalSubGenres != len(SeedPlan) {
			t.Errorf("expected %d sub-genres, got %d", len(SeedPlan), result.TotalSubGenres)
		}
		if result.Succeeded != len(SeedPlan) || result.Failed != 0 {
			t.Errorf("expected all successes, got %+v", result)
		}
		if len(provider.Terms) != len(SeedPlan) {
			t.Errorf("expected %d provider searches, got %d", len(SeedPlan), len(provider.Terms))
		}

		// The same two external ids come back for every term, so only the
		// first sub-genre actually inserts anything.
		if result.TracksInserted != 2 {
			t.Errorf("expected 2 inserted tracks after dedupe, got %d", result.TracksInserted)
		}

		stats, err := svc.Statistics(context.Background())
		if err != nil {
			t.Fatalf("statistics failed: %v", err)
		}
		if stats.TotalTracks != 2 {
			t.Errorf("expected 2 stored tracks, got %d", stats.TotalTracks)
		}
	})

	t.Run("Pricing By Genre Tier", func(t *testing.T) {
		importer, svc := newTestImporter(t)
		provider := &tu.MockProvider{
			Tracks: []services.CatalogTrack{
				{ExternalID: 300, Title: "Score", Artist: "Composer", DurationSec: 240},
			},
		}

		plan := []SubGenreSeed{{SubGenreID: 4, GenreID: 2, Name: "Trailer Music", SearchTerm: "epic trailer music"}}
		engine := NewSeedEngine(provider, importer)

		if _, err := engine.Run(context.Background(), nil, SeedOpts{Plan: plan, NumWorkers: 1, RateLimit: 1000}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		tracks, err := svc.TracksBySubGenre(context.Background(), 4)
		if err != nil {
			t.Fatalf("query failed: %v", err)
		}
		if len(tracks) != 1 {
			t.Fatalf("expected 1 track, got %d", len(tracks))
		}

		track := tracks[0]
		if track.PriceBasic != 299 || track.PricePro != 799 || track.PriceStems != 2999 {
			t.Errorf("unexpected cinematic tier: %d/%d/%d", track.PriceBasic, track.PricePro, track.PriceStems)
		}
	})

	t.Run("Provider Failure Recorded Not Fatal", func(t *testing.T) {
		importer, svc := newTestImporter(t)
		provider := &tu.MockProvider{Err: errors.New("rate limited")}

		plan := []SubGenreSeed{
			{SubGenreID: 1, GenreID: 1, Name: "Melodic Techno", SearchTerm: "melodic techno"},
			{SubGenreID: 3, GenreID: 1, Name: "House", SearchTerm: "deep house"},
		}

		engine := NewSeedEngine(provider, importer)
		result, err := engine.Run(context.Background(), nil, SeedOpts{Plan: plan, NumWorkers: 1, RateLimit: 1000})
		if err != nil {
			t.Fatalf("expected no run-level error, got %v", err)
		}

		if result.Failed != 2 || result.Succeeded != 0 {
			t.Errorf("expected 2 recorded failures, got %+v", result)
		}
		for _, res := range result.Results {
			if res.Success || res.Error == nil {
				t.Errorf("expected failed result, got %+v", res)
			}
		}

		stats, err := svc.Statistics(context.Background())
		if err != nil {
			t.Fatalf("statistics failed: %v", err)
		}
		if stats.TotalTracks != 0 {
			t.Errorf("expected empty store after failures, got %d", stats.TotalTracks)
		}
	})

	t.Run("Unusable Entries Dropped", func(t *testing.T) {
		importer, svc := newTestImporter(t)
		provider := &tu.MockProvider{
			Tracks: []services.CatalogTrack{
				{ExternalID: 1, Title: "Keep", Artist: "Artist", DurationSec: 100},
				{ExternalID: 2, Title: "", Artist: "Artist"},
				{ExternalID: 3, Title: "No Artist", Artist: ""},
			},
		}

		plan := []SubGenreSeed{{SubGenreID: 1, GenreID: 1, Name: "Melodic Techno", SearchTerm: "melodic techno"}}
		engine := NewSeedEngine(provider, importer)

		result, err := engine.Run(context.Background(), nil, SeedOpts{Plan: plan, NumWorkers: 1, RateLimit: 1000})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.TracksInserted != 1 {
			t.Errorf("expected 1 inserted track, got %d", result.TracksInserted)
		}

		tracks, err := svc.TracksBySubGenre(context.Background(), 1)
		if err != nil {
			t.Fatalf("query failed: %v", err)
		}
		if len(tracks) != 1 || tracks[0].Title != "Keep" {
			t.Errorf("unexpected stored tracks: %+v", tracks)
		}
	})

	t.Run("Progress Updates Emitted", func(t *testing.T) {
		importer, _ := newTestImporter(t)
		provider := &tu.MockProvider{
			Tracks: []services.CatalogTrack{{ExternalID: 10, Title: "T", Artist: "A"}},
		}

		plan := []SubGenreSeed{{SubGenreID: 1, GenreID: 1, Name: "Melodic Techno", SearchTerm: "melodic techno"}}
		prog := make(chan ProgressUpdate, 16)

		engine := NewSeedEngine(provider, importer)
		if _, err := engine.Run(context.Background(), prog, SeedOpts{Plan: plan, NumWorkers: 1, RateLimit: 1000}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		close(prog)

		phases := map[Phase]bool{}
		for update := range prog {
			phases[update.Phase] = true
		}
		if !phases[SearchCatalog] || !phases[ImportTracks] {
			t.Errorf("expected both phases reported, got %v", phases)
		}
	})
}
