package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/nexusaudio/nexus/internal/catalog"
	"github.com/nexusaudio/nexus/internal/models"
	"github.com/nexusaudio/nexus/internal/services"
	"github.com/nexusaudio/nexus/internal/shared"
	"golang.org/x/time/rate"
)

// PricingTier holds the three license prices applied to every track of a
// genre.
type PricingTier struct {
	Basic models.Price
	Pro   models.Price
	Stems models.Price
}

// SubGenreSeed binds a seeded sub-genre to the free-text term used to search
// the external catalog for it.
type SubGenreSeed struct {
	SubGenreID int
	GenreID    int
	Name       string
	SearchTerm string
}

// SeedPlan is the default plan covering the full shipped taxonomy. Sub-genre
// and genre ids match the embedded taxonomy migration.
var SeedPlan = []SubGenreSeed{
	{SubGenreID: 1, GenreID: 1, Name: "Melodic Techno", SearchTerm: "melodic techno"},
	{SubGenreID: 2, GenreID: 1, Name: "Drum & Bass", SearchTerm: "drum and bass"},
	{SubGenreID: 3, GenreID: 1, Name: "House", SearchTerm: "deep house"},
	{SubGenreID: 4, GenreID: 2, Name: "Trailer Music", SearchTerm: "epic trailer music"},
	{SubGenreID: 5, GenreID: 2, Name: "Ambient Cinematic", SearchTerm: "ambient piano cinematic"},
	{SubGenreID: 6, GenreID: 2, Name: "Action & Adventure", SearchTerm: "orchestral action music"},
	{SubGenreID: 7, GenreID: 3, Name: "Trap", SearchTerm: "trap instrumental"},
	{SubGenreID: 8, GenreID: 3, Name: "Lo-Fi Hip Hop", SearchTerm: "lofi hip hop beats"},
	{SubGenreID: 9, GenreID: 3, Name: "R&B & Soul", SearchTerm: "rnb soul instrumental"},
	{SubGenreID: 10, GenreID: 4, Name: "Alternative Rock", SearchTerm: "alternative rock"},
	{SubGenreID: 11, GenreID: 4, Name: "Hard Rock", SearchTerm: "hard rock"},
	{SubGenreID: 12, GenreID: 4, Name: "Indie Rock", SearchTerm: "indie rock"},
	{SubGenreID: 13, GenreID: 5, Name: "Smooth Jazz", SearchTerm: "smooth jazz"},
	{SubGenreID: 14, GenreID: 5, Name: "Neo-Soul", SearchTerm: "neo soul"},
	{SubGenreID: 15, GenreID: 5, Name: "Funk", SearchTerm: "funk instrumental"},
}

// genrePricing maps genre id to its license price tier.
var genrePricing = map[int]PricingTier{
	1: {Basic: 199, Pro: 499, Stems: 1999},
	2: {Basic: 299, Pro: 799, Stems: 2999},
	3: {Basic: 199, Pro: 499, Stems: 1999},
	4: {Basic: 199, Pro: 499, Stems: 1999},
	5: {Basic: 249, Pro: 599, Stems: 2299},
}

// SeedOpts contains configuration for a seeding run.
type SeedOpts struct {
	Plan         []SubGenreSeed // Sub-genres to seed (default: SeedPlan)
	TracksPerSub int            // Tracks fetched per sub-genre (default: 8)
	NumWorkers   int            // Concurrent fetch workers (default: 3, max 10)
	RateLimit    float64        // Provider requests per second (default: 2)
}

// SubGenreSeedResult records the outcome for one sub-genre.
type SubGenreSeedResult struct {
	SubGenreID int
	Name       string
	Fetched    int
	Inserted   int
	Success    bool
	Error      error
}

// SeedResult contains all data from a full seeding run.
type SeedResult struct {
	TotalSubGenres int
	Succeeded      int
	Failed         int
	TracksInserted int
	Results        []SubGenreSeedResult
}

type seedJob struct {
	seed   SubGenreSeed
	step   int
	tracks []services.CatalogTrack
	err    error
}

// SeedEngine orchestrates catalog seeding from an external provider.
// Fetching is concurrent and rate limited; inserts run on a single goroutine
// so the store sees one writer.
type SeedEngine struct {
	provider services.Provider
	importer *catalog.Importer
}

// NewSeedEngine creates a SeedEngine over the given provider and importer.
func NewSeedEngine(provider services.Provider, importer *catalog.Importer) *SeedEngine {
	return &SeedEngine{provider: provider, importer: importer}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *SeedEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run fetches tracks for every sub-genre in the plan and writes them to the
// catalog. Per-sub-genre failures are recorded and do not abort the run; a
// track already seen under another sub-genre is skipped rather than inserted
// twice.
func (e *SeedEngine) Run(ctx context.Context, prog chan<- ProgressUpdate, opts SeedOpts) (*SeedResult, error) {
	if e.provider == nil {
		return nil, fmt.Errorf("%w: catalog provider not initialized", shared.ErrServiceUnavailable)
	}
	if e.importer == nil {
		return nil, fmt.Errorf("%w: catalog importer not initialized", shared.ErrServiceUnavailable)
	}

	if len(opts.Plan) == 0 {
		opts.Plan = SeedPlan
	}
	if opts.TracksPerSub <= 0 {
		opts.TracksPerSub = 8
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 3
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2.0
	}

	total := len(opts.Plan)
	result := &SeedResult{
		TotalSubGenres: total,
		Results:        make([]SubGenreSeedResult, 0, total),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan seedJob, total)
	fetched := make(chan seedJob, total)

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.fetchWorker(ctx, &wg, limiter, opts.TracksPerSub, jobs, fetched)
	}

	go func() {
		for i, seed := range opts.Plan {
			select {
			case <-ctx.Done():
				close(jobs)
				return
			default:
			}
			e.sendProgress(prog, searchSubGenreUpdate(i+1, total, seed.Name, seed.SearchTerm))
			jobs <- seedJob{seed: seed, step: i + 1}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(fetched)
	}()

	seen := map[int64]bool{}
	completed := 0

	for job := range fetched {
		completed++
		res := SubGenreSeedResult{SubGenreID: job.seed.SubGenreID, Name: job.seed.Name}

		if job.err != nil {
			res.Error = fmt.Errorf("fetch failed: %w", job.err)
			result.Failed++
			result.Results = append(result.Results, res)
			e.sendProgress(prog, importFailedUpdate(completed, total, res.Name, res.Error))
			continue
		}

		res.Fetched = len(job.tracks)

		tracks := make([]*models.Track, 0, len(job.tracks))
		for _, ct := range job.tracks {
			// The importer rejects whole batches with unusable entries,
			// so drop them here instead.
			if ct.Title == "" || ct.Artist == "" || seen[ct.ExternalID] {
				continue
			}
			seen[ct.ExternalID] = true
			tracks = append(tracks, priceTrack(job.seed, ct))
		}

		if err := e.importer.InsertTracks(ctx, tracks); err != nil {
			res.Error = fmt.Errorf("insert failed: %w", err)
			result.Failed++
			result.Results = append(result.Results, res)
			e.sendProgress(prog, importFailedUpdate(completed, total, res.Name, res.Error))
			continue
		}

		res.Inserted = len(tracks)
		res.Success = true
		result.Succeeded++
		result.TracksInserted += res.Inserted
		result.Results = append(result.Results, res)
		e.sendProgress(prog, importCompletedUpdate(completed, total, res.Name, res.Inserted))
	}

	return result, ctx.Err()
}

// fetchWorker is a worker goroutine that searches the provider for jobs from
// the jobs channel.
func (e *SeedEngine) fetchWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	tracksPerSub int,
	jobs <-chan seedJob,
	fetched chan<- seedJob,
) {
	defer wg.Done()

	for job := range jobs {
		if err := limiter.Wait(ctx); err != nil {
			job.err = err
			fetched <- job
			continue
		}

		job.tracks, job.err = e.provider.SearchTracks(ctx, job.seed.SearchTerm, tracksPerSub)
		fetched <- job
	}
}

// priceTrack maps an external catalog track to a store track with the genre's
// license tier applied. Empty optional fields stay null in the store.
func priceTrack(seed SubGenreSeed, ct services.CatalogTrack) *models.Track {
	tier := genrePricing[seed.GenreID]

	track := &models.Track{
		SubGenreID:  seed.SubGenreID,
		Title:       ct.Title,
		Artist:      ct.Artist,
		DurationSec: ct.DurationSec,
		PriceBasic:  tier.Basic,
		PricePro:    tier.Pro,
		PriceStems:  tier.Stems,
	}

	if ct.ExternalID != 0 {
		id := ct.ExternalID
		track.ITunesTrackID = &id
	}
	if ct.PreviewURL != "" {
		v := ct.PreviewURL
		track.PreviewURL = &v
	}
	if ct.ArtworkURLSmall != "" {
		v := ct.ArtworkURLSmall
		track.ArtworkURLSmall = &v
	}
	if ct.ArtworkURLLarge != "" {
		v := ct.ArtworkURLLarge
		track.ArtworkURLLarge = &v
	}
	if ct.CollectionName != "" {
		v := ct.CollectionName
		track.CollectionName = &v
	}
	if ct.ReleaseDate != "" {
		v := ct.ReleaseDate
		track.ReleaseDate = &v
	}

	return track
}
