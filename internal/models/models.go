package models

// Genre is a top-level catalog category.
type Genre struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// SubGenre is a second-level category owned by exactly one Genre.
//
// TrackCount is a derived aggregate recomputed at query time, never stored.
type SubGenre struct {
	ID          int    `json:"id"`
	GenreID     int    `json:"genre_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	TrackCount  int    `json:"track_count"`
}

// GenreWithSubGenres is a Genre with its SubGenre children attached.
//
// SubGenres is always non-nil so a genre without children serializes as an
// empty array rather than null.
type GenreWithSubGenres struct {
	Genre
	SubGenres []SubGenre `json:"sub_genres"`
}

// Track is the licensable unit of the catalog.
//
// Bpm 0 means unknown, not absent. The pointer fields come from the external
// catalog and are optional for any given track.
type Track struct {
	ID              int     `json:"id"`
	SubGenreID      int     `json:"sub_genre_id"`
	Title           string  `json:"title"`
	Artist          string  `json:"artist"`
	Bpm             int     `json:"bpm"`
	DurationSec     int     `json:"duration_sec"`
	PriceBasic      Price   `json:"price_basic"`
	PricePro        Price   `json:"price_pro"`
	PriceStems      Price   `json:"price_stems"`
	ITunesTrackID   *int64  `json:"itunes_track_id,omitempty"`
	PreviewURL      *string `json:"preview_url,omitempty"`
	ArtworkURLSmall *string `json:"artwork_url_small,omitempty"`
	ArtworkURLLarge *string `json:"artwork_url_large,omitempty"`
	CollectionName  *string `json:"collection_name,omitempty"`
	ReleaseDate     *string `json:"release_date,omitempty"`
}

// Statistics is the single-row catalog aggregate.
type Statistics struct {
	TotalGenres    int     `json:"total_genres"`
	TotalSubGenres int     `json:"total_sub_genres"`
	TotalTracks    int     `json:"total_tracks"`
	AvgPriceBasic  Price   `json:"avg_price_basic"`
	AvgPricePro    Price   `json:"avg_price_pro"`
	AvgPriceStems  Price   `json:"avg_price_stems"`
	AvgBpm         float64 `json:"avg_bpm"`
	AvgDurationSec float64 `json:"avg_duration_sec"`
}

// SearchFilters narrows a track search. Zero values mean "no constraint on
// that dimension"; all present filters combine with logical AND.
type SearchFilters struct {
	Keyword string
	GenreID int
	MinBpm  int
	MaxBpm  int
}

// IsEmpty reports whether no filter is set.
func (f SearchFilters) IsEmpty() bool {
	return f.Keyword == "" && f.GenreID == 0 && f.MinBpm == 0 && f.MaxBpm == 0
}
