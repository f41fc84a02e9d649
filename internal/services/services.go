// package services defines interface Provider for external track catalogs
//
// iTunes Search API
package services

import (
	"context"
)

// Provider defines the interface for external catalog providers that supply
// candidate tracks for the storefront.
type Provider interface {
	// SearchTracks searches the provider's catalog by free-text term.
	// Returns up to limit results.
	SearchTracks(ctx context.Context, term string, limit int) ([]CatalogTrack, error)

	// Name returns the name of the provider (e.g., "iTunes")
	Name() string
}

// CatalogTrack represents a track fetched from an external catalog, before it
// is priced and written into the local store.
type CatalogTrack struct {
	ExternalID      int64
	Title           string
	Artist          string
	DurationSec     int
	PreviewURL      string // may be empty
	ArtworkURLSmall string // may be empty
	ArtworkURLLarge string // may be empty
	CollectionName  string // may be empty
	ReleaseDate     string // may be empty
}
