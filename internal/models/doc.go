// Package models defines the data model for the music licensing catalog.
//
// The catalog is a strict three-level tree: [Genre] owns zero or more
// [SubGenre], each [SubGenre] owns zero or more [Track]. Genres and sub-genres
// are taxonomy; the track is the licensable unit, sold in three tiers (basic,
// pro, stems).
//
// All entities are seeded once from an external catalog and read-only
// afterwards; no update or delete paths exist in this service.
//
// Monetary values use [Price], an integer cents type that serializes to a
// decimal string (e.g. "1.99") so prices never pick up floating-point display
// drift on the wire.
package models
