// package tasks implements the offline catalog seeding pipeline.
//
// The core abstraction is SeedEngine, which fetches candidate tracks from an
// external catalog provider for every sub-genre in the taxonomy, prices them
// by genre tier and writes them through the catalog importer. Operations emit
// progress updates via channels for non-blocking status reporting to CLI/UI
// layers.
package tasks
