// Package catalog implements the typed query service over the relational
// catalog (genres, sub_genres, tracks).
//
// [Service] translates typed parameters into parametrized lookups and
// normalizes results: flat joined rows are regrouped into genre trees by a
// first-seen-order grouping, missing tracks surface as nil rather than an
// error, and out-of-range arguments are rejected before any query runs.
//
// Failure policy: storage failures wrap [shared.ErrDataAccess] and are never
// retried here; retries, if desired, belong to the caller. Validation
// failures wrap [shared.ErrInvalidInput] so transport layers can map them to
// 400-class responses.
//
// [Importer] holds the seed-time write path. The read operations treat the
// store as read-only and externally synchronized.
package catalog
