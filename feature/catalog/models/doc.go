// Package models defines the persisted catalog entity graph.
//
// The hierarchy is Work -> Release -> Media: a Work is one abstract game
// independent of region and platform, a Release is one platform- and
// region-specific edition of it, and a Media row is one physical or digital
// dump instance carrying hashes and a dump status.
//
// Platforms, Companies, and Overrides are curated reference entities,
// loaded from definition files and upserted idempotently by id. Works,
// Releases, and Media are created and updated by import and enrichment
// passes. Disagreements record unresolved conflicts between two sources'
// values for one field; they are only removed by explicit operator action.
// ImportLog rows are an append-only audit trail.
package models
