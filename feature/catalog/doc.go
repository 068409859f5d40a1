// Package catalog persists the multi-source game catalog and implements
// the merge logic that combines facts from independent import sources
// without silent data loss.
//
// # Store
//
// Store wraps the GORM connection with per-entity upsert and find
// operations, a stats query, and the schema-version check performed before
// any operation. Curated entities (platforms, companies, overrides) are
// upserted idempotently by id; works, releases, and media are written by
// import passes with referential-integrity checks: a release referencing a
// missing work or platform fails that single write without touching
// unrelated rows.
//
// # Merge and disagreements
//
// CheckField implements the first-writer-wins conflict policy: when two
// sources disagree on a populated field, the existing value stays and an
// unresolved Disagreement row captures both sides for a human to resolve.
// MergeReleaseFields applies this per mutable release field, filling in
// blanks and counting conflicts.
//
// # Overrides
//
// Curated overrides patch known-bad source data by matching a glob pattern
// against each media's recorded dat-name. Overrides that match nothing are
// silently skipped.
package catalog
