// Package importer loads reference record lists into the catalog.
//
// Each record's release name is parsed into its structured tags; the title
// selects (or creates) a Work, the (work, platform, region) triple selects
// (or creates) a Release, and the record itself becomes a Media row tagged
// with the source list it came from. Field values from a new source are
// merged under the first-writer-wins policy, so re-importing a list or
// importing a second source never overwrites curated data silently.
//
// A record whose name cannot be parsed is skipped and counted; it never
// aborts the batch. Every batch appends one audit row to the import log.
package importer
