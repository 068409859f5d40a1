// Package dat ingests reference game lists (DAT files) and builds the
// immutable hash index used to identify scanned ROM dumps.
//
// A DAT file is a Logiqx-style XML document listing every known-good dump
// for one platform, with its byte size and CRC32/MD5/SHA1 checksums. The
// package exposes three pieces:
//
//   - Parser: streams a DAT file into []ReferenceRecord. Malformed entries
//     are skipped and reported; they never abort the batch.
//   - Index: built once from a record batch, queried by primary (CRC32) or
//     secondary (SHA1) hash, case-insensitively. The index is immutable
//     after construction and safe for concurrent readers.
//   - Loader: caches built indices per DAT path with stampede protection,
//     so the scan pipeline and the API server share one build.
//
// # Duplicate hashes
//
// When two records carry the same hash, the first inserted record wins and
// later duplicates are discarded. This is deliberate: reference lists order
// entries by preference, and silently re-keying to a later entry would make
// lookups depend on map iteration order.
package dat
