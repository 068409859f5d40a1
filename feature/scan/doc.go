// Package scan walks a directory of dump files and classifies each one
// against a reference index.
//
// Files are hashed concurrently by a bounded worker pool; results flow
// through a single collector goroutine, so listeners and the report see a
// serialized stream and never need their own locking. A file whose hash is
// in the index is matched; an unmatched file is re-tried under the repair
// engine's padding hypotheses and reported as repairable when one of them
// hashes to a reference record; everything else is unknown.
//
// Platforms whose dumps carry a dumper-added header (iNES, Lynx, A78) are
// handled by skipping the header before hashing, per the platform's header
// rule.
package scan
