// Package scanner implements the scan-and-catalog pipeline: recursive,
// symlink-following directory traversal, media classification, parallel
// timestamp resolution and age labeling, and batched persistence into the
// catalog store.
//
// Traversal is single-threaded and runs to completion before any record is
// collected; only per-file record building fans out across the worker
// pool. A scan persists every record it emits, so callers never perform a
// separate save step. Per-file failures are absorbed (the file is simply
// omitted); only a missing root fails the scan as a whole.
package scanner
