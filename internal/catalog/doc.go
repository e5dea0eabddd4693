// Package catalog provides the durable store for file records and user
// settings, backed by SQLite.
//
// The store exposes upsert-by-path semantics for file records: a path
// uniquely identifies a record, and cataloging the same path again
// overwrites the prior row while preserving its surrogate id. Settings are
// flat key/value pairs; keys that were never saved read back as absent,
// never as an error.
//
// All operations are safe under concurrent callers. A single RWMutex
// serializes writers; the targeted update operations (age label, note,
// thumbnail path) silently affect zero rows when the path is unknown,
// mirroring upsert semantics rather than erroring.
package catalog
