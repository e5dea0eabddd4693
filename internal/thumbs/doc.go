// Package thumbs provides the content-addressed thumbnail cache.
//
// Artifacts are named {md5(sourcePath)}.jpg inside a fixed cache
// directory, so the cache key is a pure function of the source path and a
// second request for the same path is a pure read. Video files are never
// passed to this package; thumbnailing is image-only.
package thumbs
