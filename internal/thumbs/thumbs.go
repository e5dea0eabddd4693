package thumbs

import (
	"context"
	"crypto/md5" //nolint:gosec // MD5 used for cache key generation, not security
	"errors"
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // webp decode support

	_ "image/gif"
	_ "image/png"

	"github.com/mms8452/baby/internal/catalog"
	"github.com/mms8452/baby/internal/logging"
	"github.com/mms8452/baby/internal/metrics"
)

// Thumbnails fit within this bounding box, aspect ratio preserved.
const (
	maxWidth  = 300
	maxHeight = 300

	jpegQuality = 85
)

var (
	// ErrSourceNotFound is returned when the source file does not exist.
	ErrSourceNotFound = errors.New("source file does not exist")
	// ErrDecode is returned when the source cannot be decoded as an image.
	ErrDecode = errors.New("source is not a decodable image")
)

// Generator produces and caches JPEG thumbnails for cataloged images.
type Generator struct {
	cacheDir string
	store    *catalog.Store
}

// New creates a Generator writing artifacts into cacheDir, which is
// created if absent.
func New(cacheDir string, store *catalog.Store) *Generator {
	logging.Debug("Thumbnail cache dir: %s", cacheDir)
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		logging.Warn("Failed to create thumbnail cache dir: %v", err)
	}
	return &Generator{
		cacheDir: cacheDir,
		store:    store,
	}
}

// CachePath returns the deterministic artifact path for a source path.
// The key is a pure function of the path bytes, not the file content: an
// edited-in-place source keeps its stale thumbnail. Known tradeoff.
func (g *Generator) CachePath(sourcePath string) string {
	hash := md5.Sum([]byte(sourcePath)) //nolint:gosec // cache key, not security
	return filepath.Join(g.cacheDir, fmt.Sprintf("%x.jpg", hash))
}

// Generate returns the thumbnail path for the image at sourcePath,
// producing and caching the artifact on first request.
//
// An existing artifact is returned immediately without regeneration.
// Otherwise the source is decoded, resized to fit 300x300 with Lanczos
// resampling, JPEG-encoded, and written to the cache; the corresponding
// catalog record then has its thumbnail path persisted. Concurrent calls
// for the same source may race and both generate, but produce identical
// output.
func (g *Generator) Generate(ctx context.Context, sourcePath string) (string, error) {
	if _, err := os.Stat(sourcePath); err != nil {
		metrics.ThumbnailErrors.WithLabelValues("not_found").Inc()
		return "", fmt.Errorf("%w: %s", ErrSourceNotFound, sourcePath)
	}

	cachePath := g.CachePath(sourcePath)

	if _, err := os.Stat(cachePath); err == nil {
		logging.Debug("Thumbnail cache hit: %s", sourcePath)
		metrics.ThumbnailCacheHits.Inc()
		return cachePath, nil
	}
	metrics.ThumbnailCacheMisses.Inc()

	start := time.Now()
	logging.Debug("Thumbnail generating: %s", sourcePath)

	img, err := imaging.Open(sourcePath, imaging.AutoOrientation(true))
	if err != nil {
		metrics.ThumbnailErrors.WithLabelValues("decode").Inc()
		return "", fmt.Errorf("%w: %s: %v", ErrDecode, sourcePath, err)
	}

	thumb := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	// Write to a temp file and rename into place. Concurrent requests for
	// the same source are not deduplicated; the rename keeps the losing
	// writer from corrupting the winner's artifact (both produce identical
	// output anyway).
	tmp, err := os.CreateTemp(g.cacheDir, ".thumb-*")
	if err != nil {
		metrics.ThumbnailErrors.WithLabelValues("write").Inc()
		return "", fmt.Errorf("failed to create thumbnail file: %w", err)
	}

	if err := jpeg.Encode(tmp, thumb, &jpeg.Options{Quality: jpegQuality}); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		metrics.ThumbnailErrors.WithLabelValues("write").Inc()
		return "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		metrics.ThumbnailErrors.WithLabelValues("write").Inc()
		return "", fmt.Errorf("failed to write thumbnail: %w", err)
	}
	if err := os.Rename(tmp.Name(), cachePath); err != nil {
		os.Remove(tmp.Name())
		metrics.ThumbnailErrors.WithLabelValues("write").Inc()
		return "", fmt.Errorf("failed to place thumbnail in cache: %w", err)
	}

	metrics.ThumbnailGenerationDuration.Observe(time.Since(start).Seconds())
	logging.Debug("Thumbnail cached: %s", cachePath)

	if err := g.updateRecord(ctx, sourcePath, cachePath); err != nil {
		return "", err
	}

	return cachePath, nil
}

// updateRecord persists the thumbnail path onto the file's catalog record.
func (g *Generator) updateRecord(ctx context.Context, sourcePath, cachePath string) error {
	record, err := g.store.GetFileByPath(ctx, sourcePath)
	if err != nil {
		return fmt.Errorf("failed to look up catalog record: %w", err)
	}
	if record == nil {
		metrics.ThumbnailErrors.WithLabelValues("record").Inc()
		return fmt.Errorf("%w: %s", catalog.ErrRecordNotFound, sourcePath)
	}
	return g.store.UpdateThumbnailPath(ctx, sourcePath, cachePath)
}
