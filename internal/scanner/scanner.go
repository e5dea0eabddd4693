package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mms8452/baby/internal/age"
	"github.com/mms8452/baby/internal/catalog"
	"github.com/mms8452/baby/internal/logging"
	"github.com/mms8452/baby/internal/mediatypes"
	"github.com/mms8452/baby/internal/metrics"
	"github.com/mms8452/baby/internal/workers"
)

// ErrRootNotFound is returned when the scan root does not exist.
var ErrRootNotFound = errors.New("scan root does not exist")

// Config configures the scanner's parallel record building.
type Config struct {
	// NumWorkers is the number of parallel workers (0 = auto based on CPU)
	NumWorkers int
	// BatchSize is the number of records per database transaction
	BatchSize int
	// ChannelBuffer is the size of the work channel buffer
	ChannelBuffer int
}

// DefaultConfig returns sensible defaults based on available resources.
// The worker count can be overridden with the SCAN_WORKERS environment
// variable.
func DefaultConfig() Config {
	return Config{
		NumWorkers:    workers.ForMixed(0),
		BatchSize:     500,
		ChannelBuffer: 1000,
	}
}

// Scanner walks a directory tree and catalogs every supported media file.
type Scanner struct {
	store  *catalog.Store
	config Config
}

// New creates a Scanner persisting into the given store.
func New(store *catalog.Store, config Config) *Scanner {
	if config.NumWorkers <= 0 {
		config.NumWorkers = workers.ForMixed(0)
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 500
	}
	if config.ChannelBuffer <= 0 {
		config.ChannelBuffer = 1000
	}
	return &Scanner{store: store, config: config}
}

// Scan traverses root recursively, builds a FileRecord for every supported
// media file, and upserts each record into the catalog before returning.
//
// birthDate is the reference date in YYYY-MM-DD form; when empty, records
// carry the age.LabelNotSet sentinel. Per-file failures (unclassifiable
// extension, unreadable metadata) skip the file without failing the scan.
// The returned slice has no guaranteed order.
func (s *Scanner) Scan(ctx context.Context, root, birthDate string) ([]catalog.FileRecord, error) {
	start := time.Now()
	metrics.ScanRunsTotal.Inc()

	rootInfo, err := os.Stat(root)
	if err != nil {
		metrics.ScanErrors.Inc()
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		metrics.ScanErrors.Inc()
		return nil, fmt.Errorf("failed to resolve scan root: %w", err)
	}

	logging.Info("Scanning %s with %d workers", absRoot, s.config.NumWorkers)
	metrics.ScanWorkers.Set(float64(s.config.NumWorkers))

	// Traversal runs to completion first; only record building is
	// parallelized. A root that is itself a regular file is cataloged
	// directly, no traversal needed.
	var entries []walkEntry
	if rootInfo.Mode().IsRegular() {
		entries = []walkEntry{{path: absRoot, info: rootInfo}}
	} else {
		entries = collectFiles(absRoot)
	}
	logging.Debug("Traversal found %d regular files under %s", len(entries), absRoot)
	if logging.IsDebugEnabled() {
		for _, entry := range entries {
			logging.Debug("  found %s", entry.path)
		}
	}

	records := s.buildRecords(entries, birthDate)

	if err := s.persist(ctx, records); err != nil {
		metrics.ScanErrors.Inc()
		return nil, err
	}

	duration := time.Since(start)
	metrics.ScanDuration.Observe(duration.Seconds())
	metrics.ScanFilesCataloged.Add(float64(len(records)))
	logging.Info("Scan complete: %d media files cataloged in %v", len(records), duration)

	return records, nil
}

// buildRecords fans the traversal entries out across a worker pool. Each
// file is classified, timestamped, and age-labeled independently; files
// that fail any step produce no record.
func (s *Scanner) buildRecords(entries []walkEntry, birthDate string) []catalog.FileRecord {
	jobs := make(chan walkEntry, s.config.ChannelBuffer)
	results := make(chan catalog.FileRecord, s.config.ChannelBuffer)

	var skipped atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < s.config.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range jobs {
				record, ok := s.buildRecord(entry, birthDate)
				if !ok {
					skipped.Add(1)
					continue
				}
				results <- record
			}
		}()
	}

	var records []catalog.FileRecord
	var collectorWg sync.WaitGroup
	collectorWg.Add(1)
	go func() {
		defer collectorWg.Done()
		for record := range results {
			records = append(records, record)
		}
	}()

	for _, entry := range entries {
		jobs <- entry
	}
	close(jobs)
	wg.Wait()
	close(results)
	collectorWg.Wait()

	if n := skipped.Load(); n > 0 {
		logging.Debug("Skipped %d of %d files during record building", n, len(entries))
	}
	return records
}

// buildRecord produces the catalog record for one traversal entry.
// Returns false when the file is not a supported media type or its
// metadata cannot be read.
func (s *Scanner) buildRecord(entry walkEntry, birthDate string) (catalog.FileRecord, bool) {
	kind := mediatypes.Classify(entry.info.Name())
	if kind == mediatypes.FileTypeOther {
		metrics.ScanFilesSkipped.WithLabelValues("unsupported").Inc()
		return catalog.FileRecord{}, false
	}

	createdAt, err := ResolveTimestamp(entry.path)
	if err != nil {
		logging.Debug("Skipping %s: %v", entry.path, err)
		metrics.ScanFilesSkipped.WithLabelValues("stat_error").Inc()
		return catalog.FileRecord{}, false
	}

	ageLabel := age.LabelNotSet
	if birthDate != "" {
		ageLabel = age.Label(birthDate, createdAt)
	}

	return catalog.FileRecord{
		Path:       entry.path,
		Name:       entry.info.Name(),
		Kind:       kind,
		MimeType:   mediatypes.GetMimeType(strings.ToLower(filepath.Ext(entry.info.Name()))),
		CreatedAt:  createdAt,
		ModifiedAt: createdAt,
		AgeLabel:   ageLabel,
	}, true
}

// persist upserts the records into the catalog in batched transactions.
func (s *Scanner) persist(ctx context.Context, records []catalog.FileRecord) error {
	for i := 0; i < len(records); i += s.config.BatchSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := i + s.config.BatchSize
		if end > len(records) {
			end = len(records)
		}

		tx, err := s.store.BeginBatch()
		if err != nil {
			return fmt.Errorf("failed to begin batch transaction: %w", err)
		}

		for j := i; j < end; j++ {
			if err := s.store.UpsertFile(tx, &records[j]); err != nil {
				logging.Warn("Error upserting file %s: %v", records[j].Path, err)
			}
		}

		if err := s.store.EndBatch(tx, nil); err != nil {
			return fmt.Errorf("failed to commit batch: %w", err)
		}
	}
	return nil
}
