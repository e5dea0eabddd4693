package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Scanner metrics
var (
	ScanRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "baby_catalog_scan_runs_total",
			Help: "Total number of folder scans",
		},
	)

	ScanErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "baby_catalog_scan_errors_total",
			Help: "Total number of failed folder scans",
		},
	)

	ScanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "baby_catalog_scan_duration_seconds",
			Help:    "Folder scan duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)

	ScanFilesCataloged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "baby_catalog_scan_files_cataloged_total",
			Help: "Total number of media files cataloged by scans",
		},
	)

	ScanFilesSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baby_catalog_scan_files_skipped_total",
			Help: "Total number of files skipped during scans",
		},
		[]string{"reason"}, // "unsupported", "stat_error"
	)

	ScanWorkers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "baby_catalog_scan_workers",
			Help: "Number of parallel workers used by the last scan",
		},
	)
)

// Thumbnail metrics
var (
	ThumbnailCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "baby_catalog_thumbnail_cache_hits_total",
			Help: "Total number of thumbnail requests served from cache",
		},
	)

	ThumbnailCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "baby_catalog_thumbnail_cache_misses_total",
			Help: "Total number of thumbnail requests requiring generation",
		},
	)

	ThumbnailGenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "baby_catalog_thumbnail_generation_duration_seconds",
			Help:    "Thumbnail generation duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	ThumbnailErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baby_catalog_thumbnail_errors_total",
			Help: "Total number of thumbnail generation failures",
		},
		[]string{"reason"}, // "not_found", "decode", "write", "record"
	)
)

// Database metrics
var (
	DBQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baby_catalog_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "baby_catalog_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	DBRowsAffected = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "baby_catalog_db_rows_affected",
			Help:    "Number of rows affected by write operations",
			Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000},
		},
		[]string{"operation"},
	)
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baby_catalog_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "baby_catalog_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)
