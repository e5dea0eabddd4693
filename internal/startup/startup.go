package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mms8452/baby/internal/logging"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	GoVersion = runtime.Version()
)

// Config holds all application configuration
type Config struct {
	CacheDir       string
	DatabaseDir    string
	Port           string
	MetricsEnabled bool

	// Derived paths
	DatabasePath string
	ThumbnailDir string
}

// LoadConfig loads and validates configuration from environment variables
func LoadConfig() (*Config, error) {
	logSystemInfo()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	cacheDir := getEnv("CACHE_DIR", "./cache")
	databaseDir := getEnv("DATABASE_DIR", "./database")
	port := getEnv("PORT", "8080")
	metricsEnabled := getEnvBool("METRICS_ENABLED", true)

	logging.Info("  CACHE_DIR:        %s", cacheDir)
	logging.Info("  DATABASE_DIR:     %s", databaseDir)
	logging.Info("  PORT:             %s", port)
	logging.Info("  METRICS_ENABLED:  %v", metricsEnabled)
	logging.Info("  LOG_LEVEL:        %s", logging.GetLevel())

	var err error
	cacheDir, err = filepath.Abs(cacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cache directory path: %w", err)
	}

	databaseDir, err = filepath.Abs(databaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database directory path: %w", err)
	}

	config := &Config{
		CacheDir:       cacheDir,
		DatabaseDir:    databaseDir,
		Port:           port,
		MetricsEnabled: metricsEnabled,
		DatabasePath:   filepath.Join(databaseDir, "catalog.db"),
		ThumbnailDir:   filepath.Join(cacheDir, "thumbnails"),
	}

	// The database directory is required; create it and verify write
	// access before the store opens a file inside it.
	if err := ensureDirectory(databaseDir); err != nil {
		return nil, fmt.Errorf("database directory error: %w", err)
	}
	if err := testWriteAccess(databaseDir); err != nil {
		return nil, fmt.Errorf("database directory is not writable: %w", err)
	}
	logging.Info("  [OK] Database directory is writable")

	if err := ensureDirectory(config.ThumbnailDir); err != nil {
		return nil, fmt.Errorf("thumbnail directory error: %w", err)
	}
	logging.Info("  [OK] Thumbnail directory ready")

	return config, nil
}

// logSystemInfo logs version and runtime details at startup
func logSystemInfo() {
	logging.Info("baby-catalog %s (commit %s, %s, %s/%s)",
		Version, Commit, GoVersion, runtime.GOOS, runtime.GOARCH)
}

// getEnv returns the environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable value or a default
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return defaultValue
	}
}

// ensureDirectory creates the directory if it does not exist
func ensureDirectory(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		logging.Info("  Creating directory: %s", dir)
		return os.MkdirAll(dir, 0o755)
	}
	if err != nil {
		return fmt.Errorf("cannot stat directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s exists but is not a directory", dir)
	}
	return nil
}

// testWriteAccess verifies the directory is writable by creating and
// removing a probe file
func testWriteAccess(dir string) error {
	probe := filepath.Join(dir, ".perm-test")
	if err := os.WriteFile(probe, []byte("test"), 0o600); err != nil {
		return err
	}
	return os.Remove(probe)
}
