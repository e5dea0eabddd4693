package startup

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		want         string
		setEnv       bool
	}{
		{
			name:         "Returns default when env var not set",
			key:          "TEST_UNSET_VAR",
			defaultValue: "default",
			want:         "default",
			setEnv:       false,
		},
		{
			name:         "Returns env value when set",
			key:          "TEST_SET_VAR",
			defaultValue: "default",
			envValue:     "custom",
			want:         "custom",
			setEnv:       true,
		},
		{
			name:         "Returns default when env var is empty",
			key:          "TEST_EMPTY_VAR",
			defaultValue: "default",
			envValue:     "",
			want:         "default",
			setEnv:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			} else {
				// Ensure the variable is not set
				os.Unsetenv(tt.key)
				t.Cleanup(func() {
					os.Unsetenv(tt.key)
				})
			}

			got := getEnv(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnv(%q, %q) = %q, want %q", tt.key, tt.defaultValue, got, tt.want)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue bool
		want         bool
	}{
		{"true", "true", false, true},
		{"yes", "yes", false, true},
		{"one", "1", false, true},
		{"on", "on", false, true},
		{"false", "false", true, false},
		{"no", "no", true, false},
		{"zero", "0", true, false},
		{"off", "off", true, false},
		{"mixed case", "TRUE", false, true},
		{"garbage falls back to default", "maybe", true, true},
		{"empty falls back to default", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL_VAR", tt.envValue)

			got := getEnvBool("TEST_BOOL_VAR", tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnvBool(%q, %v) = %v, want %v", tt.envValue, tt.defaultValue, got, tt.want)
			}
		})
	}
}

func TestEnsureDirectory(t *testing.T) {
	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "dir")
		if err := ensureDirectory(dir); err != nil {
			t.Fatalf("ensureDirectory() error = %v", err)
		}
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("directory was not created: %v", err)
		}
	})

	t.Run("accepts existing directory", func(t *testing.T) {
		if err := ensureDirectory(t.TempDir()); err != nil {
			t.Errorf("ensureDirectory() on existing dir error = %v", err)
		}
	})

	t.Run("rejects regular file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		if err := ensureDirectory(path); err == nil {
			t.Error("ensureDirectory() on a file should fail")
		}
	})
}

func TestTestWriteAccess(t *testing.T) {
	dir := t.TempDir()
	if err := testWriteAccess(dir); err != nil {
		t.Fatalf("testWriteAccess() error = %v", err)
	}

	// The probe file must not survive the check.
	if _, err := os.Stat(filepath.Join(dir, ".perm-test")); !os.IsNotExist(err) {
		t.Error("probe file was left behind")
	}
}

func TestLoadConfig(t *testing.T) {
	base := t.TempDir()
	t.Setenv("CACHE_DIR", filepath.Join(base, "cache"))
	t.Setenv("DATABASE_DIR", filepath.Join(base, "db"))
	t.Setenv("PORT", "9090")
	t.Setenv("METRICS_ENABLED", "false")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.Port != "9090" {
		t.Errorf("Port = %q, want 9090", config.Port)
	}
	if config.MetricsEnabled {
		t.Error("MetricsEnabled = true, want false")
	}
	if config.DatabasePath != filepath.Join(config.DatabaseDir, "catalog.db") {
		t.Errorf("DatabasePath = %q", config.DatabasePath)
	}
	if config.ThumbnailDir != filepath.Join(config.CacheDir, "thumbnails") {
		t.Errorf("ThumbnailDir = %q", config.ThumbnailDir)
	}

	// Both required directories are created during load.
	for _, dir := range []string{config.DatabaseDir, config.ThumbnailDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("directory %s was not created: %v", dir, err)
		}
	}
}
