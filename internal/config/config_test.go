package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir) // keep any developer .env out of the test
	t.Setenv("CRMDASH_DATA_DIR", dir)
	for _, key := range []string{"CRMDASH_API_URL", "CRMDASH_TIMEOUT", "CRMDASH_LOW_STOCK", "CRMDASH_PDF_OUTPUT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIBaseURL != "https://dummyjson.com" {
		t.Errorf("Expected default API URL, got %s", cfg.APIBaseURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Expected 30s timeout, got %v", cfg.Timeout)
	}
	if cfg.LowStockThreshold != 10 {
		t.Errorf("Expected low stock threshold 10, got %d", cfg.LowStockThreshold)
	}
	if cfg.DataDir != dir {
		t.Errorf("Expected data dir %s, got %s", dir, cfg.DataDir)
	}
	if cfg.PDFOutput != filepath.Join(dir, "agent-to-agent.fdf") {
		t.Errorf("Unexpected PDF output path %s", cfg.PDFOutput)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CRMDASH_DATA_DIR", dir)
	t.Setenv("CRMDASH_API_URL", "http://localhost:9999")
	t.Setenv("CRMDASH_TIMEOUT", "5s")
	t.Setenv("CRMDASH_RATE_LIMIT", "2.5")
	t.Setenv("CRMDASH_LOW_STOCK", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:9999" {
		t.Errorf("Expected overridden API URL, got %s", cfg.APIBaseURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %v", cfg.Timeout)
	}
	if cfg.RateLimit != 2.5 {
		t.Errorf("Expected rate limit 2.5, got %v", cfg.RateLimit)
	}
	if cfg.LowStockThreshold != 10 {
		t.Errorf("Expected invalid value to fall back to 10, got %d", cfg.LowStockThreshold)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restoring working directory: %v", err)
		}
	})
}
