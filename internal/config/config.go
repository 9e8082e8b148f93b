// Package config loads crmdash settings from the environment and an optional .env file.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const appName = "crmdash"

// Config holds runtime configuration
type Config struct {
	// API settings
	APIBaseURL      string
	ProductsAddPath string
	Timeout         time.Duration
	MaxRetries      int
	RateLimit       float64
	RateBurst       int

	// Local state
	DataDir string
	LogFile string

	// Dashboard
	LowStockThreshold int

	// PDF form filling
	PDFTemplate string
	PDFOutput   string
}

// Load reads .env (if present) and then the CRMDASH_* environment variables.
func Load() (*Config, error) {
	// A missing .env is normal
	_ = godotenv.Load()

	dataDir, err := dataDir()
	if err != nil {
		return nil, err
	}

	return &Config{
		APIBaseURL:        getEnv("CRMDASH_API_URL", "https://dummyjson.com"),
		ProductsAddPath:   getEnv("CRMDASH_PRODUCTS_ADD_PATH", "/products/add"),
		Timeout:           getEnvDuration("CRMDASH_TIMEOUT", 30*time.Second),
		MaxRetries:        getEnvInt("CRMDASH_MAX_RETRIES", 2),
		RateLimit:         getEnvFloat("CRMDASH_RATE_LIMIT", 10),
		RateBurst:         getEnvInt("CRMDASH_RATE_BURST", 5),
		DataDir:           dataDir,
		LogFile:           getEnv("CRMDASH_LOG", ""),
		LowStockThreshold: getEnvInt("CRMDASH_LOW_STOCK", 10),
		PDFTemplate:       getEnv("CRMDASH_PDF_TEMPLATE", "Agent to Agent.pdf"),
		PDFOutput:         getEnv("CRMDASH_PDF_OUTPUT", filepath.Join(dataDir, "agent-to-agent.fdf")),
	}, nil
}

// dataDir returns the directory for the settings database
func dataDir() (string, error) {
	if dir := os.Getenv("CRMDASH_DATA_DIR"); dir != "" {
		return dir, nil
	}

	// Use XDG data directory or fallback to home directory
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, appName), nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
