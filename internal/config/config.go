// Package config provides environment-based configuration loading and
// validation for the service.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the service configuration. All values come from environment
// variables; Load applies defaults and validates ranges.
type Config struct {
	// HTTP
	Port string

	// Storage
	DatabaseURL string // PostgreSQL connection URL
	BlobDir     string // directory for generated PDF blobs

	// LLM
	GeminiAPIKey string

	// Rendering
	RenderConcurrency int // max simultaneous PDF renders; 0 means per-CPU
}

// Load creates a Config from environment variables. PORT defaults to 8000,
// BLOB_DIR to ./blobs. DATABASE_URL and GEMINI_API_KEY are required.
func Load() (*Config, error) {
	concurrency := 0
	if s := os.Getenv("RENDER_CONCURRENCY"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid RENDER_CONCURRENCY: %v", err)
		}
		concurrency = n
	}

	cfg := &Config{
		Port:              os.Getenv("PORT"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		BlobDir:           os.Getenv("BLOB_DIR"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		RenderConcurrency: concurrency,
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// normalize applies defaults and validates the configuration.
func (c *Config) normalize() error {
	if c.Port == "" {
		c.Port = "8000"
	}
	if c.BlobDir == "" {
		c.BlobDir = "./blobs"
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required but not set")
	}
	if c.RenderConcurrency < 0 {
		return fmt.Errorf("RENDER_CONCURRENCY must be non-negative, got: %d", c.RenderConcurrency)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
