// Package config provides admin API key configuration and verification.
package config

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// AdminKeyConfig holds the bcrypt hash the destructive endpoints verify the
// presented admin key against. The plaintext key is never stored.
type AdminKeyConfig struct {
	KeyHash string
}

// NewAdminKeyConfig creates an admin key configuration from environment
// variables. It reads ADMIN_KEY_HASH (required).
func NewAdminKeyConfig() (*AdminKeyConfig, error) {
	hash := os.Getenv("ADMIN_KEY_HASH")
	if hash == "" {
		return nil, fmt.Errorf("ADMIN_KEY_HASH is required but not set")
	}

	config := &AdminKeyConfig{KeyHash: hash}
	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *AdminKeyConfig) normalize() error {
	// bcrypt hashes are 60 bytes; reject anything that cannot be one.
	if len(c.KeyHash) < 59 {
		return fmt.Errorf("ADMIN_KEY_HASH does not look like a bcrypt hash")
	}
	return nil
}

// HashKey hashes an admin key for storage in ADMIN_KEY_HASH.
func HashKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash key: %w", err)
	}
	return string(hash), nil
}

// VerifyKey verifies a presented admin key against the stored hash.
func (c *AdminKeyConfig) VerifyKey(key string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.KeyHash), []byte(key)) == nil
}
