package config

import (
	"path/filepath"
	"time"
)

// DefaultBaseURL is the public creature API.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:              8080,
		DataDir:           ".dexview",
		APIBaseURL:        DefaultBaseURL,
		APITimeoutSeconds: 10,
		CollectionSize:    250,
		PageSize:          20,
		MinViewportHeight: 540,
		SearchMinChars:    3,
		FetchConcurrency:  0,
		NewsEntryIndex:    2,
	}
}

// DatabasePath returns the location of the account database inside DataDir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "dexview.db")
}

// LockPath returns the lock file guarding DataDir against a second server.
func (c *Config) LockPath() string {
	return filepath.Join(c.DataDir, "dexview.lock")
}

// APITimeout returns the per-request timeout for the creature API.
func (c *Config) APITimeout() time.Duration {
	if c.APITimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.APITimeoutSeconds) * time.Second
}
