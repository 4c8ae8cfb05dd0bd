package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (DEXVIEW_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// DEXVIEW_PAGE_SIZE -> page_size, etc.
	if err := k.Load(env.Provider("DEXVIEW_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "DEXVIEW_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("api_base_url is required")
	}
	if c.CollectionSize < 1 {
		return fmt.Errorf("collection_size must be at least 1")
	}
	if c.PageSize < 1 {
		return fmt.Errorf("page_size must be at least 1")
	}
	if c.PageSize > c.CollectionSize {
		return fmt.Errorf("page_size %d exceeds collection_size %d", c.PageSize, c.CollectionSize)
	}
	if c.MinViewportHeight < 0 {
		return fmt.Errorf("min_viewport_height must be non-negative")
	}
	if c.SearchMinChars < 1 {
		return fmt.Errorf("search_min_chars must be at least 1")
	}
	if c.FetchConcurrency < 0 {
		return fmt.Errorf("fetch_concurrency must be non-negative")
	}
	if c.NewsEntryIndex < 0 {
		return fmt.Errorf("news_entry_index must be non-negative")
	}
	return nil
}
