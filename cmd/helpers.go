package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/ziadkadry99/dexview/internal/catalog"
	"github.com/ziadkadry99/dexview/internal/config"
	"github.com/ziadkadry99/dexview/internal/pokeapi"
	"github.com/ziadkadry99/dexview/internal/progress"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `dexview init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newClient creates the creature API client from config.
func newClient(cfg *config.Config) (*pokeapi.Client, error) {
	client, err := pokeapi.New(cfg.APIBaseURL, pokeapi.WithTimeout(cfg.APITimeout()))
	if err != nil {
		return nil, fmt.Errorf("creating API client: %w", err)
	}
	return client, nil
}

// loadCatalog fills cache in the foreground, reporting progress on stderr.
func loadCatalog(ctx context.Context, client *pokeapi.Client, cache *catalog.Cache, cfg *config.Config, opts ...catalog.LoaderOption) *catalog.Summary {
	reporter := progress.NewReporter("Loading catalog")
	reporter.Start(2 * cache.Size())
	opts = append(opts,
		catalog.WithConcurrency(cfg.FetchConcurrency),
		catalog.WithProgress(func(current, total int, message string) {
			reporter.Update(current, message)
		}),
	)
	summary := catalog.NewLoader(client, cache, opts...).Load(ctx)
	reporter.Finish()

	if verbose {
		for _, err := range summary.Errors {
			fmt.Fprintf(os.Stderr, "  fetch failed: %v\n", err)
		}
	}
	return summary
}
