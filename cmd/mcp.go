package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/dexview/internal/catalog"
	mcpserver "github.com/ziadkadry99/dexview/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long: `Loads the catalog, then starts a Model Context Protocol (MCP) server on
stdio exposing record lookup, search and evolution tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client, err := newClient(cfg)
		if err != nil {
			return err
		}

		cache := catalog.NewCache(cfg.CollectionSize)
		summary := loadCatalog(context.Background(), client, cache, cfg)

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "dexview MCP server started on stdio (records=%d, complete=%d)\n",
			cache.Size(), summary.Complete)

		srv := mcpserver.NewServer(cache, catalog.NewEvolutionResolver(client, cache), nil, mcpserver.Options{
			SearchMinChars: cfg.SearchMinChars,
			NewsEntryIndex: cfg.NewsEntryIndex,
		})
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
