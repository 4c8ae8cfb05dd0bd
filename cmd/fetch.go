package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/dexview/internal/catalog"
	"github.com/ziadkadry99/dexview/internal/export"
	"github.com/ziadkadry99/dexview/internal/view"
)

var (
	fetchSize  int
	fetchXLSX  string
	fetchQuiet bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Load the catalog once and print or export it",
	Long: `Loads every record from the creature API, prints a summary table and
optionally writes the catalog to an .xlsx spreadsheet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if fetchSize > 0 {
			cfg.CollectionSize = fetchSize
		}

		client, err := newClient(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		cache := catalog.NewCache(cfg.CollectionSize)
		summary := loadCatalog(ctx, client, cache, cfg)

		if !fetchQuiet {
			fmt.Println(renderCatalog(cache))
		}
		fmt.Fprintf(os.Stderr, "%d of %d records complete in %s (%d failed fetches)\n",
			summary.Complete, cache.Size(), summary.Duration.Round(time.Millisecond), len(summary.Errors))

		if fetchXLSX != "" {
			if err := export.WriteXLSX(fetchXLSX, cache, cfg.NewsEntryIndex); err != nil {
				return fmt.Errorf("exporting catalog: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Wrote %s\n", fetchXLSX)
		}
		return nil
	},
}

// renderCatalog formats every cached record as a table.
func renderCatalog(cache *catalog.Cache) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Number", "Name", "Types", "Height", "Weight", "Color", "Complete"})

	for i := 1; i <= cache.Size(); i++ {
		k := catalog.Key(i)
		rec, ok := cache.Get(k)
		card := view.NewCard(k, rec, ok)
		row := table.Row{card.Number, card.Name, strings.Join(card.Types, ", "), "", "", card.Color, "no"}
		if rec.Primary != nil {
			row[3] = view.FormatHeight(rec.Primary.Height)
			row[4] = view.FormatWeight(rec.Primary.Weight)
		}
		if card.Loaded {
			row[6] = "yes"
		}
		tw.AppendRow(row)
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func init() {
	fetchCmd.Flags().IntVar(&fetchSize, "size", 0, "override collection_size for this run")
	fetchCmd.Flags().StringVar(&fetchXLSX, "xlsx", "", "write the catalog to this .xlsx file")
	fetchCmd.Flags().BoolVarP(&fetchQuiet, "quiet", "q", false, "skip the summary table")
	rootCmd.AddCommand(fetchCmd)
}
