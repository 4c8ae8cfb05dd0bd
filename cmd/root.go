package cmd

import "github.com/spf13/cobra"

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "dexview",
	Short: "Browsable creature catalog backed by a public API",
	Long: `dexview loads a creature collection from a public API into memory and
serves it as a paged card grid with a detail overlay, search, favorites
and user accounts. The catalog can also be exported to a spreadsheet or
exposed to AI agents via MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".dexview.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
