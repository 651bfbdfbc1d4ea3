package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/observability"
)

var flagLimit int

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Run one aggregation pass and print the articles as JSON",
	Long: `Run the full pipeline once, bypassing the cache, and write the ranked
article list to stdout. Useful for checking feed and keyword config.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPipeline(observability.NewUnregistered())
		if err != nil {
			return err
		}

		articles := p.hybrid.FetchNews(cmd.Context(), p.cfg.Limit(flagLimit))

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(articles)
	},
}

func init() {
	fetchCmd.Flags().IntVar(&flagLimit, "limit", 0, "max articles to return (default from config)")
}
