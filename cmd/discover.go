package main

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/outreach-cli/internal/extract"
	"github.com/sells-group/outreach-cli/internal/pipeline"
	"github.com/sells-group/outreach-cli/internal/store"
)

var (
	discoverIndustry string
	discoverLocation string
	discoverCount    int
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find companies with contact emails for an industry and location",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("discover"); err != nil {
			return err
		}

		llmClient, err := newLLMClient(cfg)
		if err != nil {
			return err
		}

		path := store.ProspectPath(cfg.Output.ProspectsDir, discoverIndustry, discoverLocation, time.Now())
		out, err := store.NewProspectWriter(path)
		if err != nil {
			return eris.Wrap(err, "open output table")
		}
		defer out.Close()

		p := pipeline.New(newSearchProvider(cfg), newFetcher(cfg), extract.New(llmClient))
		result, err := p.Run(cmd.Context(), discoverIndustry, discoverLocation, discoverCount, out)
		if err != nil {
			return eris.Wrap(err, "discovery run")
		}

		fmt.Printf("Found %d of %d requested companies with emails.\n", result.Achieved, result.Requested)
		fmt.Printf("Saved to %s\n", result.OutputPath)
		return nil
	},
}

func init() {
	discoverCmd.Flags().StringVar(&discoverIndustry, "industry", "", "target industry, e.g. \"construction company\" (required)")
	discoverCmd.Flags().StringVar(&discoverLocation, "location", "", "target location, e.g. \"colorado\" (required)")
	discoverCmd.Flags().IntVar(&discoverCount, "count", 10, "number of companies with emails to find")
	_ = discoverCmd.MarkFlagRequired("industry")
	_ = discoverCmd.MarkFlagRequired("location")
	rootCmd.AddCommand(discoverCmd)
}
