package main

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/outreach-cli/internal/compose"
	"github.com/sells-group/outreach-cli/internal/store"
)

var (
	composeInput        string
	composeSenderName   string
	composeDescription  string
	composeInstructions string
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Draft a personalized outreach email per discovered company",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("compose"); err != nil {
			return err
		}

		sender := senderProfile(cfg)
		if composeSenderName != "" {
			sender.Name = composeSenderName
		}
		if composeDescription != "" {
			sender.Description = composeDescription
		}
		if composeInstructions != "" {
			sender.Instructions = composeInstructions
		}
		if sender.Name == "" {
			return eris.New("sender company name is required (flag --sender-name or sender.company_name)")
		}

		llmClient, err := newLLMClient(cfg)
		if err != nil {
			return err
		}

		out, err := store.NewDraftWriter(store.DraftPath(cfg.Output.DraftsDir, time.Now()))
		if err != nil {
			return eris.Wrap(err, "open output table")
		}
		defer out.Close()

		count, err := compose.New(llmClient).ComposeAll(cmd.Context(), composeInput, sender, out)
		if err != nil {
			return eris.Wrap(err, "compose run")
		}

		fmt.Printf("Composed %d emails.\n", count)
		fmt.Printf("Saved to %s\n", out.Path())
		return nil
	},
}

func init() {
	composeCmd.Flags().StringVar(&composeInput, "input", "", "company data CSV from discover (required)")
	composeCmd.Flags().StringVar(&composeSenderName, "sender-name", "", "sender company name (overrides config)")
	composeCmd.Flags().StringVar(&composeDescription, "description", "", "sender company description (overrides config)")
	composeCmd.Flags().StringVar(&composeInstructions, "instructions", "", "extra drafting instructions (overrides config)")
	_ = composeCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(composeCmd)
}
