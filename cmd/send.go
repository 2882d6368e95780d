package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/outreach-cli/internal/mailer"
	"github.com/sells-group/outreach-cli/internal/store"
)

var sendInput string

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Deliver composed emails over SMTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSend(cmd, sendInput)
	},
}

// runSend delivers the drafts table at inputPath. The workflow command
// reuses it for its final stage.
func runSend(cmd *cobra.Command, inputPath string) error {
	if err := cfg.Validate("send"); err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	drafts, err := store.ReadDrafts(inputPath)
	if err != nil {
		return eris.Wrap(err, "read drafts")
	}
	if len(drafts) == 0 {
		fmt.Fprintln(out, "No drafts to send.")
		return nil
	}

	if cfg.SMTP.RedirectToTest {
		fmt.Fprintf(out, "Test mode: all emails go to %s\n", cfg.SMTP.TestAddress)
	}

	results := mailer.New(mailerConfig(cfg)).SendAll(cmd.Context(), drafts)

	sent := 0
	for _, r := range results {
		if r.Err == nil {
			sent++
		} else {
			fmt.Fprintf(out, "failed: %s (%s)\n", r.Company, r.Recipient)
		}
	}
	fmt.Fprintf(out, "Sent %d of %d emails.\n", sent, len(results))
	return nil
}

func init() {
	sendCmd.Flags().StringVar(&sendInput, "input", "", "composed emails CSV from compose (required)")
	_ = sendCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(sendCmd)
}
