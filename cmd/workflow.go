package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/outreach-cli/internal/compose"
	"github.com/sells-group/outreach-cli/internal/extract"
	"github.com/sells-group/outreach-cli/internal/pipeline"
	"github.com/sells-group/outreach-cli/internal/store"
)

var workflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Guided discover, compose and send flow",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("discover"); err != nil {
			return err
		}
		if err := cfg.Validate("compose"); err != nil {
			return err
		}

		in := bufio.NewReader(cmd.InOrStdin())
		out := cmd.OutOrStdout()
		ctx := cmd.Context()

		// Stage 1: discovery.
		industry := promptString(in, out, "Target industry", "")
		if industry == "" {
			return eris.New("industry is required")
		}
		location := promptString(in, out, "Target location", "")
		if location == "" {
			return eris.New("location is required")
		}
		count := promptInt(in, out, "How many companies with emails", 10)

		llmClient, err := newLLMClient(cfg)
		if err != nil {
			return err
		}

		prospectPath := store.ProspectPath(cfg.Output.ProspectsDir, industry, location, time.Now())
		prospects, err := store.NewProspectWriter(prospectPath)
		if err != nil {
			return eris.Wrap(err, "open output table")
		}

		p := pipeline.New(newSearchProvider(cfg), newFetcher(cfg), extract.New(llmClient))
		result, err := p.Run(ctx, industry, location, count, prospects)
		if closeErr := prospects.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return eris.Wrap(err, "discovery run")
		}

		fmt.Fprintf(out, "\nFound %d of %d requested companies with emails.\n", result.Achieved, result.Requested)
		fmt.Fprintf(out, "Saved to %s\n\n", result.OutputPath)
		if result.Achieved == 0 {
			fmt.Fprintln(out, "Nothing to compose; try broader parameters.")
			return nil
		}

		// Stage 2: composition.
		if !confirm(in, out, "Compose outreach emails for these companies?") {
			return nil
		}

		sender := senderProfile(cfg)
		sender.Name = promptString(in, out, "Your company name", sender.Name)
		if sender.Name == "" {
			return eris.New("sender company name is required")
		}
		sender.Description = promptString(in, out, "Your company description", sender.Description)
		sender.Instructions = promptString(in, out, "Extra drafting instructions", sender.Instructions)

		drafts, err := store.NewDraftWriter(store.DraftPath(cfg.Output.DraftsDir, time.Now()))
		if err != nil {
			return eris.Wrap(err, "open output table")
		}

		composed, err := compose.New(llmClient).ComposeAll(ctx, result.OutputPath, sender, drafts)
		if closeErr := drafts.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return eris.Wrap(err, "compose run")
		}

		fmt.Fprintf(out, "\nComposed %d emails.\n", composed)
		fmt.Fprintf(out, "Saved to %s\n\n", drafts.Path())
		if composed == 0 {
			return nil
		}

		// Stage 3: delivery.
		if err := cfg.Validate("send"); err != nil {
			fmt.Fprintf(out, "Sending unavailable: %v\n", err)
			fmt.Fprintf(out, "Fix the configuration and run: outreach-cli send --input %s\n", drafts.Path())
			return nil
		}
		if cfg.SMTP.RedirectToTest {
			fmt.Fprintf(out, "Test mode: all emails go to %s\n", cfg.SMTP.TestAddress)
		}
		if !confirm(in, out, "Send them now?") {
			fmt.Fprintf(out, "Skipped. Send later with: outreach-cli send --input %s\n", drafts.Path())
			return nil
		}

		return runSend(cmd, drafts.Path())
	},
}

func init() {
	rootCmd.AddCommand(workflowCmd)
}

func promptString(in *bufio.Reader, out io.Writer, label, def string) string {
	if def != "" {
		fmt.Fprintf(out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(out, "%s: ", label)
	}
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return def
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

func promptInt(in *bufio.Reader, out io.Writer, label string, def int) int {
	raw := promptString(in, out, label, strconv.Itoa(def))
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func confirm(in *bufio.Reader, out io.Writer, label string) bool {
	answer := promptString(in, out, label+" (y/n)", "n")
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}
