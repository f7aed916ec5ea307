package main

import (
	"fmt"

	"github.com/spf13/cobra"

	rosetta "github.com/Epiphytic/rosetta-aisp-llm"
)

var roundTripFlags struct {
	input  string
	rounds int
	format string
}

var roundTripCmd = &cobra.Command{
	Use:   "round-trip [prose]",
	Short: "Verify conversion stability over repeated prose/notation cycles",
	Long: `Convert the input to notation and back repeatedly, reporting any
round where the notation diverges from the reference conversion.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args, roundTripFlags.input)
		if err != nil {
			return err
		}

		report, err := rosetta.VerifyRoundTrip(text, roundTripFlags.rounds)
		if err != nil {
			return err
		}

		if roundTripFlags.format == "json" {
			return printJSON(cmd, report)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "reference: %s\n", report.Reference)
		for _, run := range report.Runs {
			status := "stable"
			if run.Diverged {
				status = fmt.Sprintf("diverged (similarity %.2f)", run.Similarity)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "round %d: %s\n", run.Round, status)
		}
		if report.Divergences == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "round-trip stable")
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%d divergence(s)\n", report.Divergences)
		}
		return nil
	},
}

func init() {
	f := roundTripCmd.Flags()
	f.StringVarP(&roundTripFlags.input, "input", "i", "", "Read prose from a file instead of args/stdin")
	f.IntVarP(&roundTripFlags.rounds, "rounds", "n", 3, "Number of conversion cycles")
	f.StringVarP(&roundTripFlags.format, "format", "f", "text", "Output format (text, json)")
}
