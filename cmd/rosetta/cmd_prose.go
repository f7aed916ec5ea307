package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Epiphytic/rosetta-aisp-llm/stone"
)

var toProseFlags struct {
	input string
}

var toProseCmd = &cobra.Command{
	Use:   "to-prose [notation]",
	Short: "Convert AISP notation back to prose",
	RunE: func(cmd *cobra.Command, args []string) error {
		notation, err := readInput(cmd, args, toProseFlags.input)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), stone.ToProse(notation))
		return nil
	},
}

var detectTierFlags struct {
	input string
}

var detectTierCmd = &cobra.Command{
	Use:   "detect-tier [prose]",
	Short: "Report which conversion tier the input would select",
	RunE: func(cmd *cobra.Command, args []string) error {
		prose, err := readInput(cmd, args, detectTierFlags.input)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), stone.DetectTier(prose))
		return nil
	},
}

func init() {
	toProseCmd.Flags().StringVarP(&toProseFlags.input, "input", "i", "", "Read notation from a file instead of args/stdin")
	detectTierCmd.Flags().StringVarP(&detectTierFlags.input, "input", "i", "", "Read prose from a file instead of args/stdin")
}
