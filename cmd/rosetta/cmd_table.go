package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Epiphytic/rosetta-aisp-llm/stone"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <phrase>",
	Short: "Look up the AISP symbol for a prose phrase",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		phrase := strings.Join(args, " ")
		symbol, ok := stone.Lookup(phrase)
		if !ok {
			return fmt.Errorf("no symbol for %q", phrase)
		}
		fmt.Fprintln(cmd.OutOrStdout(), symbol)
		return nil
	},
}

var reverseCmd = &cobra.Command{
	Use:   "reverse <symbol>",
	Short: "Look up the prose phrase for an AISP symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		phrase, ok := stone.Reverse(args[0])
		if !ok {
			return fmt.Errorf("no phrase for %q", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), phrase)
		return nil
	},
}

var symbolsFlags struct {
	category string
}

var symbolsCmd = &cobra.Command{
	Use:   "symbols",
	Short: "List known AISP symbols, optionally by category",
	RunE: func(cmd *cobra.Command, args []string) error {
		categories := stone.Categories()
		if symbolsFlags.category != "" {
			categories = []string{symbolsFlags.category}
		}
		for _, category := range categories {
			symbols := stone.SymbolsByCategory(category)
			if len(symbols) == 0 {
				return fmt.Errorf("unknown category %q", category)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", category)
			for _, symbol := range symbols {
				phrase, _ := stone.Reverse(symbol)
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\t%s\n", symbol, phrase)
			}
		}
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List symbol table categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, category := range stone.Categories() {
			fmt.Fprintln(cmd.OutOrStdout(), category)
		}
		return nil
	},
}

func init() {
	symbolsCmd.Flags().StringVarP(&symbolsFlags.category, "category", "c", "", "Restrict to one category")
}
