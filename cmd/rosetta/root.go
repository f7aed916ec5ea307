package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "rosetta",
	Short: "Bidirectional prose/AISP conversion with confidence-gated model fallback",
	Long: "Rosetta converts natural-language prose to AISP notation and back.\n" +
		"Conversion is deterministic first; when the symbol table leaves gaps,\n" +
		"an optional model fallback fills them in.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(toProseCmd)
	rootCmd.AddCommand(detectTierCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(reverseCmd)
	rootCmd.AddCommand(symbolsCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(roundTripCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
