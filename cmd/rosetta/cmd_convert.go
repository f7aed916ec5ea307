package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	rosetta "github.com/Epiphytic/rosetta-aisp-llm"
	"github.com/Epiphytic/rosetta-aisp-llm/provider"
	_ "github.com/Epiphytic/rosetta-aisp-llm/providers"
	"github.com/Epiphytic/rosetta-aisp-llm/tier"
)

var convertFlags struct {
	input       string
	tierName    string
	format      string
	llmFallback bool
	threshold   float64
	model       string
	providerID  string
	timeout     time.Duration
	configPath  string
}

var convertCmd = &cobra.Command{
	Use:   "convert [prose]",
	Short: "Convert prose to AISP notation",
	Long: `Convert natural-language prose to AISP notation.

The deterministic converter runs first. With --llm-fallback, results
below the confidence threshold are escalated to the configured model
backend and the best result wins.

Usage:
  rosetta convert "define x as 5"
  rosetta convert --input spec.txt --format json
  echo "for all x in S" | rosetta convert --llm-fallback --model haiku`,
	RunE: runConvert,
}

func init() {
	f := convertCmd.Flags()
	f.StringVarP(&convertFlags.input, "input", "i", "", "Read prose from a file instead of args/stdin")
	f.StringVarP(&convertFlags.tierName, "tier", "t", "", "Force a tier (minimal, standard, full)")
	f.StringVarP(&convertFlags.format, "format", "f", "text", "Output format (text, json)")
	f.BoolVar(&convertFlags.llmFallback, "llm-fallback", false, "Escalate low-confidence results to a model backend")
	f.Float64Var(&convertFlags.threshold, "threshold", 0, fmt.Sprintf("Confidence threshold for fallback (default %v)", rosetta.DefaultConfidenceThreshold))
	f.StringVarP(&convertFlags.model, "model", "m", "", "Model family for the fallback (haiku, sonnet, opus, auto)")
	f.StringVar(&convertFlags.providerID, "provider", "", "Fallback backend name (claude, ollama)")
	f.DurationVar(&convertFlags.timeout, "timeout", 0, "Fallback request timeout")
	f.StringVarP(&convertFlags.configPath, "config", "c", "", "Provider config file (TOML or YAML)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	prose, err := readInput(cmd, args, convertFlags.input)
	if err != nil {
		return err
	}

	opts := &rosetta.ConversionOptions{
		EnableLLMFallback:   convertFlags.llmFallback,
		ConfidenceThreshold: convertFlags.threshold,
		Model:               convertFlags.model,
		Provider:            convertFlags.providerID,
		Timeout:             convertFlags.timeout,
	}

	if convertFlags.configPath != "" {
		cfg, err := provider.Load(convertFlags.configPath)
		if err != nil {
			return err
		}
		if opts.Provider == "" {
			opts.Provider = cfg.Provider
		}
		if opts.Provider == "" {
			opts.Provider = rosetta.DefaultProvider
		}
		if opts.Model == "" {
			opts.Model = cfg.Model
		}
		if opts.Timeout == 0 {
			opts.Timeout = cfg.EffectiveTimeout()
		}
		client, err := provider.New(opts.Provider, cfg)
		if err != nil {
			return err
		}
		opts.Client = client
	}

	if convertFlags.tierName != "" {
		t, err := tier.Parse(convertFlags.tierName)
		if err != nil {
			return err
		}
		opts.TierOverride = &t
	}

	result, err := rosetta.ConvertWithFallback(cmd.Context(), prose, opts)
	if err != nil {
		return err
	}

	if convertFlags.format == "json" {
		return printJSON(cmd, result)
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Output)
	fmt.Fprintf(cmd.ErrOrStderr(), "tier=%s confidence=%.2f fallback=%v\n",
		result.Tier, result.Confidence, result.UsedFallback)
	if len(result.Unmapped) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "unmapped: %v\n", result.Unmapped)
	}
	return nil
}
