package rosetta

import (
	"context"
	"fmt"

	"github.com/Epiphytic/rosetta-aisp-llm/model"
	"github.com/Epiphytic/rosetta-aisp-llm/provider"
	"github.com/Epiphytic/rosetta-aisp-llm/stone"
	"github.com/Epiphytic/rosetta-aisp-llm/tier"
	"github.com/Epiphytic/rosetta-aisp-llm/tokens"
)

// ConvertWithFallback converts prose to notation, consulting a model
// backend when the deterministic pass is not confident enough.
//
// The deterministic pass runs first and its failure is the only hard
// error. The fallback path degrades to a no-op on any provider problem:
// an unregistered or unavailable backend, a conversion error, or a
// timeout all log a warning and return the deterministic result with
// UsedFallback false. Exactly one provider call is made per fallback
// attempt; retrying is the provider's own concern.
func ConvertWithFallback(ctx context.Context, prose string, opts *ConversionOptions) (*ConversionResult, error) {
	o := opts.withDefaults()

	primary, err := o.Converter.Convert(prose, o.TierOverride)
	if err != nil {
		return nil, fmt.Errorf("primary conversion: %w", err)
	}

	if !o.EnableLLMFallback || primary.Confidence >= o.ConfidenceThreshold {
		return deterministicResult(prose, primary), nil
	}

	policy := tier.DefaultPolicy
	policy.Known = stone.Knows
	t := policy.Select(prose, primary.Unmapped, o.TierOverride)

	client := o.Client
	if client == nil {
		m := o.Model
		if m == model.Auto {
			m = string(model.ForTier(t))
		}
		cfg := provider.Config{Model: m, Timeout: o.Timeout}
		client, err = provider.New(o.Provider, cfg)
		if err != nil {
			o.Logger.Warn("fallback provider not registered",
				"provider", o.Provider, "error", err)
			return deterministicResult(prose, primary), nil
		}
	}

	if !client.IsAvailable() {
		o.Logger.Info("fallback provider unavailable, keeping deterministic result",
			"provider", client.Name())
		return deterministicResult(prose, primary), nil
	}

	req := provider.Request{
		Prose:         prose,
		Tier:          t,
		Unmapped:      primary.Unmapped,
		PartialOutput: primary.Output,
	}

	timeout := o.Timeout
	if timeout <= 0 {
		timeout = provider.DefaultTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	llm, err := client.Convert(callCtx, req)
	if err != nil {
		o.Logger.Warn("fallback conversion failed, keeping deterministic result",
			"provider", client.Name(), "tier", t.String(), "error", err)
		return deterministicResult(prose, primary), nil
	}

	output, confidence, used, err := merge(primary, llm)
	if err != nil {
		return nil, err
	}

	resultTier := primary.Tier
	if used {
		resultTier = t
	}
	return &ConversionResult{
		Output:       output,
		Confidence:   confidence,
		Tier:         resultTier,
		Unmapped:     primary.Unmapped,
		Tokens:       tokens.NewStats(prose, output),
		UsedFallback: used,
	}, nil
}

// deterministicResult wraps a primary result unchanged.
func deterministicResult(prose string, primary *PrimaryResult) *ConversionResult {
	return &ConversionResult{
		Output:     primary.Output,
		Confidence: primary.Confidence,
		Tier:       primary.Tier,
		Unmapped:   primary.Unmapped,
		Tokens:     tokens.NewStats(prose, primary.Output),
	}
}
