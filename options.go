package rosetta

import (
	"log/slog"
	"time"

	"github.com/Epiphytic/rosetta-aisp-llm/provider"
	"github.com/Epiphytic/rosetta-aisp-llm/tier"
)

// Defaults for ConversionOptions.
const (
	// DefaultConfidenceThreshold is the deterministic confidence below
	// which the fallback is considered.
	DefaultConfidenceThreshold = 0.8

	// DefaultModel is the model family requested from the provider.
	DefaultModel = "sonnet"

	// DefaultProvider is the registry name of the fallback backend.
	DefaultProvider = "claude"
)

// ConversionOptions configures ConvertWithFallback. The zero value is
// usable: fallback disabled, deterministic conversion only.
type ConversionOptions struct {
	// EnableLLMFallback turns the model fallback on. Default false.
	EnableLLMFallback bool

	// ConfidenceThreshold is the deterministic confidence below which a
	// fallback is attempted, in [0,1]. Zero selects
	// DefaultConfidenceThreshold.
	ConfidenceThreshold float64

	// Model is the model family to request (haiku, sonnet, opus), or
	// "auto" to escalate by tier. Empty selects DefaultModel.
	Model string

	// Provider is the registry name of the backend to use. Empty
	// selects DefaultProvider. Ignored when Client is set.
	Provider string

	// Client is a concrete provider instance, bypassing the registry.
	// Mainly useful for tests and embedders with custom backends.
	Client provider.Provider

	// TierOverride forces a conversion tier instead of auto-selection.
	TierOverride *tier.Tier

	// Timeout bounds the provider call. Zero selects
	// provider.DefaultTimeout.
	Timeout time.Duration

	// Converter is the deterministic engine. Nil selects
	// StoneConverter.
	Converter PrimaryConverter

	// Logger receives soft-failure diagnostics. Nil selects
	// slog.Default().
	Logger *slog.Logger
}

// withDefaults returns a copy with unset fields filled in.
func (o *ConversionOptions) withDefaults() ConversionOptions {
	var out ConversionOptions
	if o != nil {
		out = *o
	}
	if out.ConfidenceThreshold == 0 {
		out.ConfidenceThreshold = DefaultConfidenceThreshold
	}
	if out.Model == "" {
		out.Model = DefaultModel
	}
	if out.Provider == "" {
		out.Provider = DefaultProvider
	}
	if out.Converter == nil {
		out.Converter = StoneConverter{}
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	return out
}
