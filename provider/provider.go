// Package provider defines the capability interface for model-backed
// notation converters.
//
// A provider is the fallback path behind the deterministic symbol
// engine: when deterministic confidence is low, the orchestrator hands
// the prose, the selected tier, and the coverage gaps to a provider and
// asks for a model-generated conversion. Providers register themselves
// by name (see Register) so backends can be swapped without touching
// the callers.
//
// Implementations must be safe for concurrent use. Retry policy, process
// pooling, and rate limiting are internal concerns of each provider; the
// caller sees exactly one Convert call per fallback attempt.
package provider

import (
	"context"

	"github.com/Epiphytic/rosetta-aisp-llm/tier"
)

// Provider is the contract a model backend must satisfy.
type Provider interface {
	// Convert issues one model invocation for the given request.
	// The context bounds the call; implementations must map a context
	// deadline to ErrTimeout. On success the result output is non-empty
	// notation text and the confidence, when reported, is in [0,1].
	Convert(ctx context.Context, req Request) (*Result, error)

	// IsAvailable reports whether the backend can be reached. The check
	// must be cheap and must not fail for a missing backend; a provider
	// that is not installed simply returns false.
	IsAvailable() bool

	// Name returns the provider name (e.g. "claude", "ollama").
	Name() string
}

// Request carries one fallback conversion attempt. It is constructed
// fresh per attempt and never mutated after being handed to a provider.
type Request struct {
	// Prose is the natural-language input. Must be non-empty.
	Prose string

	// Tier is the requested conversion effort level.
	Tier tier.Tier

	// Unmapped lists the terms the deterministic engine could not map,
	// in order of appearance. May be empty for a purely stylistic pass.
	Unmapped []string

	// PartialOutput is the deterministic partial conversion, passed so
	// the model can build on existing coverage instead of discarding it.
	PartialOutput string
}

// Result is a provider's answer to a conversion request.
type Result struct {
	// Output is the converted notation.
	Output string

	// Confidence is the model's self-reported correctness estimate in
	// [0,1], or nil when the backend does not report one.
	Confidence *float64

	// Model is the model that produced the output.
	Model string

	// TokensUsed is the approximate token consumption, when known.
	TokensUsed int
}
