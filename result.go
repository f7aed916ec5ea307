package rosetta

import (
	"github.com/Epiphytic/rosetta-aisp-llm/tier"
	"github.com/Epiphytic/rosetta-aisp-llm/tokens"
)

// PrimaryResult is the outcome of the deterministic conversion pass.
// It is immutable once returned by a PrimaryConverter.
type PrimaryResult struct {
	// Output is the deterministic (possibly partial) notation.
	Output string

	// Confidence estimates correctness in [0,1].
	Confidence float64

	// Unmapped lists the terms the symbol table could not translate,
	// in order of first appearance.
	Unmapped []string

	// Tier is the tier the deterministic pass rendered at.
	Tier tier.Tier
}

// ConversionResult is the final answer of a conversion, whichever path
// produced it.
type ConversionResult struct {
	// Output is the notation text.
	Output string `json:"output"`

	// Confidence reflects the better of the paths actually used.
	Confidence float64 `json:"confidence"`

	// Tier the conversion was rendered at.
	Tier tier.Tier `json:"tier"`

	// Unmapped terms from the deterministic pass, kept for diagnostics
	// even when a model closed the gaps.
	Unmapped []string `json:"unmapped"`

	// Tokens reports the input/output size relationship.
	Tokens tokens.Stats `json:"tokens"`

	// UsedFallback is true exactly when a provider call contributed to
	// Output.
	UsedFallback bool `json:"used_fallback"`
}
