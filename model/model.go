// Package model maps conversion tiers to model families.
//
// The escalation strategy matches workload to capability: haiku for
// short symbol substitutions, sonnet for standard conversions, opus
// for full document synthesis.
package model

import (
	"strings"

	"github.com/Epiphytic/rosetta-aisp-llm/tier"
)

// Name is a normalized model family name.
type Name string

// Model family constants.
const (
	Haiku  Name = "haiku"
	Sonnet Name = "sonnet"
	Opus   Name = "opus"
)

// Auto requests tier-based selection instead of a fixed family.
const Auto = "auto"

// ForTier returns the model family for a conversion tier.
func ForTier(t tier.Tier) Name {
	switch t {
	case tier.Minimal:
		return Haiku
	case tier.Full:
		return Opus
	default:
		return Sonnet
	}
}

// Normalize converts a full model identifier to its family alias.
// "claude-sonnet-4-20250514" becomes "sonnet". Unrecognized names are
// returned as-is so custom models pass through to the backend.
func Normalize(name string) Name {
	switch Name(name) {
	case Haiku, Sonnet, Opus:
		return Name(name)
	}
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "opus"):
		return Opus
	case strings.Contains(lower, "sonnet"):
		return Sonnet
	case strings.Contains(lower, "haiku"):
		return Haiku
	}
	return Name(name)
}

// Known reports whether name is one of the built-in families.
func Known(name string) bool {
	switch Name(name) {
	case Haiku, Sonnet, Opus:
		return true
	}
	return false
}
