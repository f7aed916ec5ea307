package rosetta

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/Epiphytic/rosetta-aisp-llm/stone"
	"github.com/Epiphytic/rosetta-aisp-llm/tier"
)

// ErrEmptyProse is returned when there is nothing to convert.
var ErrEmptyProse = errors.New("prose is empty")

// PrimaryConverter is the deterministic conversion collaborator. An
// error from the primary converter is hard: without a deterministic
// result there is nothing to fall back from.
type PrimaryConverter interface {
	// Convert translates prose deterministically. A nil tierHint lets
	// the converter pick a tier itself.
	Convert(prose string, tierHint *tier.Tier) (*PrimaryResult, error)
}

// ReverseConverter translates notation back to prose. Used by the
// round-trip verifier.
type ReverseConverter interface {
	ToProse(notation string) (string, error)
}

// StoneConverter adapts the symbol-table engine to the converter
// interfaces. The zero value is ready to use.
type StoneConverter struct{}

// Convert implements PrimaryConverter.
func (StoneConverter) Convert(prose string, tierHint *tier.Tier) (*PrimaryResult, error) {
	if strings.TrimSpace(prose) == "" {
		return nil, ErrEmptyProse
	}

	body, mapped, unmapped := stone.Convert(prose)
	confidence := stone.Confidence(utf8.RuneCountInString(prose), mapped)

	policy := tier.DefaultPolicy
	policy.Known = stone.Knows
	t := policy.Select(prose, unmapped, tierHint)

	output := body
	if t != tier.Minimal {
		output = stone.Document(stone.DocumentName(prose), body, t, confidence)
	}

	return &PrimaryResult{
		Output:     output,
		Confidence: confidence,
		Unmapped:   unmapped,
		Tier:       t,
	}, nil
}

// ToProse implements ReverseConverter.
func (StoneConverter) ToProse(notation string) (string, error) {
	if strings.TrimSpace(notation) == "" {
		return "", ErrEmptyProse
	}
	return stone.ToProse(notation), nil
}
