package rosetta

import (
	"strings"

	"github.com/Epiphytic/rosetta-aisp-llm/roundtrip"
	"github.com/Epiphytic/rosetta-aisp-llm/stone"
)

// VerifyRoundTrip converts text to notation and back rounds times,
// reporting how faithfully each cycle reproduces the original forward
// output. A hard error indicates a broken converter, never a mere
// mismatch.
func VerifyRoundTrip(text string, rounds int) (*roundtrip.Report, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyProse
	}
	v := roundtrip.Verifier{
		Forward: func(prose string) (string, error) {
			out, _, _ := stone.Convert(prose)
			return out, nil
		},
		Reverse: func(notation string) (string, error) {
			return stone.ToProse(notation), nil
		},
		Similarity: stone.SemanticSimilarity,
	}
	return v.Verify(text, rounds)
}
