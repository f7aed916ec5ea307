package rosetta

import (
	"errors"
	"fmt"

	"github.com/Epiphytic/rosetta-aisp-llm/provider"
)

// FallbackFloor is the minimum confidence assigned to a model output
// that closed coverage gaps without reporting its own score.
const FallbackFloor = 0.75

// corroborationBump is the confidence raise applied when the model
// independently reproduces the deterministic output.
const corroborationBump = 0.05

// ErrMergeInvariant indicates the merge produced an out-of-range
// confidence or an empty output. It signals an internal logic error,
// not a conversion-quality problem.
var ErrMergeInvariant = errors.New("merge invariant violation")

// merge combines the deterministic result with a model result.
//
// The model output supersedes when it self-reports a higher confidence
// than the deterministic pass, or when it carries no score but the
// deterministic output had coverage gaps for the model to close (the
// synthesized confidence is then at least FallbackFloor). Otherwise the
// deterministic output is kept, with a small confidence raise when the
// model corroborates it.
//
// merge is a pure function of its two inputs; identical inputs always
// produce identical outputs.
func merge(primary *PrimaryResult, llm *provider.Result) (output string, confidence float64, usedFallback bool, err error) {
	switch {
	case llm.Confidence != nil && *llm.Confidence > primary.Confidence && llm.Output != "":
		output = llm.Output
		confidence = *llm.Confidence
		usedFallback = true

	case llm.Confidence == nil && llm.Output != "" && len(primary.Unmapped) > 0:
		output = llm.Output
		confidence = max(primary.Confidence, FallbackFloor)
		usedFallback = true

	default:
		output = primary.Output
		confidence = primary.Confidence
		if llm.Output != "" && llm.Output == primary.Output {
			confidence = min(1, confidence+corroborationBump)
		}
	}

	if output == "" || confidence < 0 || confidence > 1 {
		return "", 0, false, fmt.Errorf("%w: output %d bytes, confidence %v",
			ErrMergeInvariant, len(output), confidence)
	}
	return output, confidence, usedFallback, nil
}
