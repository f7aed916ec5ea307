// Package roundtrip checks semantic preservation of a conversion by
// running it backwards and forwards repeatedly.
//
// A divergence is a quality signal, not an error: the verifier reports
// mismatches without failing. Only a broken collaborator (a forward or
// reverse conversion that returns an error) aborts verification.
package roundtrip

import (
	"fmt"
	"strings"
)

// DefaultTolerance is the similarity below which a non-exact
// reproduction counts as a divergence.
const DefaultTolerance = 0.9

// ForwardFunc converts prose to notation.
type ForwardFunc func(prose string) (string, error)

// ReverseFunc converts notation back to prose.
type ReverseFunc func(notation string) (string, error)

// Verifier runs repeated reverse/forward conversions against a
// reference output.
type Verifier struct {
	// Forward converts prose to notation. Required.
	Forward ForwardFunc

	// Reverse converts notation to prose. Required.
	Reverse ReverseFunc

	// Similarity scores two notation strings in [0,1]. Nil selects a
	// word-overlap measure.
	Similarity func(a, b string) float64

	// Tolerance is the similarity below which a non-exact reproduction
	// is a divergence. Zero selects DefaultTolerance.
	Tolerance float64
}

// Run is the outcome of one reverse/forward cycle.
type Run struct {
	// Round is the 1-based cycle number.
	Round int `json:"round"`

	// Prose is the reverse conversion's output for this cycle.
	Prose string `json:"prose"`

	// Notation is the re-converted forward output.
	Notation string `json:"notation"`

	// Exact is true when Notation reproduces the reference exactly.
	Exact bool `json:"exact"`

	// Similarity between Notation and the reference.
	Similarity float64 `json:"similarity"`

	// Diverged is true when the reproduction is neither exact nor
	// within tolerance.
	Diverged bool `json:"diverged"`
}

// Report summarizes a verification.
type Report struct {
	// Reference is the original forward output every cycle is compared
	// against.
	Reference string `json:"reference"`

	// Runs holds one entry per cycle.
	Runs []Run `json:"runs"`

	// Divergences counts the diverged runs.
	Divergences int `json:"divergences"`
}

// Verify converts text forward once to obtain the reference, then runs
// rounds reverse/forward cycles, chaining each cycle's output into the
// next to surface cumulative drift. Conversion errors abort with a hard
// error; mismatches only appear in the report.
func (v Verifier) Verify(text string, rounds int) (*Report, error) {
	if v.Forward == nil || v.Reverse == nil {
		return nil, fmt.Errorf("roundtrip: forward and reverse converters are required")
	}
	if rounds < 1 {
		rounds = 1
	}

	similarity := v.Similarity
	if similarity == nil {
		similarity = wordOverlap
	}
	tolerance := v.Tolerance
	if tolerance == 0 {
		tolerance = DefaultTolerance
	}

	reference, err := v.Forward(text)
	if err != nil {
		return nil, fmt.Errorf("roundtrip: forward conversion: %w", err)
	}

	report := &Report{Reference: reference, Runs: make([]Run, 0, rounds)}
	current := reference

	for i := 1; i <= rounds; i++ {
		prose, err := v.Reverse(current)
		if err != nil {
			return nil, fmt.Errorf("roundtrip: reverse conversion (round %d): %w", i, err)
		}
		notation, err := v.Forward(prose)
		if err != nil {
			return nil, fmt.Errorf("roundtrip: re-conversion (round %d): %w", i, err)
		}

		run := Run{
			Round:      i,
			Prose:      prose,
			Notation:   notation,
			Exact:      notation == reference,
			Similarity: similarity(notation, reference),
		}
		run.Diverged = !run.Exact && run.Similarity < tolerance
		if run.Diverged {
			report.Divergences++
		}
		report.Runs = append(report.Runs, run)

		current = notation
	}

	return report, nil
}

// wordOverlap is a Jaccard index over lowercase space-separated words.
func wordOverlap(a, b string) float64 {
	setA := fields(a)
	setB := fields(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	common := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			common++
		}
	}
	return float64(common) / float64(len(setA)+len(setB)-common)
}

func fields(s string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = struct{}{}
	}
	return set
}
