package roundtrip

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// invertible test converters: forward upper-cases, reverse lower-cases.
func upper(s string) (string, error) { return strings.ToUpper(s), nil }
func lower(s string) (string, error) { return strings.ToLower(s), nil }

func TestVerifyExactInverses(t *testing.T) {
	v := Verifier{Forward: upper, Reverse: lower}

	report, err := v.Verify("for all x in s", 5)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Divergences)
	require.Len(t, report.Runs, 5)
	for _, run := range report.Runs {
		assert.True(t, run.Exact, "round %d should be exact", run.Round)
		assert.False(t, run.Diverged)
	}
}

func TestVerifyDetectsDrift(t *testing.T) {
	// Forward drops one word per pass: drifts every round.
	drifting := func(s string) (string, error) {
		words := strings.Fields(s)
		if len(words) > 1 {
			words = words[:len(words)-1]
		}
		return strings.Join(words, " "), nil
	}

	v := Verifier{Forward: drifting, Reverse: func(s string) (string, error) { return s, nil }, Tolerance: 0.99}

	report, err := v.Verify("alpha beta gamma delta epsilon zeta", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Divergences)
}

func TestVerifyWithinToleranceNotDiverged(t *testing.T) {
	calls := 0
	// Reference keeps all words; later passes drop the last one. With
	// a loose tolerance the near-match passes.
	almost := func(s string) (string, error) {
		calls++
		if calls == 1 {
			return s, nil
		}
		words := strings.Fields(s)
		return strings.Join(words[:len(words)-1], " "), nil
	}

	v := Verifier{
		Forward:   almost,
		Reverse:   func(s string) (string, error) { return s, nil },
		Tolerance: 0.5,
	}

	report, err := v.Verify("one two three four five six seven eight nine ten", 1)
	require.NoError(t, err)
	require.Len(t, report.Runs, 1)
	assert.False(t, report.Runs[0].Exact)
	assert.False(t, report.Runs[0].Diverged)
}

func TestVerifyReverseFailureIsHard(t *testing.T) {
	broken := errors.New("reverse converter broken")
	v := Verifier{
		Forward: upper,
		Reverse: func(string) (string, error) { return "", broken },
	}

	_, err := v.Verify("text", 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, broken))
}

func TestVerifyRequiresConverters(t *testing.T) {
	_, err := Verifier{}.Verify("text", 1)
	assert.Error(t, err)
}

func TestVerifyMinimumOneRound(t *testing.T) {
	v := Verifier{Forward: upper, Reverse: lower}
	report, err := v.Verify("text", 0)
	require.NoError(t, err)
	assert.Len(t, report.Runs, 1)
}
