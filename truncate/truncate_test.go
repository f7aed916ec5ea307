package truncate

import (
	"strings"
	"testing"

	"github.com/Epiphytic/rosetta-aisp-llm/tokens"
)

func TestTruncateFitsUnchanged(t *testing.T) {
	text := "short text"
	got, truncated := NewFromEnd().Truncate(text, 100)
	if truncated || got != text {
		t.Errorf("Truncate = (%q, %v), want input unchanged", got, truncated)
	}
}

func TestTruncateFromEnd(t *testing.T) {
	text := strings.Repeat("word ", 200)
	got, truncated := NewFromEnd().Truncate(text, 50)
	if !truncated {
		t.Fatal("expected truncation")
	}
	if !strings.HasSuffix(got, DefaultEndMark) {
		t.Errorf("result should end with mark, got %q", got[len(got)-10:])
	}
	if !tokens.Fits(got, 50) {
		t.Errorf("result exceeds budget: %d tokens", tokens.Estimate(got))
	}
}

func TestTruncateFromMiddleKeepsBothEnds(t *testing.T) {
	text := "BEGIN " + strings.Repeat("filler ", 300) + "FINISH"
	got, truncated := NewFromMiddle().Truncate(text, 60)
	if !truncated {
		t.Fatal("expected truncation")
	}
	if !strings.HasPrefix(got, "BEGIN") {
		t.Error("head lost")
	}
	if !strings.HasSuffix(got, "FINISH") {
		t.Error("tail lost")
	}
	if !strings.Contains(got, DefaultMiddleMark) {
		t.Error("missing truncation mark")
	}
}

func TestTruncateTinyBudget(t *testing.T) {
	got, truncated := NewFromEnd().Truncate(strings.Repeat("x", 1000), 0)
	if !truncated || got != DefaultEndMark {
		t.Errorf("Truncate = (%q, %v), want bare mark", got, truncated)
	}
}

func TestWithMark(t *testing.T) {
	got, _ := NewFromEnd().WithMark(" <cut>").Truncate(strings.Repeat("y", 400), 20)
	if !strings.HasSuffix(got, " <cut>") {
		t.Errorf("custom mark not applied: %q", got)
	}
}

func TestToTokens(t *testing.T) {
	text := strings.Repeat("z", 400)
	got := ToTokens(text, 10)
	if !tokens.Fits(got, 10) {
		t.Errorf("ToTokens result exceeds budget: %d tokens", tokens.Estimate(got))
	}
	if short := ToTokens("tiny", 10); short != "tiny" {
		t.Errorf("ToTokens(%q) = %q", "tiny", short)
	}
}
