package stone

import (
	"strings"
	"testing"

	"github.com/Epiphytic/rosetta-aisp-llm/tier"
)

func TestConvertQuantifiers(t *testing.T) {
	out, mapped, _ := Convert("for all x in S x equals y")

	if !strings.Contains(out, "∀") {
		t.Errorf("output %q should contain universal quantifier", out)
	}
	if !strings.Contains(out, "∈") {
		t.Errorf("output %q should contain element-of symbol", out)
	}
	if mapped == 0 {
		t.Error("should have mapped some characters")
	}
}

func TestConvertDefine(t *testing.T) {
	out, _, unmapped := Convert("Define x as 5")

	if out != "x≜5" {
		t.Errorf("Convert = %q, want x≜5", out)
	}
	if len(unmapped) != 0 {
		t.Errorf("unexpected unmapped terms: %v", unmapped)
	}
}

func TestConvertUnmappedTracking(t *testing.T) {
	_, _, unmapped := Convert("the monad preserves monad bifunctor")

	if len(unmapped) != 3 {
		t.Fatalf("unmapped = %v, want 3 unique terms", unmapped)
	}
	// Ordered by first appearance, deduplicated.
	if unmapped[0] != "monad" || unmapped[1] != "preserves" || unmapped[2] != "bifunctor" {
		t.Errorf("unmapped = %v", unmapped)
	}
}

func TestConvertStopwordsExcluded(t *testing.T) {
	_, _, unmapped := Convert("the value is from the table")
	for _, term := range unmapped {
		if term == "the" || term == "is" || term == "from" {
			t.Errorf("stopword %q should not be unmapped", term)
		}
	}
}

func TestToProse(t *testing.T) {
	prose := ToProse("∀x∈S")
	if !strings.Contains(strings.ToLower(prose), "for all") {
		t.Errorf("ToProse = %q, want it to contain 'for all'", prose)
	}
	if !strings.Contains(prose, "in") {
		t.Errorf("ToProse = %q, want it to contain 'in'", prose)
	}
}

func TestRoundTripFixedPoint(t *testing.T) {
	// Canonical prose converts to notation and back without drift.
	prose := "for all x in S x equals y"
	forward, _, _ := Convert(prose)
	back := ToProse(forward)
	again, _, _ := Convert(back)

	if again != forward {
		t.Errorf("re-converted %q = %q, want %q", back, again, forward)
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		total, mapped int
		expected      float64
	}{
		{100, 50, 0.5},
		{100, 0, 0},
		{0, 10, 0},
		{10, 20, 1}, // clamped
	}

	for _, tt := range tests {
		if got := Confidence(tt.total, tt.mapped); got != tt.expected {
			t.Errorf("Confidence(%d, %d) = %v, want %v", tt.total, tt.mapped, got, tt.expected)
		}
	}
}

func TestSemanticSimilarity(t *testing.T) {
	if got := SemanticSimilarity("for all x", "for all x"); got != 1 {
		t.Errorf("identical texts = %v, want 1", got)
	}
	if got := SemanticSimilarity("alpha beta", "gamma delta"); got != 0 {
		t.Errorf("disjoint texts = %v, want 0", got)
	}
	mid := SemanticSimilarity("for all x in S", "for all y in S")
	if mid <= 0 || mid >= 1 {
		t.Errorf("partial overlap = %v, want in (0,1)", mid)
	}
}

func TestLookupAndReverse(t *testing.T) {
	sym, ok := Lookup("for all")
	if !ok || sym != "∀" {
		t.Fatalf("Lookup(for all) = %q, %v", sym, ok)
	}
	pattern, ok := Reverse("∀")
	if !ok || pattern != "for all" {
		t.Fatalf("Reverse(∀) = %q, %v", pattern, ok)
	}
	if _, ok := Lookup("no such phrase"); ok {
		t.Error("Lookup of unknown phrase should fail")
	}
}

func TestCategories(t *testing.T) {
	cats := Categories()
	if len(cats) == 0 {
		t.Fatal("no categories")
	}
	for _, cat := range cats {
		if len(SymbolsByCategory(cat)) == 0 {
			t.Errorf("category %q has no symbols", cat)
		}
	}
	if len(SymbolsByCategory("nonexistent")) != 0 {
		t.Error("unknown category should have no symbols")
	}
}

func TestKnows(t *testing.T) {
	if !Knows("all") {
		t.Error("'all' appears in a pattern")
	}
	if Knows("endofunctor") {
		t.Error("'endofunctor' is not in any pattern")
	}
}

func TestDetectTier(t *testing.T) {
	if got := DetectTier("Define x as 5"); got != tier.Minimal {
		t.Errorf("short mapped prose = %s, want minimal", got)
	}
	if got := DetectTier("The monad functor endomorphism bifunctor homomorphism entangles qubits"); got != tier.Full {
		t.Errorf("dense unmapped prose = %s, want full", got)
	}
}

func TestDocument(t *testing.T) {
	body := "x≜5"

	if got := Document("demo", body, tier.Minimal, 0.9); got != body {
		t.Errorf("minimal document should be the bare body, got %q", got)
	}

	std := Document("demo", body, tier.Standard, 0.9)
	if !strings.Contains(std, "⟦Λ:Funcs⟧") || !strings.Contains(std, body) {
		t.Errorf("standard document missing blocks: %q", std)
	}

	full := Document("demo", body, tier.Full, 0.9)
	if !strings.Contains(full, "⟦Ω:Meta⟧") || !strings.Contains(full, "⟦Λ:Funcs⟧") {
		t.Errorf("full document missing blocks: %q", full)
	}
}

func TestDocumentName(t *testing.T) {
	if got := DocumentName("Define gravity as 9.8"); got != "define" {
		t.Errorf("DocumentName = %q, want define", got)
	}
	if got := DocumentName("x y"); got != "conversion" {
		t.Errorf("DocumentName fallback = %q, want conversion", got)
	}
}
