package stone

import (
	"sort"
	"strings"
)

// Symbol categories.
const (
	CategoryQuantifiers = "quantifiers"
	CategoryLogic       = "logic"
	CategorySets        = "sets"
	CategoryComparison  = "comparison"
	CategoryDefinition  = "definition"
	CategoryFlow        = "flow"
)

// mapping binds a prose pattern to its notation symbol.
// Pattern text is lowercase; matching is case-insensitive.
type mapping struct {
	pattern  string
	symbol   string
	category string
}

var table = []mapping{
	// quantifiers
	{"for all", "∀", CategoryQuantifiers},
	{"for every", "∀", CategoryQuantifiers},
	{"for each", "∀", CategoryQuantifiers},
	{"there exists", "∃", CategoryQuantifiers},
	{"there is", "∃", CategoryQuantifiers},
	{"there is no", "∄", CategoryQuantifiers},

	// logic
	{"and", "∧", CategoryLogic},
	{"or", "∨", CategoryLogic},
	{"not", "¬", CategoryLogic},
	{"implies", "⇒", CategoryLogic},
	{"if and only if", "⇔", CategoryLogic},
	{"such that", ":", CategoryLogic},
	{"therefore", "∴", CategoryLogic},
	{"because", "∵", CategoryLogic},

	// sets
	{"in", "∈", CategorySets},
	{"element of", "∈", CategorySets},
	{"not in", "∉", CategorySets},
	{"subset of", "⊆", CategorySets},
	{"superset of", "⊇", CategorySets},
	{"union", "∪", CategorySets},
	{"intersection", "∩", CategorySets},
	{"empty set", "∅", CategorySets},

	// comparison
	{"equals", "=", CategoryComparison},
	{"is equal to", "=", CategoryComparison},
	{"not equal to", "≠", CategoryComparison},
	{"less than", "<", CategoryComparison},
	{"greater than", ">", CategoryComparison},
	{"at least", "≥", CategoryComparison},
	{"at most", "≤", CategoryComparison},
	{"approximately", "≈", CategoryComparison},

	// definition
	{"is defined as", "≜", CategoryDefinition},
	{"defined as", "≜", CategoryDefinition},
	{"assign", "≔", CategoryDefinition},
	{"type", "𝕋", CategoryDefinition},
	{"function", "λ", CategoryDefinition},

	// flow
	{"if", "⟨", CategoryFlow},
	{"then", "⟩→", CategoryFlow},
	{"else", "∥", CategoryFlow},
	{"proceed", "↦", CategoryFlow},
	{"reject", "⊥", CategoryFlow},
	{"valid", "⊢", CategoryFlow},
	{"must", "□", CategoryFlow},
	{"may", "◇", CategoryFlow},
}

// byLength holds table indices sorted by descending pattern word count,
// so multi-word patterns win over their prefixes.
var byLength []int

// reverse maps each symbol to its canonical prose pattern (the first
// table entry for that symbol).
var reverse = map[string]string{}

// patternWords is the set of words that appear in any pattern, used to
// keep pattern vocabulary out of the unmapped list.
var patternWords = map[string]struct{}{}

func init() {
	byLength = make([]int, len(table))
	for i := range table {
		byLength[i] = i
	}
	sort.SliceStable(byLength, func(a, b int) bool {
		return len(strings.Fields(table[byLength[a]].pattern)) > len(strings.Fields(table[byLength[b]].pattern))
	})

	for _, m := range table {
		if _, ok := reverse[m.symbol]; !ok {
			reverse[m.symbol] = m.pattern
		}
		for _, w := range strings.Fields(m.pattern) {
			patternWords[w] = struct{}{}
		}
	}
}

// Lookup returns the symbol for a prose pattern.
func Lookup(pattern string) (string, bool) {
	p := strings.ToLower(strings.TrimSpace(pattern))
	for _, m := range table {
		if m.pattern == p {
			return m.symbol, true
		}
	}
	return "", false
}

// Reverse returns the canonical prose pattern for a symbol.
func Reverse(symbol string) (string, bool) {
	p, ok := reverse[symbol]
	return p, ok
}

// Categories lists all symbol categories in a stable order.
func Categories() []string {
	return []string{
		CategoryQuantifiers,
		CategoryLogic,
		CategorySets,
		CategoryComparison,
		CategoryDefinition,
		CategoryFlow,
	}
}

// SymbolsByCategory returns the symbols of a category in table order.
func SymbolsByCategory(category string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, m := range table {
		if m.category != category {
			continue
		}
		if _, ok := seen[m.symbol]; ok {
			continue
		}
		seen[m.symbol] = struct{}{}
		out = append(out, m.symbol)
	}
	return out
}

// Knows reports whether term appears in any mapped prose pattern.
func Knows(term string) bool {
	_, ok := patternWords[strings.ToLower(strings.TrimSpace(term))]
	return ok
}
