// Package stone implements the deterministic prose-to-notation mapping
// engine: a bidirectional symbol table with confidence scoring.
//
// Conversion is a pure text transformation with no external calls, so it
// is fast and fully reproducible. Coverage is bounded by the symbol
// table; terms outside it are reported as unmapped so a caller can
// decide whether a model-based pass is worth the cost.
package stone

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/Epiphytic/rosetta-aisp-llm/tier"
)

// maxPatternWords is the longest prose pattern in the table.
const maxPatternWords = 4

var defineRe = regexp.MustCompile(`(?i)\bdefine\s+([\p{L}_][\p{L}\p{N}_]*)\s+as\b`)

// tokenRe splits prose into word tokens and single non-space,
// non-word characters.
var tokenRe = regexp.MustCompile(`[\p{L}\p{N}_]+|[^\s\p{L}\p{N}_]`)

var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"to": {}, "of": {}, "with": {}, "that": {}, "this": {}, "it": {}, "be": {},
	"by": {}, "on": {}, "at": {}, "from": {}, "as": {}, "its": {}, "has": {},
	"have": {}, "can": {}, "will": {}, "into": {}, "when": {},
}

// Convert translates prose into symbolic notation. It returns the
// notation, the number of prose characters covered by the symbol table,
// and the terms that could not be mapped, in order of first appearance.
func Convert(prose string) (output string, mappedChars int, unmapped []string) {
	rewritten := defineRe.ReplaceAllStringFunc(prose, func(match string) string {
		sub := defineRe.FindStringSubmatch(match)
		mappedChars += utf8.RuneCountInString(match) - utf8.RuneCountInString(sub[1])
		return sub[1] + " ≜"
	})

	words := tokenRe.FindAllString(rewritten, -1)
	var b strings.Builder
	prevWordish := false
	seen := map[string]struct{}{}

	for i := 0; i < len(words); {
		symbol, consumed, patternLen := matchPattern(words, i)
		if symbol != "" {
			b.WriteString(symbol)
			mappedChars += patternLen
			i += consumed
			prevWordish = false
			continue
		}

		tok := words[i]
		wordish := isWordish(tok)
		if prevWordish && wordish {
			b.WriteByte(' ')
		}
		b.WriteString(tok)
		prevWordish = wordish

		if isCandidate(tok) {
			key := strings.ToLower(tok)
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				unmapped = append(unmapped, key)
			}
		}
		i++
	}

	return b.String(), mappedChars, unmapped
}

// matchPattern finds the longest table pattern starting at words[i].
// Returns the symbol, the number of tokens consumed, and the pattern's
// character length, or ("", 0, 0) when nothing matches.
func matchPattern(words []string, i int) (string, int, int) {
	if !isWordish(words[i]) {
		return "", 0, 0
	}
	for _, idx := range byLength {
		m := table[idx]
		parts := strings.Fields(m.pattern)
		if i+len(parts) > len(words) {
			continue
		}
		matched := true
		for j, p := range parts {
			if !strings.EqualFold(words[i+j], p) {
				matched = false
				break
			}
		}
		if matched {
			return m.symbol, len(parts), utf8.RuneCountInString(m.pattern)
		}
	}
	return "", 0, 0
}

// ToProse translates notation back into prose using the canonical
// pattern for each symbol. Unknown characters pass through unchanged.
func ToProse(notation string) string {
	var parts []string
	var word strings.Builder

	flush := func() {
		if word.Len() > 0 {
			parts = append(parts, word.String())
			word.Reset()
		}
	}

	runes := []rune(notation)
	for i := 0; i < len(runes); {
		// Longest symbol first; some symbols span two runes.
		matched := false
		for l := 2; l >= 1 && !matched; l-- {
			if i+l > len(runes) {
				continue
			}
			if pattern, ok := reverse[string(runes[i:i+l])]; ok {
				flush()
				parts = append(parts, pattern)
				i += l
				matched = true
			}
		}
		if matched {
			continue
		}
		r := runes[i]
		if unicode.IsSpace(r) || r == ',' || r == '.' || r == ';' {
			flush()
		} else {
			word.WriteRune(r)
		}
		i++
	}
	flush()

	return strings.Join(parts, " ")
}

// Confidence scores a conversion as the fraction of input characters
// covered by the symbol table, clamped to [0,1].
func Confidence(totalChars, mappedChars int) float64 {
	if totalChars <= 0 {
		return 0
	}
	c := float64(mappedChars) / float64(totalChars)
	if c > 1 {
		return 1
	}
	if c < 0 {
		return 0
	}
	return c
}

// SemanticSimilarity measures word overlap between two texts as a
// Jaccard index over their lowercase word sets.
func SemanticSimilarity(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)
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

func wordSet(s string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, w := range tokenRe.FindAllString(strings.ToLower(s), -1) {
		if isWordish(w) {
			set[w] = struct{}{}
		}
	}
	return set
}

// DetectTier suggests a conversion tier for prose based on its length
// and deterministic coverage.
func DetectTier(prose string) tier.Tier {
	_, _, unmapped := Convert(prose)
	return tier.Select(prose, unmapped, nil)
}

// Document wraps a converted body in the notation document structure
// for the given tier. Minimal returns the body unchanged.
func Document(name, body string, t tier.Tier, confidence float64) string {
	date := time.Now().Format("2006-01-02")
	switch t {
	case tier.Standard:
		return fmt.Sprintf("𝔸5.1.%s@%s\nγ≔%s\n\n⟦Λ:Funcs⟧{\n  %s\n}\n\n⟦Ε⟧⟨δ≜%.2f;τ≜◊⁺⟩",
			name, date, name, body, confidence)
	case tier.Full:
		return fmt.Sprintf("𝔸5.1.%s@%s\nγ≔%s.definitions\nρ≔⟨%s,types,rules⟩\n\n"+
			"⟦Ω:Meta⟧{\n  domain≜%s\n  version≜1.0.0\n}\n\n"+
			"⟦Λ:Funcs⟧{\n  %s\n}\n\n⟦Ε⟧⟨δ≜%.2f;φ≜100;τ≜◊⁺⁺;⊢valid;∎⟩",
			name, date, name, name, name, body, confidence)
	default:
		return body
	}
}

// DocumentName derives a short document name from prose: its first
// word longer than two letters, lowercased, or "conversion".
func DocumentName(prose string) string {
	for _, w := range tokenRe.FindAllString(prose, -1) {
		if isWordish(w) && utf8.RuneCountInString(w) > 2 {
			return strings.ToLower(w)
		}
	}
	return "conversion"
}

func isWordish(tok string) bool {
	r, _ := utf8.DecodeRuneInString(tok)
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

func isCandidate(tok string) bool {
	if utf8.RuneCountInString(tok) < 3 {
		return false
	}
	for _, r := range tok {
		if !unicode.IsLetter(r) && r != '_' {
			return false
		}
	}
	key := strings.ToLower(tok)
	if _, ok := stopwords[key]; ok {
		return false
	}
	return !Knows(key)
}
