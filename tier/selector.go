package tier

import (
	"strings"
	"unicode"
)

// Policy holds the tunable cutoffs that drive tier selection.
// The zero value is not useful; start from DefaultPolicy and adjust.
type Policy struct {
	// FullUnmapped is the unique unmapped-term count at or above which
	// Full is selected regardless of prose length.
	FullUnmapped int

	// ShortProseWords is the maximum word count for prose to still count
	// as short. Short prose with full deterministic coverage selects
	// Minimal.
	ShortProseWords int

	// LongProseWords is the word count at or above which prose alone
	// (without any unmapped terms) selects Full.
	LongProseWords int

	// Known reports whether a term is covered by the deterministic
	// vocabulary. When set, reported gaps that are in fact known are
	// discounted before counting. A nil Known counts every gap.
	Known func(term string) bool
}

// DefaultPolicy is the selection policy used by Select.
var DefaultPolicy = Policy{
	FullUnmapped:    4,
	ShortProseWords: 12,
	LongProseWords:  80,
}

// Select chooses a conversion tier using DefaultPolicy.
// If override is non-nil it is returned unconditionally.
func Select(prose string, unmapped []string, override *Tier) Tier {
	return DefaultPolicy.Select(prose, unmapped, override)
}

// Select chooses a conversion tier for the given prose and unmapped
// terms. The function is pure: identical inputs always select the same
// tier, and adding unmapped terms never lowers the selected tier.
//
// Unmapped-term count dominates prose length when the two signals
// disagree: a coverage gap matters more than surface length.
func (p Policy) Select(prose string, unmapped []string, override *Tier) Tier {
	if override != nil {
		return *override
	}

	byGap := p.gapTier(uniqueTerms(unmapped))
	byLength := p.lengthTier(countWords(prose))
	if byGap >= byLength {
		return byGap
	}
	return byLength
}

// gapTier escalates with deterministic coverage gaps. It is
// non-decreasing in the number of unmapped terms.
func (p Policy) gapTier(unique []string) Tier {
	gaps := len(unique)
	if p.Known != nil {
		gaps = 0
		for _, term := range unique {
			if !p.Known(term) {
				gaps++
			}
		}
	}
	switch {
	case gaps == 0:
		return Minimal
	case gaps >= p.FullUnmapped:
		return Full
	default:
		return Standard
	}
}

// lengthTier escalates with surface length alone.
func (p Policy) lengthTier(words int) Tier {
	switch {
	case words <= p.ShortProseWords:
		return Minimal
	case words >= p.LongProseWords:
		return Full
	default:
		return Standard
	}
}

// uniqueTerms returns the distinct terms, case-folded, preserving order.
func uniqueTerms(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		key := strings.ToLower(strings.TrimSpace(t))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

func countWords(s string) int {
	return len(strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	}))
}
