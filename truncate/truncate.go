// Package truncate fits prompt text within token budgets.
//
// Oversized prose is cut by strategy: from the end for logs and
// partial output, from the middle when both the opening and the
// conclusion of a passage carry meaning.
package truncate

import (
	"strings"

	"github.com/Epiphytic/rosetta-aisp-llm/tokens"
)

// Strategy defines where content is removed.
type Strategy int

const (
	// FromEnd removes content from the end (default).
	FromEnd Strategy = iota

	// FromMiddle removes content from the middle, keeping start and end.
	FromMiddle
)

// DefaultEndMark is appended when end truncation occurs.
const DefaultEndMark = "..."

// DefaultMiddleMark replaces removed middle content.
const DefaultMiddleMark = "\n...[content truncated]...\n"

// Truncator cuts text to fit within token limits.
type Truncator struct {
	strategy Strategy
	mark     string
}

// New creates a truncator with the given strategy and its default mark.
func New(strategy Strategy) *Truncator {
	mark := DefaultEndMark
	if strategy == FromMiddle {
		mark = DefaultMiddleMark
	}
	return &Truncator{strategy: strategy, mark: mark}
}

// NewFromEnd creates a truncator that removes content from the end.
func NewFromEnd() *Truncator {
	return New(FromEnd)
}

// NewFromMiddle creates a truncator that removes content from the middle.
func NewFromMiddle() *Truncator {
	return New(FromMiddle)
}

// WithMark sets a custom truncation mark.
func (t *Truncator) WithMark(mark string) *Truncator {
	t.mark = mark
	return t
}

// Truncate reduces text to fit within maxTokens.
// The second return reports whether truncation occurred.
func (t *Truncator) Truncate(text string, maxTokens int) (string, bool) {
	if tokens.Fits(text, maxTokens) {
		return text, false
	}

	target := maxTokens - tokens.Estimate(t.mark)
	if target <= 0 {
		return t.mark, true
	}

	switch t.strategy {
	case FromMiddle:
		return t.truncateMiddle(text, target), true
	default:
		return t.truncateEnd(text, target), true
	}
}

// truncateEnd keeps the longest prefix that fits.
func (t *Truncator) truncateEnd(text string, target int) string {
	runes := []rune(text)
	keep := prefixForTokens(runes, target)
	if keep == 0 {
		return t.mark
	}
	return string(runes[:keep]) + t.mark
}

// truncateMiddle keeps the head and tail, dropping the middle.
func (t *Truncator) truncateMiddle(text string, target int) string {
	runes := []rune(text)
	head := prefixForTokens(runes, target/2)
	tailStart := len(runes) - head
	if tailStart < head {
		tailStart = head
	}

	var b strings.Builder
	b.WriteString(string(runes[:head]))
	b.WriteString(t.mark)
	if tailStart < len(runes) {
		b.WriteString(string(runes[tailStart:]))
	}
	return b.String()
}

// prefixForTokens binary-searches the longest prefix fitting in maxTokens.
func prefixForTokens(runes []rune, maxTokens int) int {
	low, high := 0, len(runes)
	for low < high {
		mid := (low + high + 1) / 2
		if tokens.Fits(string(runes[:mid]), maxTokens) {
			low = mid
		} else {
			high = mid - 1
		}
	}
	return low
}

// ToTokens truncates text from the end to fit within maxTokens.
func ToTokens(text string, maxTokens int) string {
	result, _ := NewFromEnd().Truncate(text, maxTokens)
	return result
}
