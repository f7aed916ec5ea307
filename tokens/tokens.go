// Package tokens provides approximate token accounting for conversion
// inputs and outputs.
//
// Counts are estimates based on a character-to-token ratio; they are
// intended for prompt budgeting and compression reporting, not billing.
package tokens

import "unicode/utf8"

// CharsPerToken is the assumed average characters per token,
// approximately right for English prose.
const CharsPerToken = 4.0

// Estimate returns the approximate token count for text.
func Estimate(text string) int {
	runes := utf8.RuneCountInString(text)
	return int(float64(runes)/CharsPerToken + 0.5)
}

// Fits reports whether text fits within the given token limit.
func Fits(text string, limit int) bool {
	return Estimate(text) <= limit
}

// Stats reports the input/output size relationship of a conversion.
// Sizes are in characters; Ratio is output over input rounded to two
// decimal places.
type Stats struct {
	Input  int     `json:"input"`
	Output int     `json:"output"`
	Ratio  float64 `json:"ratio"`
}

// NewStats computes conversion statistics for the given input and
// output text.
func NewStats(input, output string) Stats {
	in := utf8.RuneCountInString(input)
	out := utf8.RuneCountInString(output)
	s := Stats{Input: in, Output: out}
	if in > 0 {
		s.Ratio = float64(int(float64(out)/float64(in)*100+0.5)) / 100
	}
	return s
}
