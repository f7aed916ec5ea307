// Package parser extracts notation and structured data from model
// responses.
//
// Models wrap answers in markdown fences, lead-in sentences, or JSON
// envelopes even when asked not to. This package repairs such responses
// into the bare notation the caller asked for, and pulls out structured
// {output, confidence} replies when a backend produces them.
package parser

import (
	"encoding/json"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// CodeBlock is a fenced markdown code block.
type CodeBlock struct {
	// Language is the fence info string (e.g. "json"), possibly empty.
	Language string

	// Content is the text between the fences.
	Content string
}

var codeBlockRe = regexp.MustCompile("(?s)```([a-zA-Z0-9_+-]*)[ \t]*\n(.*?)```")

// ExtractCodeBlocks returns all fenced code blocks in order.
func ExtractCodeBlocks(response string) []CodeBlock {
	matches := codeBlockRe.FindAllStringSubmatch(response, -1)
	blocks := make([]CodeBlock, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, CodeBlock{
			Language: strings.ToLower(m[1]),
			Content:  strings.TrimRight(m[2], "\n"),
		})
	}
	return blocks
}

// leadInRe matches conversational lead-in lines models prepend despite
// being asked for bare output.
var leadInRe = regexp.MustCompile(`(?i)^(here('s| is)|sure|certainly|the (converted|resulting))\b`)

// ExtractNotation repairs a model response into bare notation text.
//
// If the response carries a structured {output, ...} envelope, the
// output field wins. Otherwise the first code block is used when
// present, and conversational lead-in lines are stripped. Returns the
// empty string when nothing remains.
func ExtractNotation(response string) string {
	if s, ok := ExtractStructured(response); ok && s.Output != "" {
		return strings.TrimSpace(s.Output)
	}

	if blocks := ExtractCodeBlocks(response); len(blocks) > 0 {
		return strings.TrimSpace(blocks[0].Content)
	}

	lines := strings.Split(strings.TrimSpace(response), "\n")
	for len(lines) > 0 && leadInRe.MatchString(strings.TrimSpace(lines[0])) {
		lines = lines[1:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Structured is a parsed {output, confidence} response envelope.
type Structured struct {
	Output     string   `json:"output" yaml:"output"`
	Confidence *float64 `json:"confidence,omitempty" yaml:"confidence,omitempty"`
}

// ExtractStructured finds a structured envelope in a response: the
// whole response as JSON, a JSON code block, or a YAML code block, in
// that order. A confidence outside [0,1] is discarded rather than
// propagated.
func ExtractStructured(response string) (*Structured, bool) {
	trimmed := strings.TrimSpace(response)
	if strings.HasPrefix(trimmed, "{") {
		if s := parseStructuredJSON(trimmed); s != nil {
			return s, true
		}
	}

	for _, block := range ExtractCodeBlocks(response) {
		switch block.Language {
		case "json", "":
			if s := parseStructuredJSON(strings.TrimSpace(block.Content)); s != nil {
				return s, true
			}
		case "yaml", "yml":
			var s Structured
			if err := yaml.Unmarshal([]byte(block.Content), &s); err == nil && s.Output != "" {
				return sanitize(&s), true
			}
		}
	}
	return nil, false
}

func parseStructuredJSON(text string) *Structured {
	var s Structured
	if err := json.Unmarshal([]byte(text), &s); err != nil || s.Output == "" {
		return nil
	}
	return sanitize(&s)
}

func sanitize(s *Structured) *Structured {
	if s.Confidence != nil && (*s.Confidence < 0 || *s.Confidence > 1) {
		s.Confidence = nil
	}
	return s
}
