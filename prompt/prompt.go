// Package prompt builds the system and user prompts for model-backed
// notation conversion.
//
// The system prompt embeds the full symbol reference so the model never
// has to guess at the notation; it is generated once and cached. User
// prompts are rendered per request and carry the coverage gaps and the
// deterministic partial output so the model extends prior work instead
// of starting over.
package prompt

import (
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/Epiphytic/rosetta-aisp-llm/provider"
	"github.com/Epiphytic/rosetta-aisp-llm/stone"
	"github.com/Epiphytic/rosetta-aisp-llm/truncate"
)

// Token budgets for the variable parts of a user prompt. Oversized
// prose is middle-truncated so both the opening and the conclusion
// survive.
const (
	MaxProseTokens   = 2000
	MaxPartialTokens = 500
)

const systemTemplate = `You are an AISP (AI Symbolic Programming) conversion specialist.

Convert natural language prose to AISP 5.1 symbolic notation using these rules:

## Symbol Reference (Rosetta Stone)
%s
## Output Format by Tier

### Minimal Tier
Direct symbol substitution only. Example:
Input: "Define x as 5"
Output: x≜5

### Standard Tier
Wrap the conversion in a header and a Funcs block with an evaluation footer.

### Full Tier
Produce a complete AISP document with Meta, Types, Rules and Funcs blocks.

## Rules
1. Output ONLY the AISP notation - no explanations
2. Preserve semantic meaning precisely
3. Use appropriate Unicode symbols from the reference
4. For ambiguous phrases, choose the most logical interpretation
5. Never hallucinate symbols not in the reference`

// System returns the cached system prompt with the full symbol
// reference.
var System = sync.OnceValue(func() string {
	return fmt.Sprintf(systemTemplate, symbolReference())
})

// symbolReference renders the symbol table grouped by category.
func symbolReference() string {
	var b strings.Builder
	for _, category := range stone.Categories() {
		fmt.Fprintf(&b, "\n### %s\n", strings.ToUpper(category))
		for _, symbol := range stone.SymbolsByCategory(category) {
			if pattern, ok := stone.Reverse(symbol); ok {
				fmt.Fprintf(&b, "- %s: %s\n", symbol, pattern)
			}
		}
	}
	return b.String()
}

var userTemplate = template.Must(template.New("user").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`Convert this prose to AISP ({{.Tier}} tier):

"{{.Prose}}"
{{- if .Unmapped}}

Note: These phrases couldn't be mapped deterministically: {{join .Unmapped ", "}}
{{- end}}
{{- if .Partial}}

Partial conversion attempt:
{{.Partial}}
{{- end}}`))

// User renders the user prompt for a conversion request.
func User(req provider.Request) string {
	middle := truncate.NewFromMiddle()
	prose, _ := middle.Truncate(req.Prose, MaxProseTokens)
	partial, _ := middle.Truncate(req.PartialOutput, MaxPartialTokens)

	data := struct {
		Tier     string
		Prose    string
		Unmapped []string
		Partial  string
	}{
		Tier:     req.Tier.String(),
		Prose:    prose,
		Unmapped: req.Unmapped,
		Partial:  partial,
	}

	var b strings.Builder
	// The template is static and the data is plain strings; rendering
	// cannot fail.
	if err := userTemplate.Execute(&b, data); err != nil {
		panic(fmt.Sprintf("prompt: render user template: %v", err))
	}
	return b.String()
}
