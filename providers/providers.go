// Package providers registers all built-in fallback backends.
// Import it for side effects to make every backend available via
// provider.New():
//
//	import _ "github.com/Epiphytic/rosetta-aisp-llm/providers"
package providers

import (
	_ "github.com/Epiphytic/rosetta-aisp-llm/claude"
	_ "github.com/Epiphytic/rosetta-aisp-llm/ollama"
)
