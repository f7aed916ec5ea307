// Package rosetta converts natural-language prose into AISP symbolic
// notation, with an optional model-backed fallback for prose the
// deterministic symbol table cannot cover confidently.
//
// The deterministic path always runs first and always produces an
// answer. When its confidence falls below a threshold and fallback is
// enabled, a registered provider (see the provider package) is asked to
// redo the conversion at a tier matched to the size of the coverage
// gap, and the two results are merged. A provider failure never fails
// the conversion: the deterministic result is returned and the
// UsedFallback flag stays false.
//
// # Quick Start
//
//	result, err := rosetta.ConvertWithFallback(ctx, "Define x as 5", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Output)       // x≜5
//	fmt.Println(result.UsedFallback) // false
//
// Enable the model fallback by importing a provider for its side
// effects and switching it on in the options:
//
//	import _ "github.com/Epiphytic/rosetta-aisp-llm/claude"
//
//	result, err := rosetta.ConvertWithFallback(ctx, prose, &rosetta.ConversionOptions{
//	    EnableLLMFallback:   true,
//	    ConfidenceThreshold: 0.8,
//	    Model:               "sonnet",
//	})
package rosetta
