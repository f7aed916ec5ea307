package claude

import (
	"encoding/json"
	"sync"

	"github.com/invopop/jsonschema"
)

// ConversionOutput is the structured reply shape requested from the model.
type ConversionOutput struct {
	Notation   string   `json:"notation" jsonschema:"title=Notation,description=The AISP notation for the input prose"`
	Confidence *float64 `json:"confidence,omitempty" jsonschema:"title=Confidence,description=Self-assessed conversion confidence between 0 and 1,minimum=0,maximum=1"`
}

// ConversionSchema returns the JSON schema passed via --json-schema.
// The schema is reflected once and cached.
var ConversionSchema = sync.OnceValue(func() string {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	schema := reflector.Reflect(&ConversionOutput{})

	data, err := json.Marshal(schema)
	if err != nil {
		// Reflection of a static struct cannot fail at runtime.
		panic("claude: marshal conversion schema: " + err.Error())
	}
	return string(data)
})
