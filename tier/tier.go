// Package tier provides conversion tier selection for prose-to-notation
// conversion.
//
// A tier controls how much effort and verbosity is requested from a
// model-based converter: Minimal is bare symbol substitution, Standard
// adds a header block, Full produces a complete notation document. Tier
// selection escalates with prose complexity and with the number of terms
// the deterministic converter could not map.
package tier

import "fmt"

// Tier represents a conversion effort level.
// Tiers are ordinal: a higher value means more effort and more verbose
// output is expected from the converter.
type Tier int

// Tier constants in ascending order of effort.
const (
	Minimal Tier = iota
	Standard
	Full
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case Minimal:
		return "minimal"
	case Standard:
		return "standard"
	case Full:
		return "full"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Parse converts a tier name to a Tier.
func Parse(name string) (Tier, error) {
	switch name {
	case "minimal":
		return Minimal, nil
	case "standard":
		return Standard, nil
	case "full":
		return Full, nil
	default:
		return Standard, fmt.Errorf("unknown tier %q", name)
	}
}
