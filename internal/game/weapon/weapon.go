// Package weapon defines the closed set of weapon kinds a character can wield.
package weapon

import (
	"fmt"
	"strings"
)

// Kind identifies a weapon category.
// The zero value (KindUnknown) is intentionally invalid.
type Kind int

const (
	KindUnknown Kind = iota // zero value; intentionally invalid
	Melee                   // reach of 2
	Ranged                  // reach of 20
)

// Default maximum ranges, in distance units.
const (
	MeleeRange  = 2.0
	RangedRange = 20.0
)

var defaultRanges = map[Kind]float64{
	Melee:  MeleeRange,
	Ranged: RangedRange,
}

// Kinds returns every valid Kind in declaration order.
func Kinds() []Kind {
	return []Kind{Melee, Ranged}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	_, ok := defaultRanges[k]
	return ok
}

// Range returns the default maximum range for k.
//
// Postcondition: Returns 0 for KindUnknown and any unrecognized value.
func (k Kind) Range() float64 {
	return defaultRanges[k]
}

// String returns the lowercase name of the kind.
// Postcondition: returns "melee", "ranged", or "unknown".
func (k Kind) String() string {
	switch k {
	case Melee:
		return "melee"
	case Ranged:
		return "ranged"
	default:
		return "unknown"
	}
}

// ParseKind converts a case-insensitive name into a Kind.
//
// Postcondition: Returns a valid Kind, or KindUnknown and a non-nil error.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "melee":
		return Melee, nil
	case "ranged":
		return Ranged, nil
	default:
		return KindUnknown, fmt.Errorf("unknown weapon kind %q: must be one of [melee, ranged]", s)
	}
}
