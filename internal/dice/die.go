// Package dice parses dice notation such as "3d4+2d8+6" and evaluates it.
//
// Parsing turns an expression into a Roll: one entry per individual die plus
// the flat constants. Casting a Roll draws each die from a Source and sums
// the outcomes; a critical multiplier scales the dice total but never the
// constants.
package dice

import (
	"strings"

	apperrors "github.com/louisbranch/roller/internal/platform/errors"
)

// DieType is one of the supported polyhedral dice.
type DieType int

const (
	DieUnspecified DieType = iota
	D4
	D6
	D8
	D10
	D12
	D20
	D100
)

// ErrUnrecognizedDieType indicates a dice group asked for an unsupported number of sides.
var ErrUnrecognizedDieType = apperrors.New(apperrors.CodeDiceUnrecognizedType, "unrecognized die type")

// Source produces uniform integers in [0, n).
type Source interface {
	Intn(n int) int
}

// DieTypes returns every supported die in ascending order of sides.
func DieTypes() []DieType {
	return []DieType{D4, D6, D8, D10, D12, D20, D100}
}

// ParseDieType maps a sides token ("8" or "d8") to its die type.
// The token is matched literally, so "08" is not a d8.
func ParseDieType(token string) (DieType, error) {
	sides := strings.TrimPrefix(token, "d")
	switch sides {
	case "4":
		return D4, nil
	case "6":
		return D6, nil
	case "8":
		return D8, nil
	case "10":
		return D10, nil
	case "12":
		return D12, nil
	case "20":
		return D20, nil
	case "100":
		return D100, nil
	default:
		return DieUnspecified, apperrors.WithMetadata(
			apperrors.CodeDiceUnrecognizedType,
			"unrecognized die type d"+sides,
			map[string]string{"sides": sides},
		)
	}
}

// Sides returns the number of faces, or 0 for DieUnspecified.
func (d DieType) Sides() int {
	switch d {
	case D4:
		return 4
	case D6:
		return 6
	case D8:
		return 8
	case D10:
		return 10
	case D12:
		return 12
	case D20:
		return 20
	case D100:
		return 100
	default:
		return 0
	}
}

// Range returns the inclusive outcome bounds.
func (d DieType) Range() (low, high int) {
	return 1, d.Sides()
}

// Draw returns one outcome in [1, Sides()].
func (d DieType) Draw(src Source) int {
	return src.Intn(d.Sides()) + 1
}

func (d DieType) String() string {
	switch d {
	case D4:
		return "d4"
	case D6:
		return "d6"
	case D8:
		return "d8"
	case D10:
		return "d10"
	case D12:
		return "d12"
	case D20:
		return "d20"
	case D100:
		return "d100"
	default:
		return "unspecified"
	}
}
