package vars

import "fmt"

// constructor builds a variable from a literal if the literal fits its kind.
type constructor func(name, literal string, immutable bool, format NumberFormat) (*Variable, bool)

// constructors is tried in order and the first success wins. The order is
// observable: "1" is a Double and not a String, "true" is a Bool.
var constructors = []constructor{
	tryBool,
	tryDouble,
	tryString,
}

func tryBool(name, literal string, immutable bool, _ NumberFormat) (*Variable, bool) {
	b, ok := parseBool(literal)
	if !ok {
		return nil, false
	}
	return NewBool(name, b, immutable), true
}

func tryDouble(name, literal string, immutable bool, format NumberFormat) (*Variable, bool) {
	f, ok := format.ParseFloat(literal)
	if !ok {
		return nil, false
	}
	return NewDouble(name, f, immutable), true
}

func tryString(name, literal string, immutable bool, _ NumberFormat) (*Variable, bool) {
	return NewString(name, literal, immutable), true
}

// Create builds a variable from its literal text, picking the kind in the
// order Bool, Double, String. Doubles are parsed with the current locale.
func Create(name, literal string, immutable bool) (*Variable, error) {
	return CreateWithFormat(name, literal, immutable, currentFormat)
}

// CreateWithFormat is like Create with an explicit number format.
func CreateWithFormat(name, literal string, immutable bool, format NumberFormat) (*Variable, error) {
	for _, try := range constructors {
		if v, ok := try(name, literal, immutable, format); ok {
			return v, nil
		}
	}

	return nil, newError("create", name, fmt.Errorf("%w: %q", ErrConstruction, literal))
}
