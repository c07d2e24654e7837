// Package vars implements the shell's typed variables and the store that
// holds them.
package vars

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the variant tag of a Variable.
type Kind int

const (
	KindString Kind = iota
	KindDouble
	KindBool
	KindOperation
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindDouble:
		return "double"
	case KindBool:
		return "bool"
	case KindOperation:
		return "operation"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Variable is a named value of one of the four kinds. Only the payload
// field matching the kind is meaningful.
type Variable struct {
	name      string
	immutable bool
	kind      Kind

	text    string
	number  float64
	boolean bool
	op      *operation

	// owner is the store holding the variable, nil when it isn't in one.
	owner *Store
}

// NewString creates a String variable.
func NewString(name, value string, immutable bool) *Variable {
	return &Variable{name: name, immutable: immutable, kind: KindString, text: value}
}

// NewDouble creates a Double variable.
func NewDouble(name string, value float64, immutable bool) *Variable {
	return &Variable{name: name, immutable: immutable, kind: KindDouble, number: value}
}

// NewBool creates a Bool variable.
func NewBool(name string, value bool, immutable bool) *Variable {
	return &Variable{name: name, immutable: immutable, kind: KindBool, boolean: value}
}

// Name returns the variable's name.
func (v *Variable) Name() string {
	return v.name
}

// Kind returns the variable's kind.
func (v *Variable) Kind() Kind {
	return v.kind
}

// Immutable reports whether writes to the variable are rejected.
func (v *Variable) Immutable() bool {
	return v.immutable
}

// Text returns the current value as text. Only Operation variables can fail,
// when their upstream variable has been removed.
func (v *Variable) Text() (string, error) {
	switch v.kind {
	case KindString:
		return v.text, nil
	case KindDouble:
		return currentFormat.FormatFloat(v.number), nil
	case KindBool:
		return formatBool(v.boolean), nil
	case KindOperation:
		value, err := v.operationValue()
		if err != nil {
			return "", err
		}
		return currentFormat.FormatFloat(value), nil
	default:
		panic(fmt.Sprintf("vars: unknown kind %d", v.kind))
	}
}

// Number returns the numeric value of a Double or Operation variable.
func (v *Variable) Number() (float64, error) {
	switch v.kind {
	case KindDouble:
		return v.number, nil
	case KindOperation:
		return v.operationValue()
	case KindString, KindBool:
		return 0, newError("read", v.name, ErrTypeMismatch)
	default:
		panic(fmt.Sprintf("vars: unknown kind %d", v.kind))
	}
}

// Bool returns the value of a Bool variable.
func (v *Variable) Bool() (bool, error) {
	switch v.kind {
	case KindBool:
		return v.boolean, nil
	case KindString, KindDouble, KindOperation:
		return false, newError("read", v.name, ErrTypeMismatch)
	default:
		panic(fmt.Sprintf("vars: unknown kind %d", v.kind))
	}
}

// SetString writes a String variable.
func (v *Variable) SetString(value string) error {
	if err := v.checkWrite(KindString); err != nil {
		return err
	}
	v.text = value
	return nil
}

// SetDouble writes a Double variable.
func (v *Variable) SetDouble(value float64) error {
	if err := v.checkWrite(KindDouble); err != nil {
		return err
	}
	v.number = value
	return nil
}

// SetBool writes a Bool variable.
func (v *Variable) SetBool(value bool) error {
	if err := v.checkWrite(KindBool); err != nil {
		return err
	}
	v.boolean = value
	return nil
}

// Assign parses text according to the variable's existing kind and writes it.
// Unlike Create the kind never changes: assigning "abc" to a Double fails with
// ErrTypeMismatch.
func (v *Variable) Assign(text string) error {
	switch v.kind {
	case KindString:
		return v.SetString(text)
	case KindDouble:
		if err := v.checkWrite(KindDouble); err != nil {
			return err
		}
		parsed, ok := currentFormat.ParseFloat(text)
		if !ok {
			return newError("assign", v.name, fmt.Errorf("%w: %q is not a double", ErrTypeMismatch, text))
		}
		v.number = parsed
		return nil
	case KindBool:
		if err := v.checkWrite(KindBool); err != nil {
			return err
		}
		parsed, ok := parseBool(text)
		if !ok {
			return newError("assign", v.name, fmt.Errorf("%w: %q is not a bool", ErrTypeMismatch, text))
		}
		v.boolean = parsed
		return nil
	case KindOperation:
		return newError("assign", v.name, ErrImmutable)
	default:
		panic(fmt.Sprintf("vars: unknown kind %d", v.kind))
	}
}

func (v *Variable) checkWrite(kind Kind) error {
	switch {
	case v.kind == KindOperation, v.immutable:
		return newError("set", v.name, ErrImmutable)
	case v.kind != kind:
		return newError("set", v.name, fmt.Errorf("%w: %s variable can't hold a %s", ErrTypeMismatch, v.kind, kind))
	}
	return nil
}

func (v *Variable) operationValue() (float64, error) {
	up := v.op.upstream
	if up.owner != v.owner {
		return 0, newError("evaluate", up.name, ErrNotFound)
	}
	return v.op.value(up.number), nil
}

func parseBool(s string) (bool, bool) {
	switch s = strings.TrimSpace(s); {
	case strings.EqualFold(s, "true"):
		return true, true
	case strings.EqualFold(s, "false"):
		return false, true
	}
	return false, false
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}
