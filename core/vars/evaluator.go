package vars

import (
	"fmt"

	starlarkmath "go.starlark.net/lib/math"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Evaluator computes the numeric value of an arithmetic expression.
type Evaluator interface {
	Evaluate(expr string) (float64, error)
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(expr string) (float64, error)

// Evaluate implements Evaluator.
func (f EvaluatorFunc) Evaluate(expr string) (float64, error) {
	return f(expr)
}

var _ Evaluator = (EvaluatorFunc)(nil)

// StarlarkEvaluator evaluates expressions as Starlark expressions. The math
// module is available both as "math" and unqualified, so "sqrt($) + pi" and
// "math.sqrt($) + math.pi" are equivalent.
type StarlarkEvaluator struct{}

var _ Evaluator = StarlarkEvaluator{}

var (
	evalFileOptions = &syntax.FileOptions{}
	evalPredeclared = func() starlark.StringDict {
		env := starlark.StringDict{
			"math": starlarkmath.Module,
		}
		for name, member := range starlarkmath.Module.Members {
			env[name] = member
		}
		return env
	}()
)

// Evaluate implements Evaluator.
func (StarlarkEvaluator) Evaluate(expr string) (float64, error) {
	thread := &starlark.Thread{Name: "operation"}

	result, err := starlark.EvalOptions(evalFileOptions, thread, "operation", expr, evalPredeclared)
	if err != nil {
		return 0, err
	}

	switch result := result.(type) {
	case starlark.Float:
		return float64(result), nil
	case starlark.Int:
		return float64(result.Float()), nil
	default:
		return 0, fmt.Errorf("expression %q: got %s, want float or int", expr, result.Type())
	}
}
