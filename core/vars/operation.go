package vars

import (
	"math"
	"strconv"
	"strings"
)

// Placeholder stands for the upstream variable's value in an operation
// template.
const Placeholder = "$"

type cachedResult struct {
	generation uint64
	value      float64
}

// operation is the payload of an Operation variable.
type operation struct {
	upstream *Variable
	template string
	eval     Evaluator

	generation  uint64
	cache       *cachedResult
	observed    float64
	hasObserved bool
	evalErr     error
}

// OperationOption configures NewOperation.
type OperationOption func(*operation)

// WithEvaluator replaces the default StarlarkEvaluator.
func WithEvaluator(e Evaluator) OperationOption {
	return func(o *operation) {
		o.eval = e
	}
}

// NewOperation creates an Operation variable deriving its value from upstream,
// which must be a Double variable. The upstream isn't owned: it keeps living
// in the store and can be written or removed independently.
func NewOperation(name string, upstream *Variable, template string, opts ...OperationOption) (*Variable, error) {
	switch {
	case upstream == nil:
		return nil, newError("setop", name, ErrNotFound)
	case upstream.kind != KindDouble:
		return nil, newError("setop", upstream.name, ErrTypeMismatch)
	}

	op := &operation{
		upstream: upstream,
		template: template,
		eval:     StarlarkEvaluator{},
	}
	for _, opt := range opts {
		opt(op)
	}

	return &Variable{name: name, immutable: true, kind: KindOperation, op: op}, nil
}

// Template returns the expression template of an Operation variable.
func (v *Variable) Template() string {
	if v.op == nil {
		return ""
	}
	return v.op.template
}

// Upstream returns the Double variable an Operation variable derives from.
func (v *Variable) Upstream() *Variable {
	if v.op == nil {
		return nil
	}
	return v.op.upstream
}

// Generation returns how many times an Operation variable's expression has
// been evaluated.
func (v *Variable) Generation() uint64 {
	if v.op == nil {
		return 0
	}
	return v.op.generation
}

// EvalErr returns the error of the last evaluation, if it failed the value is
// NaN.
func (v *Variable) EvalErr() error {
	if v.op == nil {
		return nil
	}
	return v.op.evalErr
}

// value returns the cached result when the upstream value is unchanged and
// evaluates the template otherwise.
//
// The generation check never fails on its own: the cached generation is always
// the latest one, so invalidation is driven by the observed value alone.
func (o *operation) value(current float64) float64 {
	if o.cache != nil && o.cache.generation == o.generation && o.hasObserved && o.observed == current {
		return o.cache.value
	}
	return o.recalculate(current)
}

func (o *operation) recalculate(current float64) float64 {
	if o.hasObserved && o.observed == current {
		return o.cache.value
	}

	expr := strings.ReplaceAll(o.template, Placeholder, exprLiteral(current))
	result, err := o.eval.Evaluate(expr)
	if err != nil {
		result = math.NaN()
	}

	o.evalErr = err
	o.generation++
	o.cache = &cachedResult{generation: o.generation, value: result}
	o.observed = current
	o.hasObserved = true

	return result
}

// exprLiteral writes v so it can be spliced into an expression regardless of
// the surrounding operators.
func exprLiteral(v float64) string {
	switch {
	case math.IsNaN(v):
		return `float("nan")`
	case math.IsInf(v, 1):
		return `float("inf")`
	case math.IsInf(v, -1):
		return `(-float("inf"))`
	}
	return "(" + strconv.FormatFloat(v, 'g', -1, 64) + ")"
}
