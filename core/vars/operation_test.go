package vars

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingEvaluator wraps the default evaluator and counts its calls.
func countingEvaluator(count *int) Evaluator {
	return EvaluatorFunc(func(expr string) (float64, error) {
		*count++
		return StarlarkEvaluator{}.Evaluate(expr)
	})
}

func newOperationFixture(t *testing.T, initial float64, template string, opts ...OperationOption) (*Store, *Variable, *Variable) {
	t.Helper()

	store := NewStore()
	upstream := NewDouble("n", initial, false)
	require.NoError(t, store.Add(upstream))

	op, err := NewOperation("op", upstream, template, opts...)
	require.NoError(t, err)
	require.NoError(t, store.Add(op))

	return store, upstream, op
}

func TestOperationRecomputesOnlyOnChange(t *testing.T) {
	evaluations := 0
	_, n, op := newOperationFixture(t, 2, "$*3", WithEvaluator(countingEvaluator(&evaluations)))

	value, err := op.Number()
	require.NoError(t, err)
	assert.Equal(t, 6.0, value)
	assert.Equal(t, 1, evaluations)
	assert.EqualValues(t, 1, op.Generation())

	require.NoError(t, n.SetDouble(5))

	value, err = op.Number()
	require.NoError(t, err)
	assert.Equal(t, 15.0, value)
	assert.Equal(t, 2, evaluations)
	assert.EqualValues(t, 2, op.Generation())

	// Unchanged upstream hits the cache.
	value, err = op.Number()
	require.NoError(t, err)
	assert.Equal(t, 15.0, value)
	assert.Equal(t, 2, evaluations)
	assert.EqualValues(t, 2, op.Generation())
}

func TestOperationWriteSameValue(t *testing.T) {
	evaluations := 0
	_, n, op := newOperationFixture(t, 2, "$*3", WithEvaluator(countingEvaluator(&evaluations)))

	_, err := op.Number()
	require.NoError(t, err)

	// Writing the value it already had isn't a change.
	require.NoError(t, n.SetDouble(2))
	value, err := op.Number()
	require.NoError(t, err)
	assert.Equal(t, 6.0, value)
	assert.Equal(t, 1, evaluations)
}

func TestOperationZeroUpstream(t *testing.T) {
	_, _, op := newOperationFixture(t, 0, "$+1")

	value, err := op.Number()
	require.NoError(t, err)
	assert.Equal(t, 1.0, value)
}

func TestOperationExpressions(t *testing.T) {
	cases := []struct {
		upstream float64
		template string
		want     float64
	}{
		{2, "$ / 4", 0.5},
		{16, "sqrt($)", 4},
		{3, "math.pow($, 2)", 9},
		{-5, "$*$", 25},
		{-5, "2-$", 7},
		{1.5, "$ + $ + $", 4.5},
		{10, "max($, 20)", 20},
	}

	for _, tc := range cases {
		t.Run(tc.template, func(t *testing.T) {
			_, _, op := newOperationFixture(t, tc.upstream, tc.template)

			value, err := op.Number()
			require.NoError(t, err)
			assert.InDelta(t, tc.want, value, 1e-9)
			assert.NoError(t, op.EvalErr())
		})
	}
}

func TestOperationText(t *testing.T) {
	_, _, op := newOperationFixture(t, 2, "$*3")

	text, err := op.Text()
	assert.NoError(t, err)
	assert.Equal(t, "6", text)
	assert.Equal(t, "$*3", op.Template())
	assert.Equal(t, "n", op.Upstream().Name())
	assert.True(t, op.Immutable())
	assert.Equal(t, KindOperation, op.Kind())
}

func TestOperationEvaluationError(t *testing.T) {
	_, _, op := newOperationFixture(t, 2, "$ +")

	value, err := op.Number()
	assert.NoError(t, err)
	assert.True(t, math.IsNaN(value))
	assert.Error(t, op.EvalErr())

	text, err := op.Text()
	assert.NoError(t, err)
	assert.Equal(t, "NaN", text)
}

func TestOperationNonNumericResult(t *testing.T) {
	_, _, op := newOperationFixture(t, 2, "$ > 1")

	value, err := op.Number()
	assert.NoError(t, err)
	assert.True(t, math.IsNaN(value))
	assert.Error(t, op.EvalErr())
}

func TestOperationIsImmutable(t *testing.T) {
	_, _, op := newOperationFixture(t, 2, "$*3")

	assert.ErrorIs(t, op.Assign("4"), ErrImmutable)
	assert.ErrorIs(t, op.SetDouble(4), ErrImmutable)
	assert.ErrorIs(t, op.SetString("4"), ErrImmutable)
}

func TestOperationDanglingUpstream(t *testing.T) {
	store, n, op := newOperationFixture(t, 2, "$*3")

	store.Remove(n)

	_, err := op.Number()
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = op.Text()
	assert.ErrorIs(t, err, ErrNotFound)

	_, ok := store.Lookup("op")
	assert.False(t, ok)

	// A new variable reusing the name isn't picked up.
	require.NoError(t, store.Add(NewDouble("n", 10, false)))
	_, err = op.Number()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewOperationInvalidUpstream(t *testing.T) {
	_, err := NewOperation("op", NewString("s", "1", false), "$*3")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = NewOperation("op", nil, "$*3")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExprLiteral(t *testing.T) {
	assert.Equal(t, "(2)", exprLiteral(2))
	assert.Equal(t, "(-0.5)", exprLiteral(-0.5))
	assert.Equal(t, "(1e+21)", exprLiteral(1e21))
	assert.Equal(t, `float("inf")`, exprLiteral(math.Inf(1)))
	assert.Equal(t, `float("nan")`, exprLiteral(math.NaN()))
}
