// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package function_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xacmlgo/pdp/internal/pdp/datatype"
	"github.com/xacmlgo/pdp/internal/pdp/expr"
	"github.com/xacmlgo/pdp/internal/pdp/expr/function"
	"github.com/xacmlgo/pdp/internal/pdp/result"
)

func lookup(t *testing.T, id string) expr.Function {
	t.Helper()
	f, ok := function.Standard().Lookup(id)
	require.True(t, ok, "function %s must be registered", id)
	return f
}

func strLit(s string) expr.Expression { return expr.AttributeValueExpr{Type: datatype.String, Value: s} }

func bagExpr(dt datatype.ID, values ...any) expr.Expression {
	return expr.Literal{Result: expr.BagResult(datatype.Bag{Type: dt, Values: values})}
}

func TestStringBagConstructsBagFromValues(t *testing.T) {
	f := lookup(t, "urn:oasis:names:tc:xacml:1.0:function:string-bag")
	r := f.Eval(context.Background(), &expr.EvalContext{}, []expr.Expression{strLit("a"), strLit("b")})
	require.Equal(t, expr.KindBag, r.Kind)
	assert.Equal(t, []any{"a", "b"}, r.Bag.Values)
}

func TestStringBagSize(t *testing.T) {
	f := lookup(t, "urn:oasis:names:tc:xacml:1.0:function:string-bag-size")
	r := f.Eval(context.Background(), &expr.EvalContext{}, []expr.Expression{bagExpr(datatype.String, "a", "b", "c")})
	require.Equal(t, expr.KindValue, r.Kind)
	assert.Equal(t, 0, r.Value.Value.(*big.Int).Cmp(big.NewInt(3)))
}

func TestStringOneAndOnlyRequiresExactlyOneElement(t *testing.T) {
	f := lookup(t, "urn:oasis:names:tc:xacml:1.0:function:string-one-and-only")
	ok := f.Eval(context.Background(), &expr.EvalContext{}, []expr.Expression{bagExpr(datatype.String, "solo")})
	require.Equal(t, expr.KindValue, ok.Kind)
	assert.Equal(t, "solo", ok.Value.Value)

	bad := f.Eval(context.Background(), &expr.EvalContext{}, []expr.Expression{bagExpr(datatype.String, "a", "b")})
	assert.True(t, bad.IsIndeterminate())
}

func TestStringIsInChecksMembership(t *testing.T) {
	f := lookup(t, "urn:oasis:names:tc:xacml:1.0:function:string-is-in")
	r := f.Eval(context.Background(), &expr.EvalContext{}, []expr.Expression{strLit("b"), bagExpr(datatype.String, "a", "b", "c")})
	require.Equal(t, expr.KindValue, r.Kind)
	assert.True(t, r.Bool())

	r = f.Eval(context.Background(), &expr.EvalContext{}, []expr.Expression{strLit("z"), bagExpr(datatype.String, "a", "b", "c")})
	assert.False(t, r.Bool())
}

func TestBagFunctionPropagatesIndeterminateArgument(t *testing.T) {
	f := lookup(t, "urn:oasis:names:tc:xacml:1.0:function:string-bag-size")
	boom := expr.Literal{Result: expr.IndeterminateResult(result.Processing("boom"))}
	r := f.Eval(context.Background(), &expr.EvalContext{}, []expr.Expression{boom})
	assert.True(t, r.IsIndeterminate())
}
