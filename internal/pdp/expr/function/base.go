// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package function

import (
	"context"

	"github.com/xacmlgo/pdp/internal/pdp/datatype"
	"github.com/xacmlgo/pdp/internal/pdp/expr"
	"github.com/xacmlgo/pdp/internal/pdp/result"
)

// fixedFunc implements expr.Function for a function with a fixed
// number of single-value arguments and a single-value return. eval
// receives the already-typechecked canonical values.
type fixedFunc struct {
	id    string
	argc  int
	eval  func(args []any) (datatype.ID, any, result.Status)
}

// varFunc implements expr.Function for a variadic single-value
// function, requiring at least min arguments.
type varFunc struct {
	id   string
	min  int
	eval func(args []any) (datatype.ID, any, result.Status)
}

func (f fixedFunc) ID() string           { return f.id }
func (f fixedFunc) CheckArity(n int) bool { return n == f.argc }

func (f fixedFunc) Eval(goCtx context.Context, ectx *expr.EvalContext, args []expr.Expression) expr.Result {
	results, firstInd := expr.EvalArgsStrict(goCtx, ectx, args)
	if firstInd != nil {
		return *firstInd
	}
	vals := make([]any, len(results))
	for i, r := range results {
		if r.Kind != expr.KindValue {
			return expr.IndeterminateResult(result.Processing("argument is a bag where a single value was expected"))
		}
		vals[i] = r.Value.Value
	}
	dt, v, status := f.eval(vals)
	if status.Code != result.StatusOK {
		return expr.IndeterminateResult(status)
	}
	return expr.ValueResult(dt, v)
}

func (f varFunc) ID() string            { return f.id }
func (f varFunc) CheckArity(n int) bool { return n >= f.min }

func (f varFunc) Eval(goCtx context.Context, ectx *expr.EvalContext, args []expr.Expression) expr.Result {
	results, firstInd := expr.EvalArgsStrict(goCtx, ectx, args)
	if firstInd != nil {
		return *firstInd
	}
	vals := make([]any, len(results))
	for i, r := range results {
		if r.Kind != expr.KindValue {
			return expr.IndeterminateResult(result.Processing("argument is a bag where a single value was expected"))
		}
		vals[i] = r.Value.Value
	}
	dt, v, status := f.eval(vals)
	if status.Code != result.StatusOK {
		return expr.IndeterminateResult(status)
	}
	return expr.ValueResult(dt, v)
}

func boolResult(b bool) (datatype.ID, any, result.Status) {
	return datatype.Boolean, b, result.Status{Code: result.StatusOK}
}

func errResult(st result.Status) (datatype.ID, any, result.Status) {
	return "", nil, st
}
