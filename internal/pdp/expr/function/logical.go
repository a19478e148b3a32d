// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package function

import (
	"context"

	"github.com/xacmlgo/pdp/internal/pdp/datatype"
	"github.com/xacmlgo/pdp/internal/pdp/expr"
	"github.com/xacmlgo/pdp/internal/pdp/result"
)

// andFunc/orFunc/notFunc/nOfFunc evaluate their argument expressions
// directly (rather than through the fixedFunc/varFunc strict-eval
// helpers) so they can short-circuit per spec §4.D: "and"/"or" stop at
// the first deciding value; "n-of" stops once k Trues or (n-k+1)
// Falses have been seen.

type andFunc struct{}

func (andFunc) ID() string            { return "urn:oasis:names:tc:xacml:1.0:function:and" }
func (andFunc) CheckArity(n int) bool { return n >= 0 }

func (andFunc) Eval(goCtx context.Context, ectx *expr.EvalContext, args []expr.Expression) expr.Result {
	var firstIndeterminate *expr.Result
	for _, a := range args {
		r := a.Eval(goCtx, ectx)
		if r.IsIndeterminate() {
			if firstIndeterminate == nil {
				firstIndeterminate = &r
			}
			continue
		}
		if r.Kind != expr.KindValue || r.Value.Type != datatype.Boolean {
			return expr.IndeterminateResult(result.Processing("and: argument is not a boolean"))
		}
		if !r.Bool() {
			return expr.ValueResult(datatype.Boolean, false)
		}
	}
	if firstIndeterminate != nil {
		return *firstIndeterminate
	}
	return expr.ValueResult(datatype.Boolean, true)
}

type orFunc struct{}

func (orFunc) ID() string            { return "urn:oasis:names:tc:xacml:1.0:function:or" }
func (orFunc) CheckArity(n int) bool { return n >= 0 }

func (orFunc) Eval(goCtx context.Context, ectx *expr.EvalContext, args []expr.Expression) expr.Result {
	var firstIndeterminate *expr.Result
	for _, a := range args {
		r := a.Eval(goCtx, ectx)
		if r.IsIndeterminate() {
			if firstIndeterminate == nil {
				firstIndeterminate = &r
			}
			continue
		}
		if r.Kind != expr.KindValue || r.Value.Type != datatype.Boolean {
			return expr.IndeterminateResult(result.Processing("or: argument is not a boolean"))
		}
		if r.Bool() {
			return expr.ValueResult(datatype.Boolean, true)
		}
	}
	if firstIndeterminate != nil {
		return *firstIndeterminate
	}
	return expr.ValueResult(datatype.Boolean, false)
}

type notFunc struct{}

func (notFunc) ID() string            { return "urn:oasis:names:tc:xacml:1.0:function:not" }
func (notFunc) CheckArity(n int) bool { return n == 1 }

func (notFunc) Eval(goCtx context.Context, ectx *expr.EvalContext, args []expr.Expression) expr.Result {
	r := args[0].Eval(goCtx, ectx)
	if r.IsIndeterminate() {
		return r
	}
	if r.Kind != expr.KindValue || r.Value.Type != datatype.Boolean {
		return expr.IndeterminateResult(result.Processing("not: argument is not a boolean"))
	}
	return expr.ValueResult(datatype.Boolean, !r.Bool())
}

// nOfFunc implements n-of(k, b1..bn): the first argument is an
// integer k (not a boolean); the rest are booleans.
type nOfFunc struct{}

func (nOfFunc) ID() string            { return "urn:oasis:names:tc:xacml:1.0:function:n-of" }
func (nOfFunc) CheckArity(n int) bool { return n >= 1 }

func (nOfFunc) Eval(goCtx context.Context, ectx *expr.EvalContext, args []expr.Expression) expr.Result {
	kResult := args[0].Eval(goCtx, ectx)
	if kResult.IsIndeterminate() {
		return kResult
	}
	if kResult.Kind != expr.KindValue || kResult.Value.Type != datatype.Integer {
		return expr.IndeterminateResult(result.Processing("n-of: first argument is not an integer"))
	}
	k := mustInt(kResult.Value.Value)
	rest := args[1:]
	n := len(rest)
	if k < 0 || k > n {
		return expr.IndeterminateResult(result.Processing("n-of: k out of range"))
	}
	if k == 0 {
		return expr.ValueResult(datatype.Boolean, true)
	}

	trues, falses := 0, 0
	var firstIndeterminate *expr.Result
	for _, a := range rest {
		r := a.Eval(goCtx, ectx)
		if r.IsIndeterminate() {
			if firstIndeterminate == nil {
				firstIndeterminate = &r
			}
			continue
		}
		if r.Kind != expr.KindValue || r.Value.Type != datatype.Boolean {
			return expr.IndeterminateResult(result.Processing("n-of: argument is not a boolean"))
		}
		if r.Bool() {
			trues++
			if trues >= k {
				return expr.ValueResult(datatype.Boolean, true)
			}
		} else {
			falses++
			if falses > n-k {
				return expr.ValueResult(datatype.Boolean, false)
			}
		}
	}
	if firstIndeterminate != nil {
		return *firstIndeterminate
	}
	// Every argument resolved and neither threshold was reached — only
	// possible when the function's own range check above is violated,
	// which cannot happen, but report Indeterminate defensively.
	return expr.IndeterminateResult(result.Processing("n-of: inconsistent evaluation"))
}

func registerLogical(r *Registry) {
	r.register(andFunc{})
	r.register(orFunc{})
	r.register(notFunc{})
	r.register(nOfFunc{})
}
