// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package expr

import "context"

// ArgKind distinguishes a single value argument from a bag argument in
// a function's static signature.
type ArgKind int

const (
	KindArgSingle ArgKind = iota
	KindArgBag
)

// Function is the contract every XACML function implements. Grounded
// on the teacher dsl/evaluator.go's operator-dispatch shape,
// generalized from a handful of hardcoded operators to a pluggable,
// registry-based function set (package function).
//
// Eval receives the unevaluated argument expressions rather than
// pre-evaluated Results so that short-circuiting functions (and, or,
// n-of, the higher-order any-of/all-of family) can stop evaluating
// arguments early, per spec §4.C.
type Function interface {
	ID() string

	// CheckArity reports whether argc is an acceptable argument count.
	// It is invoked by Apply.Eval on every evaluation, since this engine
	// has no separate compile pass over constructed expressions. Argument
	// datatypes are not checked here or anywhere before Eval.
	CheckArity(argc int) bool

	Eval(goCtx context.Context, ectx *EvalContext, args []Expression) Result
}

// Apply evaluates a function against its argument expressions.
type Apply struct {
	Function Function
	Args     []Expression
}

func (a Apply) Eval(goCtx context.Context, ectx *EvalContext) Result {
	if !a.Function.CheckArity(len(a.Args)) {
		return IndeterminateResult(processingf("function %s: wrong number of arguments (%d)", a.Function.ID(), len(a.Args)))
	}
	return a.Function.Eval(goCtx, ectx, a.Args)
}

// EvalArgsStrict evaluates every argument left-to-right and returns the
// first Indeterminate encountered (if any) plus the full Result slice.
// This is the non-short-circuit helper most functions use.
func EvalArgsStrict(goCtx context.Context, ectx *EvalContext, args []Expression) ([]Result, *Result) {
	out := make([]Result, len(args))
	var firstIndeterminate *Result
	for i, a := range args {
		out[i] = a.Eval(goCtx, ectx)
		if out[i].IsIndeterminate() && firstIndeterminate == nil {
			r := out[i]
			firstIndeterminate = &r
		}
	}
	return out, firstIndeterminate
}
