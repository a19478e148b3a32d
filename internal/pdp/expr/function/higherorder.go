// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package function

import (
	"context"

	"github.com/xacmlgo/pdp/internal/pdp/datatype"
	"github.com/xacmlgo/pdp/internal/pdp/expr"
	"github.com/xacmlgo/pdp/internal/pdp/result"
)

// higherOrderFunc implements the any-of/all-of family of spec §4.D:
// "each takes a function as first argument and iterates over bag
// arguments with the specified cross-product/zip semantics." The
// first argument is never evaluated normally; it is type-asserted to
// expr.FunctionRef and its Function is invoked directly against
// expr.Literal-wrapped bag elements.
type higherOrderFunc struct {
	id      string
	minArgc int
	eval    func(goCtx context.Context, ectx *expr.EvalContext, fn expr.Function, rest []expr.Expression) expr.Result
}

func (f higherOrderFunc) ID() string            { return f.id }
func (f higherOrderFunc) CheckArity(n int) bool { return n >= f.minArgc }

func (f higherOrderFunc) Eval(goCtx context.Context, ectx *expr.EvalContext, args []expr.Expression) expr.Result {
	ref, ok := args[0].(expr.FunctionRef)
	if !ok {
		return expr.IndeterminateResult(result.Processing(f.id + ": first argument is not a function reference"))
	}
	return f.eval(goCtx, ectx, ref.Function, args[1:])
}

// evalBag evaluates e and requires it to be a bag, returning its
// values or an Indeterminate Result.
func evalBag(goCtx context.Context, ectx *expr.EvalContext, e expr.Expression) (datatype.Bag, *expr.Result) {
	r := e.Eval(goCtx, ectx)
	if r.IsIndeterminate() {
		return datatype.Bag{}, &r
	}
	if r.Kind != expr.KindBag {
		bad := expr.IndeterminateResult(result.Processing("higher-order function: argument is not a bag"))
		return datatype.Bag{}, &bad
	}
	return r.Bag, nil
}

// applyBool calls fn with the given literal argument expressions and
// requires a boolean Result.
func applyBool(goCtx context.Context, ectx *expr.EvalContext, fn expr.Function, args ...expr.Expression) expr.Result {
	if !fn.CheckArity(len(args)) {
		return expr.IndeterminateResult(result.Processing("higher-order function: wrong arity for inner function"))
	}
	r := fn.Eval(goCtx, ectx, args)
	if r.IsIndeterminate() {
		return r
	}
	if r.Kind != expr.KindValue || r.Value.Type != datatype.Boolean {
		return expr.IndeterminateResult(result.Processing("higher-order function: inner function did not return a boolean"))
	}
	return r
}

func literalOf(dt datatype.ID, v any) expr.Expression {
	return expr.Literal{Result: expr.ValueResult(dt, v)}
}

func registerHigherOrder(r *Registry) {
	// any-of(F, value, bag): F(value, x) for each x in bag, true if any true.
	r.register(higherOrderFunc{
		id:      "urn:oasis:names:tc:xacml:3.0:function:any-of",
		minArgc: 3,
		eval: func(goCtx context.Context, ectx *expr.EvalContext, fn expr.Function, rest []expr.Expression) expr.Result {
			valueResult := rest[0].Eval(goCtx, ectx)
			if valueResult.IsIndeterminate() {
				return valueResult
			}
			bag, indet := evalBag(goCtx, ectx, rest[1])
			if indet != nil {
				return *indet
			}
			var firstIndeterminate *expr.Result
			for _, x := range bag.Values {
				res := applyBool(goCtx, ectx, fn, expr.Literal{Result: valueResult}, literalOf(bag.Type, x))
				if res.IsIndeterminate() {
					if firstIndeterminate == nil {
						firstIndeterminate = &res
					}
					continue
				}
				if res.Bool() {
					return expr.ValueResult(datatype.Boolean, true)
				}
			}
			if firstIndeterminate != nil {
				return *firstIndeterminate
			}
			return expr.ValueResult(datatype.Boolean, false)
		},
	})

	// all-of(F, value, bag): F(value, x) for each x in bag, true only if all true.
	r.register(higherOrderFunc{
		id:      "urn:oasis:names:tc:xacml:3.0:function:all-of",
		minArgc: 3,
		eval: func(goCtx context.Context, ectx *expr.EvalContext, fn expr.Function, rest []expr.Expression) expr.Result {
			valueResult := rest[0].Eval(goCtx, ectx)
			if valueResult.IsIndeterminate() {
				return valueResult
			}
			bag, indet := evalBag(goCtx, ectx, rest[1])
			if indet != nil {
				return *indet
			}
			var firstIndeterminate *expr.Result
			for _, x := range bag.Values {
				res := applyBool(goCtx, ectx, fn, expr.Literal{Result: valueResult}, literalOf(bag.Type, x))
				if res.IsIndeterminate() {
					if firstIndeterminate == nil {
						firstIndeterminate = &res
					}
					continue
				}
				if !res.Bool() {
					return expr.ValueResult(datatype.Boolean, false)
				}
			}
			if firstIndeterminate != nil {
				return *firstIndeterminate
			}
			return expr.ValueResult(datatype.Boolean, true)
		},
	})

	// any-of-any(F, bag1, bag2): true iff F(x,y) true for some x in bag1, y in bag2.
	r.register(higherOrderFunc{
		id:      "urn:oasis:names:tc:xacml:3.0:function:any-of-any",
		minArgc: 3,
		eval: func(goCtx context.Context, ectx *expr.EvalContext, fn expr.Function, rest []expr.Expression) expr.Result {
			bag1, indet := evalBag(goCtx, ectx, rest[0])
			if indet != nil {
				return *indet
			}
			bag2, indet := evalBag(goCtx, ectx, rest[1])
			if indet != nil {
				return *indet
			}
			var firstIndeterminate *expr.Result
			for _, x := range bag1.Values {
				for _, y := range bag2.Values {
					res := applyBool(goCtx, ectx, fn, literalOf(bag1.Type, x), literalOf(bag2.Type, y))
					if res.IsIndeterminate() {
						if firstIndeterminate == nil {
							firstIndeterminate = &res
						}
						continue
					}
					if res.Bool() {
						return expr.ValueResult(datatype.Boolean, true)
					}
				}
			}
			if firstIndeterminate != nil {
				return *firstIndeterminate
			}
			return expr.ValueResult(datatype.Boolean, false)
		},
	})

	// all-of-any(F, bag1, bag2): for every x in bag1, F(x,y) true for at least one y in bag2.
	r.register(higherOrderFunc{
		id:      "urn:oasis:names:tc:xacml:3.0:function:all-of-any",
		minArgc: 3,
		eval: func(goCtx context.Context, ectx *expr.EvalContext, fn expr.Function, rest []expr.Expression) expr.Result {
			bag1, indet := evalBag(goCtx, ectx, rest[0])
			if indet != nil {
				return *indet
			}
			bag2, indet := evalBag(goCtx, ectx, rest[1])
			if indet != nil {
				return *indet
			}
			var firstIndeterminate *expr.Result
			for _, x := range bag1.Values {
				anyTrue := false
				for _, y := range bag2.Values {
					res := applyBool(goCtx, ectx, fn, literalOf(bag1.Type, x), literalOf(bag2.Type, y))
					if res.IsIndeterminate() {
						if firstIndeterminate == nil {
							firstIndeterminate = &res
						}
						continue
					}
					if res.Bool() {
						anyTrue = true
						break
					}
				}
				if !anyTrue {
					if firstIndeterminate != nil {
						return *firstIndeterminate
					}
					return expr.ValueResult(datatype.Boolean, false)
				}
			}
			if firstIndeterminate != nil {
				return *firstIndeterminate
			}
			return expr.ValueResult(datatype.Boolean, true)
		},
	})

	// any-of-all(F, bag1, bag2): true iff some x in bag1 has F(x,y) true for every y in bag2.
	r.register(higherOrderFunc{
		id:      "urn:oasis:names:tc:xacml:3.0:function:any-of-all",
		minArgc: 3,
		eval: func(goCtx context.Context, ectx *expr.EvalContext, fn expr.Function, rest []expr.Expression) expr.Result {
			bag1, indet := evalBag(goCtx, ectx, rest[0])
			if indet != nil {
				return *indet
			}
			bag2, indet := evalBag(goCtx, ectx, rest[1])
			if indet != nil {
				return *indet
			}
			var firstIndeterminate *expr.Result
			for _, x := range bag1.Values {
				allTrue := true
				for _, y := range bag2.Values {
					res := applyBool(goCtx, ectx, fn, literalOf(bag1.Type, x), literalOf(bag2.Type, y))
					if res.IsIndeterminate() {
						if firstIndeterminate == nil {
							firstIndeterminate = &res
						}
						allTrue = false
						break
					}
					if !res.Bool() {
						allTrue = false
						break
					}
				}
				if allTrue {
					return expr.ValueResult(datatype.Boolean, true)
				}
			}
			if firstIndeterminate != nil {
				return *firstIndeterminate
			}
			return expr.ValueResult(datatype.Boolean, false)
		},
	})

	// all-of-all(F, bag1, bag2): F(x,y) true for every x in bag1, y in bag2.
	r.register(higherOrderFunc{
		id:      "urn:oasis:names:tc:xacml:3.0:function:all-of-all",
		minArgc: 3,
		eval: func(goCtx context.Context, ectx *expr.EvalContext, fn expr.Function, rest []expr.Expression) expr.Result {
			bag1, indet := evalBag(goCtx, ectx, rest[0])
			if indet != nil {
				return *indet
			}
			bag2, indet := evalBag(goCtx, ectx, rest[1])
			if indet != nil {
				return *indet
			}
			var firstIndeterminate *expr.Result
			for _, x := range bag1.Values {
				for _, y := range bag2.Values {
					res := applyBool(goCtx, ectx, fn, literalOf(bag1.Type, x), literalOf(bag2.Type, y))
					if res.IsIndeterminate() {
						if firstIndeterminate == nil {
							firstIndeterminate = &res
						}
						continue
					}
					if !res.Bool() {
						if firstIndeterminate != nil {
							return *firstIndeterminate
						}
						return expr.ValueResult(datatype.Boolean, false)
					}
				}
			}
			if firstIndeterminate != nil {
				return *firstIndeterminate
			}
			return expr.ValueResult(datatype.Boolean, true)
		},
	})

	// map(F, bag): returns the bag resulting from applying F to each
	// element of bag; F must be single-argument.
	r.register(higherOrderFunc{
		id:      "urn:oasis:names:tc:xacml:3.0:function:map",
		minArgc: 2,
		eval: func(goCtx context.Context, ectx *expr.EvalContext, fn expr.Function, rest []expr.Expression) expr.Result {
			bag, indet := evalBag(goCtx, ectx, rest[0])
			if indet != nil {
				return *indet
			}
			if !fn.CheckArity(1) {
				return expr.IndeterminateResult(result.Processing("map: inner function does not accept a single argument"))
			}
			var out datatype.Bag
			for _, x := range bag.Values {
				res := fn.Eval(goCtx, ectx, []expr.Expression{literalOf(bag.Type, x)})
				if res.IsIndeterminate() {
					return res
				}
				if res.Kind != expr.KindValue {
					return expr.IndeterminateResult(result.Processing("map: inner function did not return a single value"))
				}
				if out.Type == "" {
					out.Type = res.Value.Type
				}
				out.Values = append(out.Values, res.Value.Value)
			}
			return expr.BagResult(out)
		},
	})
}
