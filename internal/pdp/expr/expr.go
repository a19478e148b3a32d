// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

// Package expr implements the recursive expression evaluator of
// spec.md §4.C: AttributeValue, AttributeDesignator, AttributeSelector,
// VariableReference, and Apply(function, args) nodes, each yielding a
// Value, a Bag, or Indeterminate.
package expr

import (
	"context"

	"github.com/xacmlgo/pdp/internal/pdp/datatype"
	pdpcontext "github.com/xacmlgo/pdp/internal/pdp/context"
	"github.com/xacmlgo/pdp/internal/pdp/result"
)

// Expression is any node in the expression AST.
type Expression interface {
	// Eval evaluates the node against ectx, returning a Result.
	Eval(goCtx context.Context, ectx *EvalContext) Result
}

// ResultKind discriminates what a Result holds.
type ResultKind int

const (
	KindValue ResultKind = iota
	KindBag
	KindIndeterminate
)

// Result is the outcome of evaluating one Expression node: exactly one
// of Value, Bag, or Status (when Kind is KindIndeterminate) is meaningful.
// A Result carries no Indeterminate flavour; package rule applies the
// enclosing rule's Effect when it builds the DecisionResult.
type Result struct {
	Kind   ResultKind
	Value  datatype.Value
	Bag    datatype.Bag
	Status result.Status
}

func ValueResult(dt datatype.ID, v any) Result {
	return Result{Kind: KindValue, Value: datatype.Value{Type: dt, Value: v}}
}

func BagResult(b datatype.Bag) Result {
	return Result{Kind: KindBag, Bag: b}
}

func IndeterminateResult(status result.Status) Result {
	return Result{Kind: KindIndeterminate, Status: status}
}

func (r Result) IsIndeterminate() bool { return r.Kind == KindIndeterminate }

// Bool extracts a boolean singleton from a Value result; callers must
// have already checked Kind == KindValue and Value.Type == datatype.Boolean.
func (r Result) Bool() bool { return r.Value.Value.(bool) }

// AttributeValueExpr wraps a literal AttributeValue.
type AttributeValueExpr struct {
	Type  datatype.ID
	Value any
}

func (e AttributeValueExpr) Eval(_ context.Context, _ *EvalContext) Result {
	return ValueResult(e.Type, e.Value)
}

// Designator evaluates to a Bag via the attribute context.
type Designator struct {
	Category      string
	AttributeID   string
	Type          datatype.ID
	Issuer        string
	MustBePresent bool
}

func (d Designator) Eval(goCtx context.Context, ectx *EvalContext) Result {
	got := ectx.Attrs.Get(goCtx, d.Category, d.AttributeID, d.Type, d.Issuer, d.MustBePresent)
	if got.Status.Code != result.StatusOK {
		return IndeterminateResult(got.Status)
	}
	return BagResult(got.Bag)
}

// Selector evaluates an XPath-like projection over a category's
// structured content. Per spec §4.B, when the deployment has no
// structured content, selectors return an empty bag by design; here
// that is realized by Resolve being nil or returning no matches.
type Selector struct {
	Category        string
	Path            string
	ContextSelector string
	Type            datatype.ID
	MustBePresent   bool
}

// SelectorResolver projects Path over the structured content
// registered for Category, returning zero or more lexical forms to
// parse as Type. A nil resolver means "no structured content
// available"; Selector.Eval then yields an empty bag (or Indeterminate
// if MustBePresent).
type SelectorResolver interface {
	Resolve(category, path, contextSelectorID string) ([]string, error)
}

func (s Selector) Eval(_ context.Context, ectx *EvalContext) Result {
	if ectx.Selectors == nil {
		if s.MustBePresent {
			return IndeterminateResult(result.Missing(s.Path))
		}
		return BagResult(datatype.Bag{Type: s.Type})
	}
	lexicals, err := ectx.Selectors.Resolve(s.Category, s.Path, s.ContextSelector)
	if err != nil {
		return IndeterminateResult(result.Processing(err.Error()))
	}
	dt, ok := datatype.Lookup(s.Type)
	if !ok {
		return IndeterminateResult(result.Processing("unknown selector datatype " + string(s.Type)))
	}
	bag := datatype.Bag{Type: s.Type}
	for _, lex := range lexicals {
		v, err := dt.Parse(lex)
		if err != nil {
			return IndeterminateResult(result.Syntax(err.Error()))
		}
		bag.Values = append(bag.Values, v)
	}
	if s.MustBePresent && bag.Empty() {
		return IndeterminateResult(result.Missing(s.Path))
	}
	return BagResult(bag)
}

// VariableReference looks up a memoised VariableDefinition result
// within the enclosing policy's evaluation scope.
type VariableReference struct {
	ID string
}

func (v VariableReference) Eval(goCtx context.Context, ectx *EvalContext) Result {
	return ectx.Variables.Resolve(goCtx, ectx, v.ID)
}

// VariableDefinition is (id, expression); VariableScope memoises its
// result at most once per request context (spec §3 invariant 3).
type VariableDefinition struct {
	ID         string
	Expression Expression
}

// FunctionRef is a bare reference to a function, used as the first
// argument position of the higher-order functions (any-of, all-of,
// map, ...) per spec §4.D. It is never evaluated for a value in the
// normal sense: the higher-order function type-asserts its first
// argument to FunctionRef and invokes Function directly against
// synthesized argument expressions instead of calling Eval on it.
type FunctionRef struct {
	Function Function
}

func (f FunctionRef) Eval(_ context.Context, _ *EvalContext) Result {
	return IndeterminateResult(result.Processing("function " + f.Function.ID() + " referenced outside a higher-order function position"))
}

// Literal wraps an already-evaluated Result back into an Expression,
// so higher-order functions can feed bag elements to the inner
// function without re-evaluating them against ectx.
type Literal struct {
	Result Result
}

func (l Literal) Eval(_ context.Context, _ *EvalContext) Result { return l.Result }
