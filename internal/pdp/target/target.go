// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

// Package target implements the Target/AnyOf/AllOf/Match matcher of
// spec.md §4.E: a Target is a conjunction of AnyOf, AnyOf is a
// disjunction of AllOf, AllOf is a conjunction of Match, and a Match
// applies a boolean function to (literal value, bag value) and is
// satisfied iff any bag element yields true.
package target

import (
	"context"

	"github.com/xacmlgo/pdp/internal/pdp/expr"
	"github.com/xacmlgo/pdp/internal/pdp/result"
)

// MatchOutcome is the three-valued result of matching a Target node
// against a request context.
type MatchOutcome int

const (
	NoMatch MatchOutcome = iota
	Matched
	Indeterminate
)

// MatchResult pairs an outcome with the status that produced an
// Indeterminate outcome, preserved from the first Indeterminate
// AllOf/AnyOf encountered per spec §4.E.
type MatchResult struct {
	Outcome MatchOutcome
	Status  result.Status
}

func matched() MatchResult      { return MatchResult{Outcome: Matched} }
func noMatch() MatchResult      { return MatchResult{Outcome: NoMatch} }
func indeterminate(s result.Status) MatchResult {
	return MatchResult{Outcome: Indeterminate, Status: s}
}

// MatchClause is one <Match>: a boolean function applied to a literal
// designator/selector comparison, e.g. string-equal(AttributeValue,
// AttributeDesignator). Function must accept exactly two arguments:
// the literal value and a single element drawn from the bag.
type MatchClause struct {
	Function expr.Function
	// Value is evaluated once; it is ordinarily an AttributeValueExpr.
	Value expr.Expression
	// Bag is the designator/selector being matched against; it is
	// evaluated once and the Function is applied against every element.
	Bag expr.Expression
}

// Eval implements "a boolean function to (literalValue, bagValue),
// true iff any bag element yields true" per spec §4.E.
func (m MatchClause) Eval(goCtx context.Context, ectx *expr.EvalContext) MatchResult {
	valRes := m.Value.Eval(goCtx, ectx)
	if valRes.IsIndeterminate() {
		return indeterminate(valRes.Status)
	}
	bagRes := m.Bag.Eval(goCtx, ectx)
	if bagRes.IsIndeterminate() {
		return indeterminate(bagRes.Status)
	}
	if bagRes.Kind != expr.KindBag {
		return indeterminate(result.Processing("target match: designator did not yield a bag"))
	}
	for _, elem := range bagRes.Bag.Values {
		args := []expr.Expression{expr.Literal{Result: valRes}, expr.Literal{Result: expr.ValueResult(bagRes.Bag.Type, elem)}}
		r := m.Function.Eval(goCtx, ectx, args)
		if r.IsIndeterminate() {
			return indeterminate(r.Status)
		}
		if r.Kind == expr.KindValue && r.Value.Value == true {
			return matched()
		}
	}
	return noMatch()
}

// AllOf is a conjunction of Match clauses.
type AllOf struct {
	Matches []MatchClause
}

func (a AllOf) Eval(goCtx context.Context, ectx *expr.EvalContext) MatchResult {
	var firstIndeterminate *MatchResult
	for _, m := range a.Matches {
		r := m.Eval(goCtx, ectx)
		switch r.Outcome {
		case NoMatch:
			return noMatch()
		case Indeterminate:
			if firstIndeterminate == nil {
				firstIndeterminate = &r
			}
		}
	}
	if firstIndeterminate != nil {
		return *firstIndeterminate
	}
	return matched()
}

// AnyOf is a disjunction of AllOf.
type AnyOf struct {
	AllOfs []AllOf
}

func (a AnyOf) Eval(goCtx context.Context, ectx *expr.EvalContext) MatchResult {
	var firstIndeterminate *MatchResult
	for _, allOf := range a.AllOfs {
		r := allOf.Eval(goCtx, ectx)
		switch r.Outcome {
		case Matched:
			return matched()
		case Indeterminate:
			if firstIndeterminate == nil {
				firstIndeterminate = &r
			}
		}
	}
	if firstIndeterminate != nil {
		return *firstIndeterminate
	}
	return noMatch()
}

// Target is a conjunction of AnyOf, following the same short-circuit
// shape as AllOf. An empty Target (no AnyOfs) matches unconditionally.
type Target struct {
	AnyOfs []AnyOf
}

func (t Target) Eval(goCtx context.Context, ectx *expr.EvalContext) MatchResult {
	if len(t.AnyOfs) == 0 {
		return matched()
	}
	var firstIndeterminate *MatchResult
	for _, anyOf := range t.AnyOfs {
		r := anyOf.Eval(goCtx, ectx)
		switch r.Outcome {
		case NoMatch:
			return noMatch()
		case Indeterminate:
			if firstIndeterminate == nil {
				firstIndeterminate = &r
			}
		}
	}
	if firstIndeterminate != nil {
		return *firstIndeterminate
	}
	return matched()
}
