// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

// Package obligation holds the unevaluated Obligation/Advice
// expression templates shared by the rule and policy evaluators (spec
// §4.F step 3, §4.G's "prepend any obligations/advice declared on the
// combining policy itself"), kept in one leaf package so neither
// evaluator has to import the other.
package obligation

import (
	"context"

	"github.com/xacmlgo/pdp/internal/pdp/expr"
	"github.com/xacmlgo/pdp/internal/pdp/result"
)

// AttributeAssignmentExpr is the unevaluated template of one
// AttributeAssignment inside an Obligation/Advice expression.
type AttributeAssignmentExpr struct {
	AttributeID string
	Category    string
	DataType    string
	Expression  expr.Expression
}

// Expr is an Obligation or Advice prior to evaluation: it fires only
// when the enclosing rule/policy's effect (or the combined decision,
// at the policy/policy-set level) equals FulfillOn.
type Expr struct {
	ID          string
	FulfillOn   result.Effect
	Assignments []AttributeAssignmentExpr
	// Advice is true when this Expr represents an Advice rather than
	// an Obligation; Evaluate dispatches into the matching result type.
	Advice bool
}

func evaluateAssignments(goCtx context.Context, ectx *expr.EvalContext, exprs []AttributeAssignmentExpr) ([]result.AttributeAssignment, *result.Status) {
	out := make([]result.AttributeAssignment, 0, len(exprs))
	for _, a := range exprs {
		r := a.Expression.Eval(goCtx, ectx)
		if r.IsIndeterminate() {
			return nil, &r.Status
		}
		var value any
		var dataType string
		if r.Kind == expr.KindValue {
			value, dataType = r.Value.Value, string(r.Value.Type)
		} else {
			value, dataType = r.Bag.Values, string(r.Bag.Type)
		}
		out = append(out, result.AttributeAssignment{
			AttributeID: a.AttributeID,
			Category:    a.Category,
			DataType:    dataType,
			Value:       value,
		})
	}
	return out, nil
}

// Evaluate evaluates every expr whose FulfillOn equals effect,
// returning the populated Obligations/Advice lists plus the first
// Indeterminate status encountered, if any.
func Evaluate(goCtx context.Context, ectx *expr.EvalContext, effect result.Effect, exprs []Expr) ([]result.Obligation, []result.Advice, *result.Status) {
	var obligations []result.Obligation
	var advice []result.Advice
	for _, e := range exprs {
		if e.FulfillOn != effect {
			continue
		}
		assignments, ind := evaluateAssignments(goCtx, ectx, e.Assignments)
		if ind != nil {
			return nil, nil, ind
		}
		if e.Advice {
			advice = append(advice, result.Advice{ID: e.ID, AppliesTo: e.FulfillOn, Assignments: assignments})
		} else {
			obligations = append(obligations, result.Obligation{ID: e.ID, FulfillOn: e.FulfillOn, Assignments: assignments})
		}
	}
	return obligations, advice, nil
}
