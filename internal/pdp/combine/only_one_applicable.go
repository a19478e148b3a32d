// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package combine

import (
	"context"

	"github.com/xacmlgo/pdp/internal/pdp/expr"
	"github.com/xacmlgo/pdp/internal/pdp/obligation"
	"github.com/xacmlgo/pdp/internal/pdp/result"
	"github.com/xacmlgo/pdp/internal/pdp/target"
)

type onlyOneApplicableAlgorithm struct{}

// OnlyOneApplicable is policy-combining only (spec §4.G): it first
// checks every child's applicability (Target match only, not a full
// evaluation); zero applicable children yields NotApplicable, more
// than one yields a processing-error Indeterminate, and exactly one
// is then fully evaluated. The Target-match results computed here are
// not cached: the selected child's Evaluate matches its Target again.
var OnlyOneApplicable Algorithm = onlyOneApplicableAlgorithm{}

func (onlyOneApplicableAlgorithm) ID() string {
	return "urn:oasis:names:tc:xacml:3.0:policy-combining-algorithm:only-one-applicable"
}

func (onlyOneApplicableAlgorithm) Combine(goCtx context.Context, ectx *expr.EvalContext, children []Child, own []obligation.Expr) result.DecisionResult {
	var applicable []int
	for i, c := range children {
		m := c.EvaluateTarget(goCtx, ectx)
		switch m.Outcome {
		case target.Indeterminate:
			return indeterminateResult(result.IndeterminateDP, m.Status)
		case target.Matched:
			applicable = append(applicable, i)
		}
	}

	switch len(applicable) {
	case 0:
		return result.NotApplicableResult()
	case 1:
		cr := children[applicable[0]].Evaluate(goCtx, ectx)
		if cr.Decision.Indeterminate() || cr.Decision == result.NotApplicable {
			return cr
		}
		dr, ind := aggregate(goCtx, ectx, cr.Decision, []result.DecisionResult{cr}, own)
		if ind != nil {
			return indeterminateResult(result.IndeterminateForEffect(effectOf(cr.Decision)), *ind)
		}
		return dr
	default:
		return indeterminateResult(result.IndeterminateDP, result.Processing("Too many (more than one) applicable policies"))
	}
}
