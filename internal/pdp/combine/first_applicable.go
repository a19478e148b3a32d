// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package combine

import (
	"context"

	"github.com/xacmlgo/pdp/internal/pdp/expr"
	"github.com/xacmlgo/pdp/internal/pdp/obligation"
	"github.com/xacmlgo/pdp/internal/pdp/result"
)

type firstApplicableAlgorithm struct{ id string }

// FirstApplicable scans children left-to-right; the first child
// returning Permit, Deny, or Indeterminate is the result, and
// NotApplicable children are skipped (spec §4.G). Unlike the
// overrides family it genuinely short-circuits: children after the
// winner are never evaluated.
var FirstApplicable Algorithm = firstApplicableAlgorithm{id: "urn:oasis:names:tc:xacml:3.0:policy-combining-algorithm:first-applicable"}
var FirstApplicableRule Algorithm = firstApplicableAlgorithm{id: "urn:oasis:names:tc:xacml:1.0:rule-combining-algorithm:first-applicable"}

func (a firstApplicableAlgorithm) ID() string { return a.id }

func (a firstApplicableAlgorithm) Combine(goCtx context.Context, ectx *expr.EvalContext, children []Child, own []obligation.Expr) result.DecisionResult {
	for _, c := range children {
		cr := c.Evaluate(goCtx, ectx)
		if cr.Decision == result.NotApplicable {
			continue
		}
		if cr.Decision.Indeterminate() {
			return cr
		}
		dr, ind := aggregate(goCtx, ectx, cr.Decision, []result.DecisionResult{cr}, own)
		if ind != nil {
			return indeterminateResult(result.IndeterminateForEffect(effectOf(cr.Decision)), *ind)
		}
		return dr
	}
	return result.NotApplicableResult()
}

func effectOf(d result.Decision) result.Effect {
	if d == result.DecisionPermit {
		return result.Permit
	}
	return result.Deny
}
