// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package combine

import (
	"context"

	"github.com/xacmlgo/pdp/internal/pdp/expr"
	"github.com/xacmlgo/pdp/internal/pdp/obligation"
	"github.com/xacmlgo/pdp/internal/pdp/result"
)

// overridesAlgorithm implements the shared deny-overrides/permit-overrides
// truth table of XACML 3.0 §7.18, parameterized by which Effect wins.
// Evaluation always proceeds in document order (see evalAll), so this
// single implementation backs both the unordered and ordered-* variants.
type overridesAlgorithm struct {
	id   string
	win  result.Effect
}

func (a overridesAlgorithm) ID() string { return a.id }

func (a overridesAlgorithm) Combine(goCtx context.Context, ectx *expr.EvalContext, children []Child, own []obligation.Expr) result.DecisionResult {
	lose := result.Deny
	if a.win == result.Deny {
		lose = result.Permit
	}
	winDecision := result.FromEffect(a.win)
	loseDecision := result.FromEffect(lose)
	indWin := result.IndeterminateForEffect(a.win)
	indLose := result.IndeterminateForEffect(lose)

	childResults := evalAll(goCtx, ectx, children)

	var atLeastOneWin, atLeastOneLose, atLeastOneIndWin, atLeastOneIndLose, atLeastOneIndDP bool
	var firstIndStatus result.Status
	for _, cr := range childResults {
		switch cr.Decision {
		case winDecision:
			atLeastOneWin = true
		case loseDecision:
			atLeastOneLose = true
		case indWin:
			atLeastOneIndWin = true
			if firstIndStatus.Code == "" {
				firstIndStatus = cr.Status
			}
		case indLose:
			atLeastOneIndLose = true
			if firstIndStatus.Code == "" {
				firstIndStatus = cr.Status
			}
		case result.IndeterminateDP:
			atLeastOneIndDP = true
			if firstIndStatus.Code == "" {
				firstIndStatus = cr.Status
			}
		}
	}

	var final result.Decision
	switch {
	case atLeastOneWin:
		final = winDecision
	case atLeastOneIndDP:
		return indeterminateResult(result.IndeterminateDP, firstIndStatus)
	case atLeastOneIndWin && (atLeastOneLose || atLeastOneIndLose):
		return indeterminateResult(result.IndeterminateDP, firstIndStatus)
	case atLeastOneIndWin:
		return indeterminateResult(indWin, firstIndStatus)
	case atLeastOneLose:
		final = loseDecision
	case atLeastOneIndLose:
		return indeterminateResult(indLose, firstIndStatus)
	default:
		return result.NotApplicableResult()
	}

	dr, ind := aggregate(goCtx, ectx, final, childResults, own)
	if ind != nil {
		return indeterminateResult(result.IndeterminateForEffect(a.win), *ind)
	}
	return dr
}
