// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package combine

import (
	"context"

	"github.com/xacmlgo/pdp/internal/pdp/expr"
	"github.com/xacmlgo/pdp/internal/pdp/obligation"
	"github.com/xacmlgo/pdp/internal/pdp/result"
)

type unlessAlgorithm struct {
	id   string
	win  result.Effect
}

// DenyUnlessPermit never returns NotApplicable or Indeterminate: any
// outcome that is not Permit is forced to Deny (spec §4.G).
var DenyUnlessPermit Algorithm = unlessAlgorithm{
	id:  "urn:oasis:names:tc:xacml:3.0:policy-combining-algorithm:deny-unless-permit",
	win: result.Permit,
}

var DenyUnlessPermitRule Algorithm = unlessAlgorithm{
	id:  "urn:oasis:names:tc:xacml:3.0:rule-combining-algorithm:deny-unless-permit",
	win: result.Permit,
}

func (a unlessAlgorithm) ID() string { return a.id }

func (a unlessAlgorithm) Combine(goCtx context.Context, ectx *expr.EvalContext, children []Child, own []obligation.Expr) result.DecisionResult {
	winDecision := result.FromEffect(a.win)
	lose := result.Deny
	if a.win == result.Deny {
		lose = result.Permit
	}

	childResults := evalAll(goCtx, ectx, children)

	final := result.FromEffect(lose)
	for _, cr := range childResults {
		if cr.Decision == winDecision {
			final = winDecision
			break
		}
	}

	dr, ind := aggregate(goCtx, ectx, final, childResults, own)
	if ind != nil {
		effect := lose
		if final == winDecision {
			effect = a.win
		}
		return indeterminateResult(result.IndeterminateForEffect(effect), *ind)
	}
	return dr
}
