// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

// Package combine implements the eight XACML 3.0 rule/policy combining
// algorithms of spec.md §4.G as pure functions over a list of children,
// each of which can report its Target-match applicability separately
// from its full decision (needed by only-one-applicable's
// applicability-only pre-pass).
package combine

import (
	"context"

	"github.com/xacmlgo/pdp/internal/pdp/expr"
	"github.com/xacmlgo/pdp/internal/pdp/obligation"
	"github.com/xacmlgo/pdp/internal/pdp/result"
	"github.com/xacmlgo/pdp/internal/pdp/target"
)

// Child is anything a combining algorithm can combine: a Rule, a
// Policy, or a PolicySet. EvaluateTarget lets only-one-applicable
// check applicability without paying for a full evaluation.
type Child interface {
	EvaluateTarget(goCtx context.Context, ectx *expr.EvalContext) target.MatchResult
	Evaluate(goCtx context.Context, ectx *expr.EvalContext) result.DecisionResult
}

// Algorithm is the URI-addressable combining function shape of spec §9's
// "Polymorphism over combining algorithms" design note.
type Algorithm interface {
	ID() string
	Combine(goCtx context.Context, ectx *expr.EvalContext, children []Child, own []obligation.Expr) result.DecisionResult
}

// evalAll evaluates every child in the given order (document order
// is always used here: spec §5 permits unordered algorithms to
// reorder, but requires no behavioral difference in decision value,
// so always evaluating in document order is a valid, simpler choice
// that also satisfies the ordered-* variants outright).
func evalAll(goCtx context.Context, ectx *expr.EvalContext, children []Child) []result.DecisionResult {
	out := make([]result.DecisionResult, len(children))
	for i, c := range children {
		out[i] = c.Evaluate(goCtx, ectx)
	}
	return out
}

// aggregate implements spec §4.G's obligation/advice aggregation: once
// final is known, walk the already-evaluated children in order and
// concatenate the obligations/advice of every child whose own decision
// equals final, then prepend the combining node's own obligations
// (whose fulfil-on matches final's effect). NotApplicable/Indeterminate
// finals carry no effect, so the node's own expressions never fire.
func aggregate(goCtx context.Context, ectx *expr.EvalContext, final result.Decision, childResults []result.DecisionResult, own []obligation.Expr) (result.DecisionResult, *result.Status) {
	dr := result.DecisionResult{Decision: final, Status: result.Status{Code: result.StatusOK}}
	if final != result.DecisionDeny && final != result.DecisionPermit {
		return dr, nil
	}
	effect := result.Deny
	if final == result.DecisionPermit {
		effect = result.Permit
	}

	ownObligations, ownAdvice, ind := obligation.Evaluate(goCtx, ectx, effect, own)
	if ind != nil {
		return result.DecisionResult{}, ind
	}
	dr.Obligations = append(dr.Obligations, ownObligations...)
	dr.Advice = append(dr.Advice, ownAdvice...)

	for _, cr := range childResults {
		if cr.Decision != final {
			continue
		}
		dr.Obligations = append(dr.Obligations, cr.Obligations...)
		dr.Advice = append(dr.Advice, cr.Advice...)
	}
	return dr, nil
}

func indeterminateResult(flavour result.Decision, status result.Status) result.DecisionResult {
	return result.Indeterminate(flavour, status)
}
