// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

// Package rule implements the Rule evaluator of spec.md §4.F: target,
// then condition, then obligation/advice expression evaluation, each
// step capable of lifting the outcome to an effect-flavoured
// Indeterminate decision.
package rule

import (
	"context"

	"github.com/xacmlgo/pdp/internal/pdp/expr"
	"github.com/xacmlgo/pdp/internal/pdp/obligation"
	"github.com/xacmlgo/pdp/internal/pdp/result"
	"github.com/xacmlgo/pdp/internal/pdp/target"
)

// Rule is one XACML Rule: a Target, an optional Condition (nil means
// "always true" per spec §4.F step 2), an Effect, and the
// obligation/advice expressions gated on that effect. Exprs holds both
// Obligation and Advice templates; obligation.Expr.Advice tells them
// apart.
type Rule struct {
	ID        string
	Effect    result.Effect
	Target    target.Target
	Condition expr.Expression
	Exprs     []obligation.Expr
}

// EvaluateTarget matches only the rule's Target, for callers (package
// combine's only-one-applicable pre-pass operates on policies, not
// rules, but rules expose the same shape for uniformity and testing).
func (r Rule) EvaluateTarget(goCtx context.Context, ectx *expr.EvalContext) target.MatchResult {
	return r.Target.Eval(goCtx, ectx)
}

// Evaluate implements spec §4.F's four-step procedure.
func (r Rule) Evaluate(goCtx context.Context, ectx *expr.EvalContext) result.DecisionResult {
	tgt := r.Target.Eval(goCtx, ectx)
	switch tgt.Outcome {
	case target.NoMatch:
		return result.NotApplicableResult()
	case target.Indeterminate:
		return result.Indeterminate(result.IndeterminateForEffect(r.Effect), tgt.Status)
	}

	if r.Condition != nil {
		condRes := r.Condition.Eval(goCtx, ectx)
		if condRes.IsIndeterminate() {
			return result.Indeterminate(result.IndeterminateForEffect(r.Effect), condRes.Status)
		}
		if condRes.Kind != expr.KindValue || condRes.Value.Value != true {
			return result.NotApplicableResult()
		}
	}

	obligations, advice, ind := obligation.Evaluate(goCtx, ectx, r.Effect, r.Exprs)
	if ind != nil {
		return result.Indeterminate(result.IndeterminateForEffect(r.Effect), *ind)
	}

	return result.DecisionResult{
		Decision:   result.FromEffect(r.Effect),
		Status:     result.Status{Code: result.StatusOK},
		Obligations: obligations,
		Advice:      advice,
	}
}
