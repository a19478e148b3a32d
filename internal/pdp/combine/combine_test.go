// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package combine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xacmlgo/pdp/internal/pdp/combine"
	"github.com/xacmlgo/pdp/internal/pdp/expr"
	"github.com/xacmlgo/pdp/internal/pdp/obligation"
	"github.com/xacmlgo/pdp/internal/pdp/result"
	"github.com/xacmlgo/pdp/internal/pdp/target"
)

// stubChild is a fixed-outcome combine.Child for exercising algorithms
// without needing real rules or policies.
type stubChild struct {
	matchOutcome target.MatchOutcome
	decision     result.DecisionResult
	evaluated    *bool
}

func (s stubChild) EvaluateTarget(context.Context, *expr.EvalContext) target.MatchResult {
	return target.MatchResult{Outcome: s.matchOutcome}
}

func (s stubChild) Evaluate(context.Context, *expr.EvalContext) result.DecisionResult {
	if s.evaluated != nil {
		*s.evaluated = true
	}
	return s.decision
}

func permitChild() stubChild {
	return stubChild{matchOutcome: target.Matched, decision: result.DecisionResult{Decision: result.DecisionPermit}}
}

func denyChild() stubChild {
	return stubChild{matchOutcome: target.Matched, decision: result.DecisionResult{Decision: result.DecisionDeny}}
}

func naChild() stubChild {
	return stubChild{matchOutcome: target.NoMatch, decision: result.NotApplicableResult()}
}

func TestDenyOverridesAnyDenyWins(t *testing.T) {
	children := []combine.Child{permitChild(), denyChild(), permitChild()}
	dr := combine.DenyOverrides.Combine(context.Background(), &expr.EvalContext{}, children, nil)
	assert.Equal(t, result.DecisionDeny, dr.Decision)
}

func TestDenyOverridesAllPermitYieldsPermit(t *testing.T) {
	children := []combine.Child{permitChild(), permitChild()}
	dr := combine.DenyOverrides.Combine(context.Background(), &expr.EvalContext{}, children, nil)
	assert.Equal(t, result.DecisionPermit, dr.Decision)
}

func TestDenyOverridesAllNotApplicableYieldsNotApplicable(t *testing.T) {
	children := []combine.Child{naChild(), naChild()}
	dr := combine.DenyOverrides.Combine(context.Background(), &expr.EvalContext{}, children, nil)
	assert.Equal(t, result.NotApplicable, dr.Decision)
}

func TestDenyOverridesIndeterminateDenyWithPermitForcesIndeterminateDP(t *testing.T) {
	indDeny := stubChild{matchOutcome: target.Indeterminate, decision: result.Indeterminate(result.IndeterminateD, result.Processing("boom"))}
	children := []combine.Child{permitChild(), indDeny}
	dr := combine.DenyOverrides.Combine(context.Background(), &expr.EvalContext{}, children, nil)
	assert.Equal(t, result.IndeterminateDP, dr.Decision)
}

func TestPermitOverridesAnyPermitWins(t *testing.T) {
	children := []combine.Child{denyChild(), permitChild(), denyChild()}
	dr := combine.PermitOverrides.Combine(context.Background(), &expr.EvalContext{}, children, nil)
	assert.Equal(t, result.DecisionPermit, dr.Decision)
}

func TestOrderedVariantsBehaveLikeUnordered(t *testing.T) {
	children := []combine.Child{permitChild(), denyChild()}
	dr := combine.OrderedDenyOverrides.Combine(context.Background(), &expr.EvalContext{}, children, nil)
	assert.Equal(t, result.DecisionDeny, dr.Decision)
}

func TestFirstApplicableStopsAtFirstDecidingChild(t *testing.T) {
	evaluatedThird := false
	children := []combine.Child{
		naChild(),
		denyChild(),
		stubChild{matchOutcome: target.Matched, decision: result.DecisionResult{Decision: result.DecisionPermit}, evaluated: &evaluatedThird},
	}
	dr := combine.FirstApplicable.Combine(context.Background(), &expr.EvalContext{}, children, nil)
	assert.Equal(t, result.DecisionDeny, dr.Decision)
	assert.False(t, evaluatedThird, "first-applicable must not evaluate children after the winner")
}

func TestOnlyOneApplicableZeroApplicable(t *testing.T) {
	children := []combine.Child{naChild(), naChild()}
	dr := combine.OnlyOneApplicable.Combine(context.Background(), &expr.EvalContext{}, children, nil)
	assert.Equal(t, result.NotApplicable, dr.Decision)
}

func TestOnlyOneApplicableExactlyOne(t *testing.T) {
	children := []combine.Child{naChild(), permitChild()}
	dr := combine.OnlyOneApplicable.Combine(context.Background(), &expr.EvalContext{}, children, nil)
	assert.Equal(t, result.DecisionPermit, dr.Decision)
}

func TestOnlyOneApplicableMoreThanOneIsProcessingError(t *testing.T) {
	children := []combine.Child{permitChild(), denyChild()}
	dr := combine.OnlyOneApplicable.Combine(context.Background(), &expr.EvalContext{}, children, nil)
	assert.Equal(t, result.IndeterminateDP, dr.Decision)
	assert.Equal(t, result.StatusProcessingError, dr.Status.Code)
	assert.Contains(t, dr.Status.Message, "more than one")
}

func TestDenyUnlessPermitNeverIndeterminateOrNotApplicable(t *testing.T) {
	indChild := stubChild{matchOutcome: target.Indeterminate, decision: result.Indeterminate(result.IndeterminateDP, result.Processing("boom"))}
	children := []combine.Child{naChild(), indChild}
	dr := combine.DenyUnlessPermit.Combine(context.Background(), &expr.EvalContext{}, children, nil)
	assert.Equal(t, result.DecisionDeny, dr.Decision)

	children = []combine.Child{naChild(), permitChild()}
	dr = combine.DenyUnlessPermit.Combine(context.Background(), &expr.EvalContext{}, children, nil)
	assert.Equal(t, result.DecisionPermit, dr.Decision)
}

func TestPermitUnlessDenyDenyOverridesDefaultPermit(t *testing.T) {
	children := []combine.Child{permitChild(), denyChild()}
	dr := combine.PermitUnlessDeny.Combine(context.Background(), &expr.EvalContext{}, children, nil)
	assert.Equal(t, result.DecisionDeny, dr.Decision)

	children = []combine.Child{naChild()}
	dr = combine.PermitUnlessDeny.Combine(context.Background(), &expr.EvalContext{}, children, nil)
	assert.Equal(t, result.DecisionPermit, dr.Decision)
}

func TestCombineAggregatesObligationsFromWinningChildrenAndOwn(t *testing.T) {
	ownObligation := obligation.Expr{ID: "own", FulfillOn: result.Permit}
	winner := stubChild{matchOutcome: target.Matched, decision: result.DecisionResult{
		Decision:   result.DecisionPermit,
		Obligations: []result.Obligation{{ID: "child-ob"}},
	}}
	children := []combine.Child{winner}
	dr := combine.DenyOverrides.Combine(context.Background(), &expr.EvalContext{}, children, []obligation.Expr{ownObligation})
	require.Equal(t, result.DecisionPermit, dr.Decision)
	var ids []string
	for _, o := range dr.Obligations {
		ids = append(ids, o.ID)
	}
	assert.ElementsMatch(t, []string{"own", "child-ob"}, ids)
}
