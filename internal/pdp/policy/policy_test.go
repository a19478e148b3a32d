// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package policy_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xacmlgo/pdp/internal/pdp/combine"
	"github.com/xacmlgo/pdp/internal/pdp/datatype"
	"github.com/xacmlgo/pdp/internal/pdp/expr"
	"github.com/xacmlgo/pdp/internal/pdp/policy"
	"github.com/xacmlgo/pdp/internal/pdp/result"
	"github.com/xacmlgo/pdp/internal/pdp/rule"
	"github.com/xacmlgo/pdp/internal/pdp/target"
)

func boolExpr(b bool) expr.Expression {
	return expr.AttributeValueExpr{Type: datatype.Boolean, Value: b}
}

func TestPolicyEvaluateCombinesRulesWithAlgorithm(t *testing.T) {
	p := policy.Policy{
		ID:     "allow-if-any-rule-permits",
		Target: target.Target{},
		Rules: []rule.Rule{
			{ID: "deny-rule", Effect: result.Deny, Target: target.Target{}, Condition: boolExpr(false)},
			{ID: "permit-rule", Effect: result.Permit, Target: target.Target{}, Condition: boolExpr(true)},
		},
		Algorithm: combine.DenyOverridesRule,
	}
	dr := p.Evaluate(context.Background(), expr.NewEvalContext(nil, nil, nil))
	assert.Equal(t, result.DecisionPermit, dr.Decision)
}

func TestPolicyNotApplicableWhenTargetMisses(t *testing.T) {
	p := policy.Policy{
		ID:     "never-applies",
		Target: target.Target{AnyOfs: []target.AnyOf{{}}},
	}
	dr := p.Evaluate(context.Background(), expr.NewEvalContext(nil, nil, nil))
	assert.Equal(t, result.NotApplicable, dr.Decision)
}

// TestPolicyVariableScopeIsFreshPerEvaluation ensures each call to
// Policy.Evaluate gets its own memoisation scope rather than reusing
// the caller's, so a variable bound in a sibling policy's evaluation
// never leaks in.
func TestPolicyVariableScopeIsFreshPerEvaluation(t *testing.T) {
	calls := 0
	countingExpr := countingExprFn(func() expr.Result {
		calls++
		return expr.ValueResult(datatype.Boolean, true)
	})
	p := policy.Policy{
		ID:     "counts-variable-evals",
		Target: target.Target{},
		VariableDefs: []expr.VariableDefinition{
			{ID: "v", Expression: countingExpr},
		},
		Rules: []rule.Rule{
			{ID: "r1", Effect: result.Permit, Target: target.Target{}, Condition: expr.VariableReference{ID: "v"}},
			{ID: "r2", Effect: result.Permit, Target: target.Target{}, Condition: expr.VariableReference{ID: "v"}},
		},
		Algorithm: combine.DenyOverridesRule,
	}
	outer := expr.NewEvalContext(nil, nil, nil)
	p.Evaluate(context.Background(), outer)
	assert.Equal(t, 1, calls, "variable must be memoised within one policy evaluation")

	p.Evaluate(context.Background(), outer)
	assert.Equal(t, 2, calls, "a new Evaluate call must get a fresh variable scope")
}

type countingExprFn func() expr.Result

func (f countingExprFn) Eval(context.Context, *expr.EvalContext) expr.Result { return f() }

func TestPolicySetEvaluateCombinesChildren(t *testing.T) {
	inner := policy.Policy{
		ID:        "inner-permit",
		Target:    target.Target{},
		Algorithm: combine.DenyOverridesRule,
		Rules: []rule.Rule{
			{ID: "r", Effect: result.Permit, Target: target.Target{}},
		},
	}
	ps := policy.PolicySet{
		ID:        "set",
		Target:    target.Target{},
		Children:  []combine.Child{inner},
		Algorithm: combine.PermitOverrides,
	}
	dr := ps.Evaluate(context.Background(), expr.NewEvalContext(nil, nil, nil))
	assert.Equal(t, result.DecisionPermit, dr.Decision)
}

func TestPolicySetMatchedChildrenFiltersByTarget(t *testing.T) {
	matches := policy.Policy{ID: "matches", Target: target.Target{}}
	noMatch := policy.Policy{ID: "no-match", Target: target.Target{AnyOfs: []target.AnyOf{{}}}}
	ps := policy.PolicySet{
		ID:       "set",
		Target:   target.Target{},
		Children: []combine.Child{matches, noMatch},
	}
	got := ps.MatchedChildren(context.Background(), expr.NewEvalContext(nil, nil, nil))
	require.Len(t, got, 1)
	assert.Equal(t, "matches", got[0].(policy.Policy).ID)
}

// stubProvider implements policy.Provider for reference-resolution tests.
type stubProvider struct {
	child combine.Child
	err   error
}

func (s stubProvider) FindByReference(context.Context, string, policy.VersionConstraint, policy.RefType) (combine.Child, error) {
	return s.child, s.err
}

func TestReferenceResolvesAndEvaluates(t *testing.T) {
	referenced := policy.Policy{ID: "referenced", Target: target.Target{}, Algorithm: combine.DenyOverridesRule,
		Rules: []rule.Rule{{ID: "r", Effect: result.Permit, Target: target.Target{}}}}
	ref := policy.Reference{ID: "referenced", Provider: stubProvider{child: referenced}}
	dr := ref.Evaluate(context.Background(), expr.NewEvalContext(nil, nil, nil))
	assert.Equal(t, result.DecisionPermit, dr.Decision)
}

func TestReferenceUnresolvableYieldsProcessingIndeterminate(t *testing.T) {
	ref := policy.Reference{ID: "missing", Provider: stubProvider{err: errors.New("not found")}}
	dr := ref.Evaluate(context.Background(), expr.NewEvalContext(nil, nil, nil))
	assert.Equal(t, result.IndeterminateDP, dr.Decision)
	assert.Equal(t, result.StatusProcessingError, dr.Status.Code)
}

func TestResolveVersionExact(t *testing.T) {
	v, err := policy.ResolveVersion(policy.VersionConstraint{Kind: policy.ConstraintExact, Version: "1.2.0"},
		[]string{"1.0.0", "1.2.0", "2.0.0"})
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", v)
}

func TestResolveVersionEarliestPicksFirstAtOrAboveFloor(t *testing.T) {
	v, err := policy.ResolveVersion(policy.VersionConstraint{Kind: policy.ConstraintEarliest, Version: "1.1.0"},
		[]string{"1.0.0", "1.2.0", "2.0.0"})
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", v)
}

func TestResolveVersionLatestPicksLastAtOrBelowCeiling(t *testing.T) {
	v, err := policy.ResolveVersion(policy.VersionConstraint{Kind: policy.ConstraintLatest, Version: "1.9.0"},
		[]string{"1.0.0", "1.2.0", "2.0.0"})
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", v)
}

func TestResolveVersionNoMatchIsError(t *testing.T) {
	_, err := policy.ResolveVersion(policy.VersionConstraint{Kind: policy.ConstraintExact, Version: "9.9.9"},
		[]string{"1.0.0"})
	assert.Error(t, err)
}
