// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

// Package policy implements the Policy/PolicySet evaluator of
// spec.md §4.H: target matching, a per-policy variable memoisation
// scope, child combining, and policy-level obligation/advice
// application. Both Policy and PolicySet, and the Reference node of
// reference.go, implement combine.Child so they can nest freely.
package policy

import (
	"context"

	"github.com/xacmlgo/pdp/internal/pdp/combine"
	"github.com/xacmlgo/pdp/internal/pdp/expr"
	"github.com/xacmlgo/pdp/internal/pdp/obligation"
	"github.com/xacmlgo/pdp/internal/pdp/result"
	"github.com/xacmlgo/pdp/internal/pdp/rule"
	"github.com/xacmlgo/pdp/internal/pdp/target"
)

// Policy is one XACML Policy: a Target, a rule-combining Algorithm
// over its Rules, its own variable definitions (scoped to this
// policy's evaluation only), and policy-level obligation/advice.
type Policy struct {
	ID           string
	Version      string
	Target       target.Target
	Rules        []rule.Rule
	Algorithm    combine.Algorithm
	VariableDefs []expr.VariableDefinition
	Exprs        []obligation.Expr
}

func (p Policy) EvaluateTarget(goCtx context.Context, ectx *expr.EvalContext) target.MatchResult {
	return p.Target.Eval(goCtx, ectx)
}

// Identifier reports p.ID for the root evaluator's optional
// PolicyIdentifiers list (spec §4.I step 4).
func (p Policy) Identifier() string { return p.ID }

// Evaluate implements spec §4.H's policy evaluation procedure.
func (p Policy) Evaluate(goCtx context.Context, ectx *expr.EvalContext) result.DecisionResult {
	tgt := p.Target.Eval(goCtx, ectx)
	switch tgt.Outcome {
	case target.NoMatch:
		return result.NotApplicableResult()
	case target.Indeterminate:
		return result.Indeterminate(result.IndeterminateDP, tgt.Status)
	}

	// A fresh variable memoisation scope per spec §4.H step 2 and §5's
	// "memoisation scope... lives exactly as long as the evaluation."
	scoped := expr.NewEvalContext(ectx.Attrs, ectx.Selectors, p.VariableDefs)

	children := make([]combine.Child, len(p.Rules))
	for i, r := range p.Rules {
		children[i] = r
	}
	return p.Algorithm.Combine(goCtx, scoped, children, p.Exprs)
}

// PolicySet is identical to Policy except its children are Policies,
// PolicySets, or unresolved References, combined with a
// policy-combining Algorithm (spec §4.H).
type PolicySet struct {
	ID        string
	Version   string
	Target    target.Target
	Children  []combine.Child
	Algorithm combine.Algorithm
	Exprs     []obligation.Expr
}

func (ps PolicySet) EvaluateTarget(goCtx context.Context, ectx *expr.EvalContext) target.MatchResult {
	return ps.Target.Eval(goCtx, ectx)
}

// Identifier reports ps.ID for the root evaluator's optional
// PolicyIdentifiers list (spec §4.I step 4).
func (ps PolicySet) Identifier() string { return ps.ID }

// MatchedChildren returns the children whose own Target matched,
// letting package root walk only the branches that were actually
// applicable rather than the whole static tree.
func (ps PolicySet) MatchedChildren(goCtx context.Context, ectx *expr.EvalContext) []combine.Child {
	var out []combine.Child
	for _, c := range ps.Children {
		if c.EvaluateTarget(goCtx, ectx).Outcome == target.Matched {
			out = append(out, c)
		}
	}
	return out
}

func (ps PolicySet) Evaluate(goCtx context.Context, ectx *expr.EvalContext) result.DecisionResult {
	tgt := ps.Target.Eval(goCtx, ectx)
	switch tgt.Outcome {
	case target.NoMatch:
		return result.NotApplicableResult()
	case target.Indeterminate:
		return result.Indeterminate(result.IndeterminateDP, tgt.Status)
	}
	return ps.Algorithm.Combine(goCtx, ectx, ps.Children, ps.Exprs)
}
