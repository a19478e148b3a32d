// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

// Package root implements the Root evaluator of spec.md §4.I: the
// engine's single entry point, which merges request and PDP-issued
// attributes, builds a fresh AttributeContext, invokes the root
// policy/policy-set, and optionally reports which policies matched
// and which attributes were consulted.
package root

import (
	"context"

	"github.com/xacmlgo/pdp/internal/pdp/combine"
	pdpcontext "github.com/xacmlgo/pdp/internal/pdp/context"
	"github.com/xacmlgo/pdp/internal/pdp/expr"
	"github.com/xacmlgo/pdp/internal/pdp/result"
)

// Well-known resource-scope attribute, per the XACML 2.0 Hierarchical
// Resource Profile referenced by spec §6.
const (
	ResourceScopeAttrID    = "urn:oasis:names:tc:xacml:2.0:resource:scope"
	ResourceScopeImmediate = "Immediate"
)

// Pdp is the engine's constructed instance: a root policy/policy-set,
// an attribute provider chain, and the flags spec §6 names.
type Pdp struct {
	Root             combine.Child
	Providers        []pdpcontext.AttributeProvider
	Env              pdpcontext.EnvironmentProvider
	Selectors        expr.SelectorResolver
	OverridesRequest bool // spec §4.B: whether PDP-issued attrs win over request-supplied ones
	ContextOptions   []pdpcontext.Option
}

// EvalOptions controls what extra detail Evaluate populates on the
// DecisionResult, per spec §4.I step 4.
type EvalOptions struct {
	ReturnPolicyIdentifiers bool
	ReturnUsedAttributes    bool
}

// Evaluate implements spec §4.I's four-step procedure for one
// individual decision request. pdpIssuedEnvAttrs are environment
// attributes the PDP itself supplies (e.g. current-dateTime pinned by
// the caller, or deployment-wide constants) merged per spec §4.B.
func (p Pdp) Evaluate(goCtx context.Context, req pdpcontext.Request, pdpIssuedEnvAttrs []pdpcontext.AttributeValue, opts EvalOptions) result.DecisionResult {
	if scope, ok := nonImmediateScope(req); ok {
		return result.Indeterminate(result.IndeterminateDP, result.Processing(
			"resource-scope "+scope+" is not supported; the caller must expand multi-resource requests before invoking the engine"))
	}

	attrs := pdpcontext.BuildContext(req, pdpIssuedEnvAttrs, p.OverridesRequest, p.Providers, p.Env, p.ContextOptions...)
	ectx := expr.NewEvalContext(attrs, p.Selectors, nil)

	dr := p.Root.Evaluate(goCtx, ectx)

	if opts.ReturnUsedAttributes {
		dr.AttributesConsulted = attrs.Consulted()
	}
	if opts.ReturnPolicyIdentifiers {
		dr.PolicyIdentifiers = matchedPolicyIdentifiers(goCtx, ectx, p.Root)
	}
	return dr
}

// nonImmediateScope reports the first non-Immediate resource-scope
// value found in req, per SPEC_FULL.md's open-question decision: a
// caller that hands this engine Children/Descendants scope (rather
// than pre-expanding it, as spec §1 requires) gets an explicit
// processing-error Indeterminate instead of a silently-wrong Immediate
// evaluation.
func nonImmediateScope(req pdpcontext.Request) (string, bool) {
	for _, av := range req.Attributes {
		if av.Category != pdpcontext.CategoryResource || av.AttributeID != ResourceScopeAttrID {
			continue
		}
		for _, v := range av.Values {
			if s, ok := v.(string); ok && s != ResourceScopeImmediate {
				return s, true
			}
		}
	}
	return "", false
}

// identifiable is implemented by policy.Policy/PolicySet so
// matchedPolicyIdentifiers can walk the tree without package policy
// importing package root (which would cycle, since root also needs
// policy's concrete types to build Pdp.Root in practice — callers
// construct Pdp.Root themselves, so no import is actually needed here;
// this interface just keeps the walk generic over whatever implements
// it).
type identifiable interface {
	Identifier() string
}

type hasChildren interface {
	MatchedChildren(goCtx context.Context, ectx *expr.EvalContext) []combine.Child
}

// matchedPolicyIdentifiers walks the evaluated tree collecting the
// identifier of every node whose target matched, best-effort: nodes
// not implementing identifiable/hasChildren are silently skipped
// rather than failing the whole decision, since this list is
// informational (spec §4.I step 4, "optionally").
func matchedPolicyIdentifiers(goCtx context.Context, ectx *expr.EvalContext, node combine.Child) []string {
	var out []string
	var walk func(n combine.Child)
	walk = func(n combine.Child) {
		if idn, ok := n.(identifiable); ok {
			out = append(out, idn.Identifier())
		}
		if hc, ok := n.(hasChildren); ok {
			for _, c := range hc.MatchedChildren(goCtx, ectx) {
				walk(c)
			}
		}
	}
	walk(node)
	return out
}
