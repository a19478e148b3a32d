// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package root_test

import (
	"context"
	"math/big"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/xacmlgo/pdp/internal/pdp/combine"
	pdpcontext "github.com/xacmlgo/pdp/internal/pdp/context"
	"github.com/xacmlgo/pdp/internal/pdp/datatype"
	"github.com/xacmlgo/pdp/internal/pdp/expr"
	"github.com/xacmlgo/pdp/internal/pdp/expr/function"
	"github.com/xacmlgo/pdp/internal/pdp/policy"
	"github.com/xacmlgo/pdp/internal/pdp/result"
	"github.com/xacmlgo/pdp/internal/pdp/root"
	"github.com/xacmlgo/pdp/internal/pdp/rule"
	"github.com/xacmlgo/pdp/internal/pdp/target"
)

func boolExprLit(b bool) expr.Expression {
	return expr.AttributeValueExpr{Type: datatype.Boolean, Value: b}
}

// countingProvider answers any lookup with an empty bag, but records how
// many times it was invoked, for asserting short-circuit behavior.
type countingProvider struct {
	category, attributeID string
	calls                 int
}

func (p *countingProvider) Supports(category, attributeID string, _ datatype.ID) bool {
	return category == p.category && attributeID == p.attributeID
}

func (p *countingProvider) Find(context.Context, string, string, datatype.ID, string) (datatype.Bag, error) {
	p.calls++
	return datatype.Bag{Type: datatype.Boolean}, nil
}

var _ = Describe("Root evaluator", func() {
	var goCtx context.Context

	BeforeEach(func() {
		goCtx = context.Background()
	})

	Context("a single permitting leaf rule", func() {
		It("returns Permit", func() {
			p := policy.Policy{
				ID:        "leaf",
				Target:    target.Target{},
				Algorithm: combine.DenyOverridesRule,
				Rules: []rule.Rule{
					{ID: "allow", Effect: result.Permit, Target: target.Target{}},
				},
			}
			pdp := root.Pdp{Root: p}
			dr := pdp.Evaluate(goCtx, pdpcontext.Request{}, nil, root.EvalOptions{})
			Expect(dr.Decision).To(Equal(result.DecisionPermit))
		})
	})

	Context("deny-overrides combining two rules", func() {
		It("returns Deny when any rule denies", func() {
			p := policy.Policy{
				ID:        "mixed",
				Target:    target.Target{},
				Algorithm: combine.DenyOverridesRule,
				Rules: []rule.Rule{
					{ID: "allow", Effect: result.Permit, Target: target.Target{}},
					{ID: "block", Effect: result.Deny, Target: target.Target{}},
				},
			}
			pdp := root.Pdp{Root: p}
			dr := pdp.Evaluate(goCtx, pdpcontext.Request{}, nil, root.EvalOptions{})
			Expect(dr.Decision).To(Equal(result.DecisionDeny))
		})
	})

	Context("only-one-applicable with two applicable policies", func() {
		It("returns a processing-error Indeterminate", func() {
			ps := policy.PolicySet{
				ID:        "set",
				Target:    target.Target{},
				Algorithm: combine.OnlyOneApplicable,
				Children: []combine.Child{
					policy.Policy{ID: "p1", Target: target.Target{}, Algorithm: combine.DenyOverridesRule,
						Rules: []rule.Rule{{ID: "r1", Effect: result.Permit, Target: target.Target{}}}},
					policy.Policy{ID: "p2", Target: target.Target{}, Algorithm: combine.DenyOverridesRule,
						Rules: []rule.Rule{{ID: "r2", Effect: result.Deny, Target: target.Target{}}}},
				},
			}
			pdp := root.Pdp{Root: ps}
			dr := pdp.Evaluate(goCtx, pdpcontext.Request{}, nil, root.EvalOptions{})
			Expect(dr.Decision).To(Equal(result.IndeterminateDP))
			Expect(dr.Status.Code).To(Equal(result.StatusProcessingError))
			Expect(dr.Status.Message).To(ContainSubstring("more than one"))
		})
	})

	Context("a missing mustBePresent attribute", func() {
		It("propagates as an effect-flavoured Indeterminate carrying missing-attribute status", func() {
			p := policy.Policy{
				ID:        "needs-role",
				Target:    target.Target{},
				Algorithm: combine.DenyOverridesRule,
				Rules: []rule.Rule{
					{
						ID:     "allow-if-admin",
						Effect: result.Permit,
						Target: target.Target{},
						Condition: expr.Designator{
							Category:      pdpcontext.CategorySubject,
							AttributeID:   "urn:example:role",
							Type:          datatype.Boolean,
							MustBePresent: true,
						},
					},
				},
			}
			pdp := root.Pdp{Root: p}
			dr := pdp.Evaluate(goCtx, pdpcontext.Request{}, nil, root.EvalOptions{})
			Expect(dr.Decision).To(Equal(result.IndeterminateP))
			Expect(dr.Status.Code).To(Equal(result.StatusMissingAttribute))
		})
	})

	Context("n-of short-circuit", func() {
		It("never consults a provider for an argument beyond the satisfying threshold", func() {
			provider := &countingProvider{category: pdpcontext.CategoryResource, attributeID: "urn:example:flag4"}
			nOf, ok := function.Standard().Lookup("urn:oasis:names:tc:xacml:1.0:function:n-of")
			Expect(ok).To(BeTrue())

			p := policy.Policy{
				ID:        "n-of-leaf",
				Target:    target.Target{},
				Algorithm: combine.DenyOverridesRule,
				Rules: []rule.Rule{
					{
						ID:     "allow",
						Effect: result.Permit,
						Target: target.Target{},
						Condition: expr.Apply{
							Function: nOf,
							Args: []expr.Expression{
								expr.AttributeValueExpr{Type: datatype.Integer, Value: big.NewInt(2)},
								boolExprLit(true),
								boolExprLit(false),
								boolExprLit(true),
								expr.Designator{
									Category:    pdpcontext.CategoryResource,
									AttributeID: "urn:example:flag4",
									Type:        datatype.Boolean,
								},
							},
						},
					},
				},
			}
			pdp := root.Pdp{Root: p, Providers: []pdpcontext.AttributeProvider{provider}}
			dr := pdp.Evaluate(goCtx, pdpcontext.Request{}, nil, root.EvalOptions{})
			Expect(dr.Decision).To(Equal(result.DecisionPermit))
			Expect(provider.calls).To(Equal(0))
		})
	})

	Context("policy identifiers and used attributes", func() {
		It("reports matched policy identifiers and consulted attribute ids when requested", func() {
			p := policy.Policy{
				ID:        "leaf",
				Target:    target.Target{},
				Algorithm: combine.DenyOverridesRule,
				Rules: []rule.Rule{
					{
						ID:     "allow",
						Effect: result.Permit,
						Target: target.Target{},
						Condition: expr.Designator{
							Category:    pdpcontext.CategorySubject,
							AttributeID: "urn:example:role",
							Type:        datatype.Boolean,
						},
					},
				},
			}
			req := pdpcontext.Request{Attributes: []pdpcontext.AttributeValue{
				{Category: pdpcontext.CategorySubject, AttributeID: "urn:example:role", Type: datatype.Boolean, Values: []any{true}},
			}}
			pdp := root.Pdp{Root: p}
			dr := pdp.Evaluate(goCtx, req, nil, root.EvalOptions{ReturnPolicyIdentifiers: true, ReturnUsedAttributes: true})
			Expect(dr.Decision).To(Equal(result.DecisionPermit))
			Expect(dr.PolicyIdentifiers).To(ContainElement("leaf"))
			Expect(dr.AttributesConsulted).To(ContainElement("urn:example:role"))
		})
	})
})

