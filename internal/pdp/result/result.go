// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

// Package result holds the shared vocabulary every evaluation layer
// (expression, target, rule, combining, policy, root) produces and
// consumes: Effect, Decision, Status and the Indeterminate flavours,
// obligations and advice. Keeping these in one leaf package avoids an
// import cycle between expr, target, rule and combine.
package result

import "fmt"

// Effect is the decision a fully-matched rule emits.
type Effect int

const (
	Deny Effect = iota
	Permit
)

func (e Effect) String() string {
	if e == Permit {
		return "Permit"
	}
	return "Deny"
}

// Decision is the outcome of evaluating a rule, policy, policy set or
// the whole tree.
type Decision int

const (
	NotApplicable Decision = iota
	DecisionDeny
	DecisionPermit
	IndeterminateD
	IndeterminateP
	IndeterminateDP
)

func (d Decision) String() string {
	switch d {
	case NotApplicable:
		return "NotApplicable"
	case DecisionDeny:
		return "Deny"
	case DecisionPermit:
		return "Permit"
	case IndeterminateD:
		return "Indeterminate{D}"
	case IndeterminateP:
		return "Indeterminate{P}"
	case IndeterminateDP:
		return "Indeterminate{DP}"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// Indeterminate reports whether d is any of the three Indeterminate flavours.
func (d Decision) Indeterminate() bool {
	return d == IndeterminateD || d == IndeterminateP || d == IndeterminateDP
}

// FromEffect converts a rule/policy Effect to its corresponding definite Decision.
func FromEffect(e Effect) Decision {
	if e == Permit {
		return DecisionPermit
	}
	return DecisionDeny
}

// IndeterminateForEffect lifts an Indeterminate outcome encountered while
// evaluating a node whose effect is e to the effect-flavoured variant,
// per spec §4.F step 1/2.
func IndeterminateForEffect(e Effect) Decision {
	if e == Permit {
		return IndeterminateP
	}
	return IndeterminateD
}

// StatusCode is one of the four well-known XACML status code URIs.
type StatusCode string

const (
	StatusOK               StatusCode = "urn:oasis:names:tc:xacml:1.0:status:ok"
	StatusMissingAttribute StatusCode = "urn:oasis:names:tc:xacml:1.0:status:missing-attribute"
	StatusSyntaxError      StatusCode = "urn:oasis:names:tc:xacml:1.0:status:syntax-error"
	StatusProcessingError  StatusCode = "urn:oasis:names:tc:xacml:1.0:status:processing-error"
)

// Status carries the status code/message pair attached to a DecisionResult.
type Status struct {
	Code    StatusCode
	Message string
	Detail  any
}

func (s Status) String() string {
	if s.Message == "" {
		return string(s.Code)
	}
	return fmt.Sprintf("%s: %s", s.Code, s.Message)
}

// Missing builds a missing-attribute status, per spec §4.B.4.
func Missing(attributeID string) Status {
	return Status{Code: StatusMissingAttribute, Message: fmt.Sprintf("missing required attribute %q", attributeID)}
}

// Syntax builds a syntax-error status, per spec §4.A.
func Syntax(msg string) Status {
	return Status{Code: StatusSyntaxError, Message: msg}
}

// Processing builds a processing-error status, per spec §7.
func Processing(msg string) Status {
	return Status{Code: StatusProcessingError, Message: msg}
}

// AttributeAssignment is one id/value pair inside an Obligation or Advice.
type AttributeAssignment struct {
	AttributeID string
	Category    string
	DataType    string
	Value       any
}

// Obligation is an evaluated obligation: its fulfilOn effect plus the
// attribute assignments whose expressions have already been evaluated.
// Package obligation's Evaluate produces Obligation and Advice values.
type Obligation struct {
	ID          string
	FulfillOn   Effect
	Assignments []AttributeAssignment
}

type Advice struct {
	ID          string
	AppliesTo   Effect
	Assignments []AttributeAssignment
}

// DecisionResult is the final output of evaluating a rule, policy,
// policy set, or the whole tree.
type DecisionResult struct {
	Decision   Decision
	Status     Status
	Obligations []Obligation
	Advice      []Advice

	// PolicyIdentifiers and AttributesConsulted are populated only by
	// the root evaluator when requested, per spec §4.I step 4.
	PolicyIdentifiers  []string
	AttributesConsulted []string
}

// Indeterminate builds a bare Indeterminate DecisionResult carrying status.
func Indeterminate(flavour Decision, status Status) DecisionResult {
	return DecisionResult{Decision: flavour, Status: status}
}

// NotApplicableResult is the canonical empty NotApplicable outcome.
func NotApplicableResult() DecisionResult {
	return DecisionResult{Decision: NotApplicable, Status: Status{Code: StatusOK}}
}
