// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

// Package function implements the XACML 3.0 standard function library
// (spec.md §4.D): equality, comparison, arithmetic, string, date/time,
// logical, bag, set, and higher-order functions, each registered under
// its XACML URI. Grounded on the teacher's dsl/evaluator.go dispatch
// switch, generalized into a registry of independent Function values.
package function

import "github.com/xacmlgo/pdp/internal/pdp/expr"

// Registry maps a function URI to its implementation.
type Registry struct {
	byID map[string]expr.Function
}

func (r *Registry) register(f expr.Function) {
	if r.byID == nil {
		r.byID = make(map[string]expr.Function)
	}
	r.byID[f.ID()] = f
}

// Lookup returns the Function for id, or false if unregistered.
func (r *Registry) Lookup(id string) (expr.Function, bool) {
	f, ok := r.byID[id]
	return f, ok
}

// Standard builds the Registry of every required XACML standard
// function (spec §4.D). Constructed fresh rather than as a package
// global so callers may layer deployment-specific extension functions
// on top without touching shared state (spec §5: no global mutable state).
func Standard() *Registry {
	r := &Registry{}
	registerEquality(r)
	registerComparison(r)
	registerArithmetic(r)
	registerString(r)
	registerDateTime(r)
	registerLogical(r)
	registerBag(r)
	registerSet(r)
	registerHigherOrder(r)
	registerExtensions(r)
	return r
}
