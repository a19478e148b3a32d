// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package expr

import (
	"context"
	"sync"

	pdpcontext "github.com/xacmlgo/pdp/internal/pdp/context"
)

// EvalContext bundles everything an Expression needs: the attribute
// store, the optional selector resolver, and the enclosing policy's
// variable memoisation scope.
type EvalContext struct {
	Attrs     *pdpcontext.AttributeContext
	Selectors SelectorResolver
	Variables *VariableScope
}

// NewEvalContext builds an EvalContext for one policy's evaluation. A
// fresh VariableScope must be created per policy instance evaluated
// (spec §9: "a small map scoped to one policy evaluation, not a global
// cache").
func NewEvalContext(attrs *pdpcontext.AttributeContext, selectors SelectorResolver, defs []VariableDefinition) *EvalContext {
	return &EvalContext{
		Attrs:     attrs,
		Selectors: selectors,
		Variables: newVariableScope(defs),
	}
}

// VariableScope memoises VariableDefinition results within one policy
// evaluation, per spec §3 invariant 3. Grounded on the general shape
// of per-request caching the teacher uses throughout
// internal/access/policy (resolved-once, cached-for-lifetime).
type VariableScope struct {
	mu      sync.Mutex
	defs    map[string]Expression
	results map[string]Result
	inFlight map[string]bool
}

func newVariableScope(defs []VariableDefinition) *VariableScope {
	s := &VariableScope{
		defs:     make(map[string]Expression, len(defs)),
		results:  make(map[string]Result, len(defs)),
		inFlight: make(map[string]bool),
	}
	for _, d := range defs {
		s.defs[d.ID] = d.Expression
	}
	return s
}

// Resolve returns the memoised result for id, evaluating its
// VariableDefinition on first reference. A variable that references
// itself (directly or transitively) yields Indeterminate{processing-error}
// rather than recursing forever.
func (s *VariableScope) Resolve(goCtx context.Context, ectx *EvalContext, id string) Result {
	s.mu.Lock()
	if r, ok := s.results[id]; ok {
		s.mu.Unlock()
		return r
	}
	if s.inFlight[id] {
		s.mu.Unlock()
		return IndeterminateResult(processingf("circular variable reference: %s", id))
	}
	def, ok := s.defs[id]
	if !ok {
		s.mu.Unlock()
		return IndeterminateResult(processingf("undefined variable: %s", id))
	}
	s.inFlight[id] = true
	s.mu.Unlock()

	r := def.Eval(goCtx, ectx)

	s.mu.Lock()
	delete(s.inFlight, id)
	s.results[id] = r
	s.mu.Unlock()
	return r
}
