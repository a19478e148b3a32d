// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package pdpcontext

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"

	"github.com/xacmlgo/pdp/internal/pdp/datatype"
	"github.com/xacmlgo/pdp/internal/pdp/result"
)

// issuedValues is one (issuer, values) pair contributed by a request
// Attribute or a provider result, all sharing one (category, attributeID,
// datatype).
type issuedValues struct {
	issuer string // "" means unissued
	values []any
}

// AttrKey identifies one (category, attributeID, datatype) coordinate
// in the store.
type AttrKey struct {
	Category    string
	AttributeID string
	Type        datatype.ID
}

// GetResult is the outcome of an AttributeContext.Get call: exactly one
// of Bag (when Status.Code == result.StatusOK) or Status is meaningful.
type GetResult struct {
	Bag    datatype.Bag
	Status result.Status
}

// AttributeContext is the per-request attribute store of spec §4.B. It
// is not safe for concurrent use by multiple goroutines evaluating the
// SAME request; independent requests must each get their own context.
type AttributeContext struct {
	mu    sync.Mutex
	store map[AttrKey][]issuedValues

	providers []AttributeProvider
	clock     *clock

	consulted   map[string]struct{} // attributeIDs actually looked up
	retryPolicy retry.Backoff
}

// Option configures an AttributeContext at construction.
type Option func(*AttributeContext)

// WithRetry sets the backoff policy wrapping each AttributeProvider
// invocation. Providers may perform blocking I/O (spec §5); a
// bounded retry absorbs transient failures without the engine
// introducing its own scheduler.
func WithRetry(b retry.Backoff) Option {
	return func(c *AttributeContext) { c.retryPolicy = b }
}

// New builds an AttributeContext. providers are consulted, in order,
// for anything not seeded directly via Seed.
func New(providers []AttributeProvider, env EnvironmentProvider, opts ...Option) *AttributeContext {
	c := &AttributeContext{
		store:       make(map[AttrKey][]issuedValues),
		providers:   providers,
		clock:       newClock(env),
		consulted:   make(map[string]struct{}),
		retryPolicy: retry.WithMaxRetries(0, retry.NewConstant(1)), // no retry by default
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Now returns the request's frozen clock instant.
func (c *AttributeContext) Now() datatype.XSDateTime { return c.clock.now() }

// Seed inserts a request-supplied attribute value set directly into the
// store, bypassing the provider chain. Used by callers building the
// context from a parsed request and when merging PDP-issued
// environment attributes (spec §4.B's non-destructive merge).
func (c *AttributeContext) Seed(category, attributeID string, dt datatype.ID, issuer string, values []any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := AttrKey{category, attributeID, dt}
	c.store[k] = append(c.store[k], issuedValues{issuer: issuer, values: values})
}

// Get implements spec §4.B's get(category, attributeId, datatype, issuer?).
// mustBePresent lifts an empty result to a missing-attribute status.
func (c *AttributeContext) Get(ctx context.Context, category, attributeID string, dt datatype.ID, issuer string, mustBePresent bool) GetResult {
	c.mu.Lock()
	c.consulted[attributeID] = struct{}{}
	k := AttrKey{category, attributeID, dt}
	entries, found := c.store[k]
	c.mu.Unlock()

	if !found {
		resolved, status, ok := c.resolveFromProviders(ctx, category, attributeID, dt, issuer)
		if !ok {
			return GetResult{Status: status}
		}
		entries = resolved
	}

	merged := mergeIssued(entries, issuer)
	bag := datatype.Bag{Type: dt, Values: merged}
	if mustBePresent && bag.Empty() {
		return GetResult{Status: result.Missing(attributeID)}
	}
	return GetResult{Bag: bag, Status: result.Status{Code: result.StatusOK}}
}

func mergeIssued(entries []issuedValues, issuer string) []any {
	var out []any
	for _, e := range entries {
		if issuer != "" && e.issuer != "" && e.issuer != issuer {
			continue
		}
		out = append(out, e.values...)
	}
	return out
}

// resolveFromProviders asks each registered provider, in order, for the
// first one declaring support; its result is cached into the store so
// later lookups within this request are deterministic (spec §4.B.2).
// ok is false only when resolution failed outright (syntax/processing
// error); "no provider supports it" is a successful empty-bag result.
func (c *AttributeContext) resolveFromProviders(ctx context.Context, category, attributeID string, dt datatype.ID, issuer string) (entries []issuedValues, status result.Status, ok bool) {
	for _, p := range c.providers {
		if !safeSupports(p, category, attributeID, dt) {
			continue
		}
		bag, err := c.invokeWithRetry(ctx, p, category, attributeID, dt, issuer)
		k := AttrKey{category, attributeID, dt}
		if err != nil {
			var syn *datatype.SyntaxError
			st := result.Processing(err.Error())
			if errors.As(err, &syn) {
				st = result.Syntax(err.Error())
			}
			return nil, st, false
		}
		entries = []issuedValues{{issuer: issuer, values: bag.Values}}
		c.mu.Lock()
		c.store[k] = entries
		c.mu.Unlock()
		return entries, result.Status{Code: result.StatusOK}, true
	}
	// No provider supports this attribute: the empty bag, per §4.B.3.
	return nil, result.Status{Code: result.StatusOK}, true
}

// invokeWithRetry wraps a provider call with bounded backoff and
// recovers a panicking provider into an error, matching the teacher's
// attribute.Resolver.safeResolve.
func (c *AttributeContext) invokeWithRetry(ctx context.Context, p AttributeProvider, category, attributeID string, dt datatype.ID, issuer string) (bag datatype.Bag, err error) {
	retryErr := retry.Do(ctx, c.retryPolicy, func(ctx context.Context) error {
		b, callErr := safeFind(ctx, p, category, attributeID, dt, issuer)
		if callErr != nil {
			bag = datatype.Bag{Type: dt}
			return retry.RetryableError(callErr)
		}
		bag = b
		return nil
	})
	if retryErr != nil {
		return datatype.Bag{}, retryErr
	}
	return bag, nil
}

func safeSupports(p AttributeProvider, category, attributeID string, dt datatype.ID) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return p.Supports(category, attributeID, dt)
}

func safeFind(ctx context.Context, p AttributeProvider, category, attributeID string, dt datatype.ID, issuer string) (bag datatype.Bag, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = oops.Code("PROVIDER_PANIC").Errorf("attribute provider panicked: %v", r)
		}
	}()
	return p.Find(ctx, category, attributeID, dt, issuer)
}

// Consulted returns, in sorted order, every attributeID actually looked
// up during this request — used by the root evaluator to populate
// DecisionResult.AttributesConsulted (spec §4.I step 4).
func (c *AttributeContext) Consulted() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.consulted))
	for id := range c.consulted {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
