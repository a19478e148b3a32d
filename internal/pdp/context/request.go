// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package pdpcontext

import "github.com/xacmlgo/pdp/internal/pdp/datatype"

// AttributeValue is one value supplied in a request Attribute, prior to
// being grouped into the context's per-(category,attributeID,datatype) store.
type AttributeValue struct {
	Category    string
	AttributeID string
	Type        datatype.ID
	Issuer      string // "" if none
	Values      []any  // already-parsed canonical values, one bag's worth
}

// Request is the parsed in-memory decision request the root evaluator
// receives; marshalling it from XML/JSON is explicitly out of scope
// (spec §1) and is the caller's concern.
type Request struct {
	Attributes []AttributeValue
}

func attrKeyOf(av AttributeValue) AttrKey {
	return AttrKey{av.Category, av.AttributeID, av.Type}
}

// BuildContext seeds a fresh AttributeContext from req, then
// non-destructively merges pdpEnv on top per spec §4.B's PDP-issued
// environment attribute rule. pdpEnv itself is never mutated (it is
// read-only input here, cloning is the caller's responsibility if it
// intends to reuse the slice across requests, per spec §9).
//
// overridesRequest=false (default): request-supplied values for a given
// (category, attributeID, datatype) win over the PDP-issued ones.
// overridesRequest=true: PDP-issued values always win.
func BuildContext(req Request, pdpEnv []AttributeValue, overridesRequest bool, providers []AttributeProvider, env EnvironmentProvider, opts ...Option) *AttributeContext {
	ctx := New(providers, env, opts...)

	reqKeys := make(map[AttrKey]bool, len(req.Attributes))
	for _, av := range req.Attributes {
		reqKeys[attrKeyOf(av)] = true
	}

	if overridesRequest {
		seedUnlessKey(ctx, req.Attributes, nil)
		// pdpEnv always wins: seed it last, after clearing any
		// request-seeded entries at the same keys.
		envKeys := make(map[AttrKey]bool, len(pdpEnv))
		for _, av := range pdpEnv {
			envKeys[attrKeyOf(av)] = true
		}
		ctx.clearKeys(envKeys)
		seedUnlessKey(ctx, pdpEnv, nil)
	} else {
		// Request wins: seed pdpEnv only where the request doesn't
		// also supply that key, then seed the request in full.
		seedUnlessKey(ctx, pdpEnv, reqKeys)
		seedUnlessKey(ctx, req.Attributes, nil)
	}
	return ctx
}

// seedUnlessKey seeds every av in avs, skipping any whose key is present
// in skip (nil skip means seed everything).
func seedUnlessKey(ctx *AttributeContext, avs []AttributeValue, skip map[AttrKey]bool) {
	for _, av := range avs {
		if skip != nil && skip[attrKeyOf(av)] {
			continue
		}
		ctx.Seed(av.Category, av.AttributeID, av.Type, av.Issuer, av.Values)
	}
}

func (c *AttributeContext) clearKeys(keys map[AttrKey]bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range keys {
		delete(c.store, k)
	}
}
