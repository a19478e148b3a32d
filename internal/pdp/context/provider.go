// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

// Package context implements the per-request attribute store described
// in spec.md §4.B: a category/attributeId-keyed map of bags, backed by
// a provider chain for attributes not present in the request, and a
// clock frozen on first observation.
package pdpcontext

import (
	"context"

	"github.com/xacmlgo/pdp/internal/pdp/datatype"
)

// AttributeProvider resolves attribute values not supplied in the
// request, e.g. from a directory service or database. Grounded on
// holomush's internal/access/policy/attribute.AttributeProvider, whose
// supports/find split this keeps verbatim.
type AttributeProvider interface {
	// Supports reports whether this provider can answer a lookup for
	// (category, attributeID, dt). Consulted in registration order;
	// the first provider that returns true is invoked.
	Supports(category, attributeID string, dt datatype.ID) bool

	// Find resolves the bag for (category, attributeID, dt, issuer).
	// issuer is "" when the designator/selector omitted one. Returning
	// a *datatype.SyntaxError or any other error is treated as
	// Indeterminate{processing-error} by the resolver, except that a
	// *datatype.SyntaxError is reported as Indeterminate{syntax-error}.
	Find(ctx context.Context, category, attributeID string, dt datatype.ID, issuer string) (datatype.Bag, error)
}

// EnvironmentProvider supplies the three PDP-issued environment
// attributes (current-time, current-date, current-dateTime). Kept
// distinct from AttributeProvider because its values participate in
// the clock-freeze invariant (spec §3 invariant 2) rather than the
// general provider chain.
type EnvironmentProvider interface {
	// Now returns the instant to use for this request's frozen clock.
	// Called at most once per AttributeContext.
	Now() datatype.XSDateTime
}
