// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package combine

import "github.com/xacmlgo/pdp/internal/pdp/result"

// OrderedDenyOverrides has identical value semantics to DenyOverrides;
// this engine always evaluates children in document order (see
// evalAll), so the "ordered" distinction is purely identifier-level
// here, kept as a dedicated value per spec §4.G's "MUST be provided"
// list rather than folded into one switch statement.
var OrderedDenyOverrides Algorithm = overridesAlgorithm{
	id:  "urn:oasis:names:tc:xacml:3.0:policy-combining-algorithm:ordered-deny-overrides",
	win: result.Deny,
}

var OrderedDenyOverridesRule Algorithm = overridesAlgorithm{
	id:  "urn:oasis:names:tc:xacml:3.0:rule-combining-algorithm:ordered-deny-overrides",
	win: result.Deny,
}
