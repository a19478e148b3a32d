// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package combine

import "github.com/xacmlgo/pdp/internal/pdp/result"

// DenyOverrides is "a Deny anywhere forces Deny" (spec §4.G).
var DenyOverrides Algorithm = overridesAlgorithm{
	id:  "urn:oasis:names:tc:xacml:3.0:policy-combining-algorithm:deny-overrides",
	win: result.Deny,
}

// DenyOverridesRule is the rule-combining-algorithm identifier variant
// of DenyOverrides; rules and policies share combining semantics, only
// the registered URI differs.
var DenyOverridesRule Algorithm = overridesAlgorithm{
	id:  "urn:oasis:names:tc:xacml:3.0:rule-combining-algorithm:deny-overrides",
	win: result.Deny,
}
