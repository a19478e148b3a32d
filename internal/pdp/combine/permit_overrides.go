// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package combine

import "github.com/xacmlgo/pdp/internal/pdp/result"

// PermitOverrides is "a Permit anywhere forces Permit" (spec §4.G).
var PermitOverrides Algorithm = overridesAlgorithm{
	id:  "urn:oasis:names:tc:xacml:3.0:policy-combining-algorithm:permit-overrides",
	win: result.Permit,
}

// PermitOverridesRule is the rule-combining-algorithm identifier
// variant of PermitOverrides.
var PermitOverridesRule Algorithm = overridesAlgorithm{
	id:  "urn:oasis:names:tc:xacml:3.0:rule-combining-algorithm:permit-overrides",
	win: result.Permit,
}
