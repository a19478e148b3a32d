// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package combine

import "github.com/xacmlgo/pdp/internal/pdp/result"

// OrderedPermitOverrides has identical value semantics to
// PermitOverrides; see OrderedDenyOverrides for why this engine does
// not need a distinct evaluation order to satisfy it.
var OrderedPermitOverrides Algorithm = overridesAlgorithm{
	id:  "urn:oasis:names:tc:xacml:3.0:policy-combining-algorithm:ordered-permit-overrides",
	win: result.Permit,
}

var OrderedPermitOverridesRule Algorithm = overridesAlgorithm{
	id:  "urn:oasis:names:tc:xacml:3.0:rule-combining-algorithm:ordered-permit-overrides",
	win: result.Permit,
}
