// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package combine

import "github.com/xacmlgo/pdp/internal/pdp/result"

// PermitUnlessDeny never returns NotApplicable or Indeterminate: any
// outcome that is not Deny is forced to Permit (spec §4.G). Built on
// the same unlessAlgorithm as DenyUnlessPermit, swapping which effect
// wins.
var PermitUnlessDeny Algorithm = unlessAlgorithm{
	id:  "urn:oasis:names:tc:xacml:3.0:policy-combining-algorithm:permit-unless-deny",
	win: result.Deny,
}

var PermitUnlessDenyRule Algorithm = unlessAlgorithm{
	id:  "urn:oasis:names:tc:xacml:3.0:rule-combining-algorithm:permit-unless-deny",
	win: result.Deny,
}
