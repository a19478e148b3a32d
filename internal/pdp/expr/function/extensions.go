// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package function

import (
	"github.com/gobwas/glob"

	"github.com/xacmlgo/pdp/internal/pdp/datatype"
	"github.com/xacmlgo/pdp/internal/pdp/result"
)

// Pattern safety limits for string-glob-match, grounded on the
// teacher's evalLike glob validation: unbounded wildcard counts or
// pattern lengths make glob compilation a worthwhile denial-of-service
// vector against a policy evaluator exposed to untrusted attributes.
const (
	maxGlobPatternLen = 100
	maxGlobWildcards  = 5
)

func validGlobPattern(pattern string) bool {
	if len(pattern) > maxGlobPatternLen {
		return false
	}
	wildcards := 0
	for _, c := range pattern {
		if c == '*' || c == '?' {
			wildcards++
			if wildcards > maxGlobWildcards {
				return false
			}
		}
	}
	return true
}

// registerExtensions registers deployment-specific, non-standard
// functions beyond the core XACML 3.0 library (spec §4.D allows
// additional functions as long as they are registered under their own
// URI and do not shadow a standard one).
func registerExtensions(r *Registry) {
	r.register(fixedFunc{
		id:   "urn:xacmlgo:names:function:string-glob-match",
		argc: 2,
		eval: func(args []any) (datatype.ID, any, result.Status) {
			pattern, s := args[0].(string), args[1].(string)
			if !validGlobPattern(pattern) {
				return errResult(result.Processing("string-glob-match: pattern exceeds safety limits"))
			}
			g, err := glob.Compile(pattern, ':')
			if err != nil {
				return errResult(result.Processing("string-glob-match: invalid pattern: " + err.Error()))
			}
			return boolResult(g.Match(s))
		},
	})
}
