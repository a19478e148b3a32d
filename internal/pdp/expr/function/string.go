// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package function

import (
	"math/big"
	"regexp"
	"strings"

	"github.com/xacmlgo/pdp/internal/pdp/datatype"
	"github.com/xacmlgo/pdp/internal/pdp/result"
)

func registerString(r *Registry) {
	// string-concatenate is variadic (2+ args); fixedFunc only supports a
	// fixed arity, so it is registered as a varFunc instead.
	r.register(varFunc{
		id:  "urn:oasis:names:tc:xacml:2.0:function:string-concatenate",
		min: 2,
		eval: func(args []any) (datatype.ID, any, result.Status) {
			var sb strings.Builder
			for _, a := range args {
				sb.WriteString(a.(string))
			}
			return datatype.String, sb.String(), result.Status{Code: result.StatusOK}
		},
	})

	r.register(fixedFunc{
		id:   "urn:oasis:names:tc:xacml:3.0:function:string-starts-with",
		argc: 2,
		eval: func(args []any) (datatype.ID, any, result.Status) {
			// Per XACML 3.0, the match string is the first argument and
			// the string being searched is the second.
			return boolResult(strings.HasPrefix(args[1].(string), args[0].(string)))
		},
	})
	r.register(fixedFunc{
		id:   "urn:oasis:names:tc:xacml:3.0:function:string-ends-with",
		argc: 2,
		eval: func(args []any) (datatype.ID, any, result.Status) {
			return boolResult(strings.HasSuffix(args[1].(string), args[0].(string)))
		},
	})
	r.register(fixedFunc{
		id:   "urn:oasis:names:tc:xacml:3.0:function:string-contains",
		argc: 2,
		eval: func(args []any) (datatype.ID, any, result.Status) {
			return boolResult(strings.Contains(args[1].(string), args[0].(string)))
		},
	})
	r.register(fixedFunc{
		id:   "urn:oasis:names:tc:xacml:3.0:function:string-substring",
		argc: 3,
		eval: func(args []any) (datatype.ID, any, result.Status) {
			s := args[0].(string)
			begin := mustInt(args[1])
			end := mustInt(args[2])
			if end < 0 {
				end = len(s)
			}
			if begin < 0 || begin > len(s) || end > len(s) || end < begin {
				return errResult(result.Processing("string-substring: index out of range"))
			}
			return datatype.String, s[begin:end], result.Status{Code: result.StatusOK}
		},
	})
	r.register(fixedFunc{
		id:   "urn:oasis:names:tc:xacml:1.0:function:string-normalize-space",
		argc: 1,
		eval: func(args []any) (datatype.ID, any, result.Status) {
			return datatype.String, strings.TrimSpace(args[0].(string)), result.Status{Code: result.StatusOK}
		},
	})
	r.register(fixedFunc{
		id:   "urn:oasis:names:tc:xacml:1.0:function:string-normalize-to-lower-case",
		argc: 1,
		eval: func(args []any) (datatype.ID, any, result.Status) {
			return datatype.String, strings.ToLower(args[0].(string)), result.Status{Code: result.StatusOK}
		},
	})
	r.register(fixedFunc{
		id:   "urn:oasis:names:tc:xacml:1.0:function:string-regexp-match",
		argc: 2,
		eval: func(args []any) (datatype.ID, any, result.Status) {
			pattern, s := args[0].(string), args[1].(string)
			re, err := regexp.Compile(pattern)
			if err != nil {
				return errResult(result.Processing("string-regexp-match: invalid pattern: " + err.Error()))
			}
			return boolResult(re.MatchString(s))
		},
	})
	// anyURI shares the match behaviour dispatched by argument datatype at
	// the policy authoring layer; the standard also defines a dedicated
	// identifier reusing the same evaluator.
	r.register(fixedFunc{
		id:   "urn:oasis:names:tc:xacml:1.0:function:anyURI-starts-with",
		argc: 2,
		eval: func(args []any) (datatype.ID, any, result.Status) {
			return boolResult(strings.HasPrefix(args[1].(string), args[0].(string)))
		},
	})
}

func mustInt(v any) int {
	switch n := v.(type) {
	case *big.Int:
		return int(n.Int64())
	case int:
		return n
	default:
		return 0
	}
}
