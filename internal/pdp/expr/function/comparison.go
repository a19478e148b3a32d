// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package function

import (
	"github.com/xacmlgo/pdp/internal/pdp/datatype"
	"github.com/xacmlgo/pdp/internal/pdp/result"
)

// comparableTypes lists every ordered datatype and the URN short name
// its comparison functions are registered under.
var comparableTypes = map[string]datatype.ID{
	"integer":           datatype.Integer,
	"double":             datatype.Double,
	"string":             datatype.String,
	"time":               datatype.Time,
	"date":               datatype.Date,
	"dateTime":           datatype.DateTime,
	"dayTimeDuration":    datatype.DayTimeDuration,
	"yearMonthDuration":  datatype.YearMonthDuration,
}

func registerComparison(r *Registry) {
	ops := []struct {
		suffix string
		ok     func(cmp int) bool
	}{
		{"greater-than", func(c int) bool { return c > 0 }},
		{"greater-than-or-equal", func(c int) bool { return c >= 0 }},
		{"less-than", func(c int) bool { return c < 0 }},
		{"less-than-or-equal", func(c int) bool { return c <= 0 }},
	}
	for name, dtID := range comparableTypes {
		name, dtID := name, dtID
		for _, op := range ops {
			op := op
			r.register(fixedFunc{
				id:   "urn:oasis:names:tc:xacml:1.0:function:" + name + "-" + op.suffix,
				argc: 2,
				eval: func(args []any) (datatype.ID, any, result.Status) {
					dt := datatype.MustLookup(dtID)
					cmp, err := dt.Compare(args[0], args[1])
					if err != nil {
						return errResult(result.Processing(err.Error()))
					}
					return boolResult(op.ok(cmp))
				},
			})
		}
	}
}
