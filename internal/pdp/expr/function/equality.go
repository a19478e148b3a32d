// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package function

import (
	"github.com/xacmlgo/pdp/internal/pdp/datatype"
	"github.com/xacmlgo/pdp/internal/pdp/result"
)

// equalityTypes maps a datatype short name (as used in XACML function
// URNs) to its datatype.ID.
var equalityTypes = map[string]datatype.ID{
	"string":            datatype.String,
	"boolean":            datatype.Boolean,
	"integer":            datatype.Integer,
	"double":             datatype.Double,
	"date":               datatype.Date,
	"time":               datatype.Time,
	"dateTime":           datatype.DateTime,
	"dayTimeDuration":    datatype.DayTimeDuration,
	"yearMonthDuration":  datatype.YearMonthDuration,
	"anyURI":             datatype.AnyURI,
	"hexBinary":          datatype.HexBinary,
	"base64Binary":       datatype.Base64Binary,
	"rfc822Name":         datatype.RFC822Name,
	"x500Name":           datatype.X500Name,
}

func registerEquality(r *Registry) {
	for name, dtID := range equalityTypes {
		dtID := dtID
		r.register(fixedFunc{
			id:   "urn:oasis:names:tc:xacml:1.0:function:" + name + "-equal",
			argc: 2,
			eval: func(args []any) (datatype.ID, any, result.Status) {
				dt := datatype.MustLookup(dtID)
				return boolResult(dt.Equal(args[0], args[1]))
			},
		})
	}
}
