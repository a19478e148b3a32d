// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package function

import (
	"time"

	"github.com/xacmlgo/pdp/internal/pdp/datatype"
	"github.com/xacmlgo/pdp/internal/pdp/result"
)

// asTimeDuration converts a Duration to a time.Duration for
// dayTimeDuration arithmetic; yearMonthDuration arithmetic instead
// shifts calendar fields directly, since months/years are not fixed
// lengths.
func asTimeDuration(d datatype.Duration) time.Duration {
	sign := time.Duration(1)
	if d.Negative {
		sign = -1
	}
	total := time.Duration(d.Days)*24*time.Hour +
		time.Duration(d.Hours)*time.Hour +
		time.Duration(d.Minutes)*time.Minute +
		time.Duration(d.Seconds*float64(time.Second))
	return sign * total
}

func registerDateTime(r *Registry) {
	r.register(fixedFunc{
		id:   "urn:oasis:names:tc:xacml:3.0:function:dateTime-add-dayTimeDuration",
		argc: 2,
		eval: func(args []any) (datatype.ID, any, result.Status) {
			dt := args[0].(datatype.XSDateTime)
			d := args[1].(datatype.Duration)
			return datatype.DateTime, datatype.XSDateTime{Time: dt.Time.Add(asTimeDuration(d)), HasZone: dt.HasZone}, result.Status{Code: result.StatusOK}
		},
	})
	r.register(fixedFunc{
		id:   "urn:oasis:names:tc:xacml:3.0:function:dateTime-subtract-dayTimeDuration",
		argc: 2,
		eval: func(args []any) (datatype.ID, any, result.Status) {
			dt := args[0].(datatype.XSDateTime)
			d := args[1].(datatype.Duration)
			return datatype.DateTime, datatype.XSDateTime{Time: dt.Time.Add(-asTimeDuration(d)), HasZone: dt.HasZone}, result.Status{Code: result.StatusOK}
		},
	})
	r.register(fixedFunc{
		id:   "urn:oasis:names:tc:xacml:3.0:function:dateTime-add-yearMonthDuration",
		argc: 2,
		eval: func(args []any) (datatype.ID, any, result.Status) {
			dt := args[0].(datatype.XSDateTime)
			d := args[1].(datatype.Duration)
			months := d.Years*12 + d.Months
			if d.Negative {
				months = -months
			}
			return datatype.DateTime, datatype.XSDateTime{Time: dt.Time.AddDate(0, months, 0), HasZone: dt.HasZone}, result.Status{Code: result.StatusOK}
		},
	})
	r.register(fixedFunc{
		id:   "urn:oasis:names:tc:xacml:3.0:function:dateTime-subtract-yearMonthDuration",
		argc: 2,
		eval: func(args []any) (datatype.ID, any, result.Status) {
			dt := args[0].(datatype.XSDateTime)
			d := args[1].(datatype.Duration)
			months := d.Years*12 + d.Months
			if d.Negative {
				months = -months
			}
			return datatype.DateTime, datatype.XSDateTime{Time: dt.Time.AddDate(0, -months, 0), HasZone: dt.HasZone}, result.Status{Code: result.StatusOK}
		},
	})
	r.register(fixedFunc{
		id:   "urn:oasis:names:tc:xacml:3.0:function:date-add-yearMonthDuration",
		argc: 2,
		eval: func(args []any) (datatype.ID, any, result.Status) {
			dv := args[0].(datatype.XSDate)
			d := args[1].(datatype.Duration)
			months := d.Years*12 + d.Months
			if d.Negative {
				months = -months
			}
			t := time.Date(dv.Year, time.Month(dv.Month), dv.Day, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
			return datatype.Date, datatype.XSDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day(), HasZone: dv.HasZone}, result.Status{Code: result.StatusOK}
		},
	})
	r.register(fixedFunc{
		id:   "urn:oasis:names:tc:xacml:3.0:function:date-subtract-yearMonthDuration",
		argc: 2,
		eval: func(args []any) (datatype.ID, any, result.Status) {
			dv := args[0].(datatype.XSDate)
			d := args[1].(datatype.Duration)
			months := d.Years*12 + d.Months
			if d.Negative {
				months = -months
			}
			t := time.Date(dv.Year, time.Month(dv.Month), dv.Day, 0, 0, 0, 0, time.UTC).AddDate(0, -months, 0)
			return datatype.Date, datatype.XSDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day(), HasZone: dv.HasZone}, result.Status{Code: result.StatusOK}
		},
	})
}
