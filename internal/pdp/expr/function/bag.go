// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package function

import (
	"context"
	"math/big"

	"github.com/xacmlgo/pdp/internal/pdp/datatype"
	"github.com/xacmlgo/pdp/internal/pdp/expr"
	"github.com/xacmlgo/pdp/internal/pdp/result"
)

func bigFromInt(n int) *big.Int { return big.NewInt(int64(n)) }

// bagTypeNames maps every core datatype to the URN short name its
// bag/set functions are registered under.
var bagTypeNames = map[string]datatype.ID{
	"string":            datatype.String,
	"boolean":           datatype.Boolean,
	"integer":           datatype.Integer,
	"double":            datatype.Double,
	"time":              datatype.Time,
	"date":              datatype.Date,
	"dateTime":          datatype.DateTime,
	"dayTimeDuration":   datatype.DayTimeDuration,
	"yearMonthDuration": datatype.YearMonthDuration,
	"anyURI":            datatype.AnyURI,
	"hexBinary":         datatype.HexBinary,
	"base64Binary":      datatype.Base64Binary,
	"rfc822Name":        datatype.RFC822Name,
	"x500Name":          datatype.X500Name,
	"ipAddress":         datatype.IPAddress,
	"dnsName":           datatype.DNSName,
}

// bagFunc is a Function built from the raw []expr.Result of its
// evaluated arguments, for the bag-construction and bag/set family
// whose arity or argument kind (bag vs single) isn't uniform enough
// for fixedFunc/varFunc.
type bagFunc struct {
	id      string
	minArgc int
	eval    func(results []expr.Result) expr.Result
}

func (f bagFunc) ID() string            { return f.id }
func (f bagFunc) CheckArity(n int) bool { return n >= f.minArgc }

func (f bagFunc) Eval(goCtx context.Context, ectx *expr.EvalContext, args []expr.Expression) expr.Result {
	results := make([]expr.Result, len(args))
	for i, a := range args {
		results[i] = a.Eval(goCtx, ectx)
		if results[i].IsIndeterminate() {
			return results[i]
		}
	}
	return f.eval(results)
}

func registerBag(r *Registry) {
	for name, dtID := range bagTypeNames {
		name, dtID := name, dtID
		base := "urn:oasis:names:tc:xacml:1.0:function:" + name

		r.register(bagFunc{
			id:      base + "-bag",
			minArgc: 0,
			eval: func(results []expr.Result) expr.Result {
				bag := datatype.Bag{Type: dtID}
				for _, res := range results {
					if res.Kind != expr.KindValue {
						return expr.IndeterminateResult(result.Processing(name + "-bag: argument is a bag where a single value was expected"))
					}
					bag.Values = append(bag.Values, res.Value.Value)
				}
				return expr.BagResult(bag)
			},
		})

		r.register(bagFunc{
			id:      base + "-one-and-only",
			minArgc: 1,
			eval: func(results []expr.Result) expr.Result {
				if results[0].Kind != expr.KindBag {
					return expr.IndeterminateResult(result.Processing(name + "-one-and-only: argument is not a bag"))
				}
				bag := results[0].Bag
				if len(bag.Values) != 1 {
					return expr.IndeterminateResult(result.Processing(name + "-one-and-only: bag does not contain exactly one value"))
				}
				return expr.ValueResult(dtID, bag.Values[0])
			},
		})

		r.register(bagFunc{
			id:      base + "-bag-size",
			minArgc: 1,
			eval: func(results []expr.Result) expr.Result {
				if results[0].Kind != expr.KindBag {
					return expr.IndeterminateResult(result.Processing(name + "-bag-size: argument is not a bag"))
				}
				return expr.ValueResult(datatype.Integer, bigFromInt(len(results[0].Bag.Values)))
			},
		})

		r.register(bagFunc{
			id:      base + "-is-in",
			minArgc: 2,
			eval: func(results []expr.Result) expr.Result {
				if results[0].Kind != expr.KindValue || results[1].Kind != expr.KindBag {
					return expr.IndeterminateResult(result.Processing(name + "-is-in: argument kind mismatch"))
				}
				found, err := results[1].Bag.Contains(results[0].Value.Value)
				if err != nil {
					return expr.IndeterminateResult(result.Processing(err.Error()))
				}
				return expr.ValueResult(datatype.Boolean, found)
			},
		})
	}
}
