// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package function

import (
	"github.com/xacmlgo/pdp/internal/pdp/datatype"
	"github.com/xacmlgo/pdp/internal/pdp/expr"
	"github.com/xacmlgo/pdp/internal/pdp/result"
)

func registerSet(r *Registry) {
	for name := range bagTypeNames {
		name := name
		base := "urn:oasis:names:tc:xacml:1.0:function:" + name

		r.register(bagFunc{
			id:      base + "-intersection",
			minArgc: 2,
			eval: func(results []expr.Result) expr.Result {
				return bagSetOp(name, results, datatype.Intersection)
			},
		})
		r.register(bagFunc{
			id:      base + "-union",
			minArgc: 2,
			eval: func(results []expr.Result) expr.Result {
				return bagSetOp(name, results, datatype.Union)
			},
		})
		r.register(bagFunc{
			id:      base + "-subset",
			minArgc: 2,
			eval: func(results []expr.Result) expr.Result {
				return bagSetPredicate(name, results, datatype.IsSubset)
			},
		})
		r.register(bagFunc{
			id:      base + "-set-equals",
			minArgc: 2,
			eval: func(results []expr.Result) expr.Result {
				return bagSetPredicate(name, results, datatype.SetEquals)
			},
		})
	}
}

func bagSetOp(name string, results []expr.Result, op func(a, b datatype.Bag) (datatype.Bag, error)) expr.Result {
	if results[0].Kind != expr.KindBag || results[1].Kind != expr.KindBag {
		return expr.IndeterminateResult(result.Processing(name + "-set op: argument is not a bag"))
	}
	out, err := op(results[0].Bag, results[1].Bag)
	if err != nil {
		return expr.IndeterminateResult(result.Processing(err.Error()))
	}
	return expr.BagResult(out)
}

func bagSetPredicate(name string, results []expr.Result, op func(a, b datatype.Bag) (bool, error)) expr.Result {
	if results[0].Kind != expr.KindBag || results[1].Kind != expr.KindBag {
		return expr.IndeterminateResult(result.Processing(name + "-set predicate: argument is not a bag"))
	}
	ok, err := op(results[0].Bag, results[1].Bag)
	if err != nil {
		return expr.IndeterminateResult(result.Processing(err.Error()))
	}
	return expr.ValueResult(datatype.Boolean, ok)
}
