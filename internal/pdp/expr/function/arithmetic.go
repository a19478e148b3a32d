// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package function

import (
	"math"
	"math/big"

	"github.com/xacmlgo/pdp/internal/pdp/datatype"
	"github.com/xacmlgo/pdp/internal/pdp/result"
)

func registerArithmetic(r *Registry) {
	registerIntegerArithmetic(r)
	registerDoubleArithmetic(r)
}

func registerIntegerArithmetic(r *Registry) {
	binOp := func(id string, fn func(x, y *big.Int) (*big.Int, result.Status)) {
		r.register(fixedFunc{
			id:   id,
			argc: 2,
			eval: func(args []any) (datatype.ID, any, result.Status) {
				x, y := args[0].(*big.Int), args[1].(*big.Int)
				v, status := fn(x, y)
				if status.Code != result.StatusOK {
					return errResult(status)
				}
				return datatype.Integer, v, result.Status{Code: result.StatusOK}
			},
		})
	}

	binOp("urn:oasis:names:tc:xacml:1.0:function:integer-add", func(x, y *big.Int) (*big.Int, result.Status) {
		return new(big.Int).Add(x, y), result.Status{Code: result.StatusOK}
	})
	binOp("urn:oasis:names:tc:xacml:1.0:function:integer-subtract", func(x, y *big.Int) (*big.Int, result.Status) {
		return new(big.Int).Sub(x, y), result.Status{Code: result.StatusOK}
	})
	binOp("urn:oasis:names:tc:xacml:1.0:function:integer-multiply", func(x, y *big.Int) (*big.Int, result.Status) {
		return new(big.Int).Mul(x, y), result.Status{Code: result.StatusOK}
	})
	binOp("urn:oasis:names:tc:xacml:1.0:function:integer-divide", func(x, y *big.Int) (*big.Int, result.Status) {
		if y.Sign() == 0 {
			return nil, result.Processing("integer-divide: division by zero")
		}
		return new(big.Int).Quo(x, y), result.Status{Code: result.StatusOK}
	})
	binOp("urn:oasis:names:tc:xacml:1.0:function:integer-mod", func(x, y *big.Int) (*big.Int, result.Status) {
		if y.Sign() == 0 {
			return nil, result.Processing("integer-mod: division by zero")
		}
		return new(big.Int).Rem(x, y), result.Status{Code: result.StatusOK}
	})

	r.register(fixedFunc{
		id:   "urn:oasis:names:tc:xacml:1.0:function:integer-abs",
		argc: 1,
		eval: func(args []any) (datatype.ID, any, result.Status) {
			x := args[0].(*big.Int)
			return datatype.Integer, new(big.Int).Abs(x), result.Status{Code: result.StatusOK}
		},
	})
}

func registerDoubleArithmetic(r *Registry) {
	binOp := func(id string, fn func(x, y float64) (float64, result.Status)) {
		r.register(fixedFunc{
			id:   id,
			argc: 2,
			eval: func(args []any) (datatype.ID, any, result.Status) {
				v, status := fn(args[0].(float64), args[1].(float64))
				if status.Code != result.StatusOK {
					return errResult(status)
				}
				return datatype.Double, v, result.Status{Code: result.StatusOK}
			},
		})
	}

	binOp("urn:oasis:names:tc:xacml:1.0:function:double-add", func(x, y float64) (float64, result.Status) {
		return x + y, result.Status{Code: result.StatusOK}
	})
	binOp("urn:oasis:names:tc:xacml:1.0:function:double-subtract", func(x, y float64) (float64, result.Status) {
		return x - y, result.Status{Code: result.StatusOK}
	})
	binOp("urn:oasis:names:tc:xacml:1.0:function:double-multiply", func(x, y float64) (float64, result.Status) {
		return x * y, result.Status{Code: result.StatusOK}
	})
	binOp("urn:oasis:names:tc:xacml:1.0:function:double-divide", func(x, y float64) (float64, result.Status) {
		if y == 0 {
			return 0, result.Processing("double-divide: division by zero")
		}
		return x / y, result.Status{Code: result.StatusOK}
	})

	r.register(fixedFunc{
		id:   "urn:oasis:names:tc:xacml:1.0:function:double-abs",
		argc: 1,
		eval: func(args []any) (datatype.ID, any, result.Status) {
			return datatype.Double, math.Abs(args[0].(float64)), result.Status{Code: result.StatusOK}
		},
	})
	r.register(fixedFunc{
		id:   "urn:oasis:names:tc:xacml:1.0:function:round",
		argc: 1,
		eval: func(args []any) (datatype.ID, any, result.Status) {
			return datatype.Double, math.Round(args[0].(float64)), result.Status{Code: result.StatusOK}
		},
	})
	r.register(fixedFunc{
		id:   "urn:oasis:names:tc:xacml:1.0:function:floor",
		argc: 1,
		eval: func(args []any) (datatype.ID, any, result.Status) {
			return datatype.Double, math.Floor(args[0].(float64)), result.Status{Code: result.StatusOK}
		},
	})

	r.register(fixedFunc{
		id:   "urn:oasis:names:tc:xacml:1.0:function:integer-to-double",
		argc: 1,
		eval: func(args []any) (datatype.ID, any, result.Status) {
			f := new(big.Float).SetInt(args[0].(*big.Int))
			v, _ := f.Float64()
			return datatype.Double, v, result.Status{Code: result.StatusOK}
		},
	})
	r.register(fixedFunc{
		id:   "urn:oasis:names:tc:xacml:1.0:function:double-to-integer",
		argc: 1,
		eval: func(args []any) (datatype.ID, any, result.Status) {
			bi, _ := big.NewFloat(math.Trunc(args[0].(float64))).Int(nil)
			return datatype.Integer, bi, result.Status{Code: result.StatusOK}
		},
	})
}
