// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package datatype

import (
	"math/big"
	"strconv"
	"strings"
)

type booleanType struct{}

func (booleanType) ID() ID { return Boolean }

func (booleanType) Parse(lexical string) (any, error) {
	switch strings.TrimSpace(lexical) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return nil, &SyntaxError{Datatype: Boolean, Lexical: lexical, Reason: "not a valid xs:boolean"}
	}
}

func (booleanType) Serialize(value any) (string, error) {
	b, ok := value.(bool)
	if !ok {
		return "", &SyntaxError{Datatype: Boolean, Reason: "value is not a bool"}
	}
	if b {
		return "true", nil
	}
	return "false", nil
}

func (booleanType) Equal(a, b any) bool { return a.(bool) == b.(bool) }
func (booleanType) Orderable() bool     { return false }
func (booleanType) Compare(_, _ any) (int, error) {
	return 0, &SyntaxError{Datatype: Boolean, Reason: "boolean has no total order"}
}

// integerType implements xs:integer as an arbitrary-precision integer,
// per the XACML core spec (implementations MUST NOT silently truncate).
type integerType struct{}

func (integerType) ID() ID { return Integer }

func (integerType) Parse(lexical string) (any, error) {
	i, ok := new(big.Int).SetString(strings.TrimSpace(lexical), 10)
	if !ok {
		return nil, &SyntaxError{Datatype: Integer, Lexical: lexical, Reason: "not a valid xs:integer"}
	}
	return i, nil
}

func (integerType) Serialize(value any) (string, error) {
	i, ok := value.(*big.Int)
	if !ok {
		return "", &SyntaxError{Datatype: Integer, Reason: "value is not *big.Int"}
	}
	return i.String(), nil
}

func (integerType) Equal(a, b any) bool {
	return a.(*big.Int).Cmp(b.(*big.Int)) == 0
}
func (integerType) Orderable() bool { return true }
func (integerType) Compare(a, b any) (int, error) {
	return a.(*big.Int).Cmp(b.(*big.Int)), nil
}

type doubleType struct{}

func (doubleType) ID() ID { return Double }

func (doubleType) Parse(lexical string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(lexical), 64)
	if err != nil {
		return nil, &SyntaxError{Datatype: Double, Lexical: lexical, Reason: "not a valid xs:double"}
	}
	return f, nil
}

func (doubleType) Serialize(value any) (string, error) {
	f, ok := value.(float64)
	if !ok {
		return "", &SyntaxError{Datatype: Double, Reason: "value is not float64"}
	}
	return strconv.FormatFloat(f, 'g', -1, 64), nil
}

func (doubleType) Equal(a, b any) bool { return a.(float64) == b.(float64) }
func (doubleType) Orderable() bool     { return true }
func (doubleType) Compare(a, b any) (int, error) {
	x, y := a.(float64), b.(float64)
	switch {
	case x < y:
		return -1, nil
	case x > y:
		return 1, nil
	default:
		return 0, nil
	}
}

type stringType struct{}

func (stringType) ID() ID                 { return String }
func (stringType) Parse(l string) (any, error)    { return l, nil }
func (stringType) Serialize(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &SyntaxError{Datatype: String, Reason: "value is not a string"}
	}
	return s, nil
}
func (stringType) Equal(a, b any) bool { return a.(string) == b.(string) }
func (stringType) Orderable() bool     { return true }
func (stringType) Compare(a, b any) (int, error) {
	return strings.Compare(a.(string), b.(string)), nil
}

type anyURIType struct{}

func (anyURIType) ID() ID { return AnyURI }
func (anyURIType) Parse(l string) (any, error) {
	if l == "" {
		return nil, &SyntaxError{Datatype: AnyURI, Lexical: l, Reason: "empty anyURI"}
	}
	return l, nil
}
func (anyURIType) Serialize(v any) (string, error) { return v.(string), nil }
func (anyURIType) Equal(a, b any) bool             { return a.(string) == b.(string) }
func (anyURIType) Orderable() bool                 { return false }
func (anyURIType) Compare(_, _ any) (int, error) {
	return 0, &SyntaxError{Datatype: AnyURI, Reason: "anyURI has no total order"}
}

func init() {
	register(booleanType{})
	register(integerType{})
	register(doubleType{})
	register(stringType{})
	register(anyURIType{})
}
