// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package datatype

// Value pairs a canonical value with its datatype, the unit expression
// and target evaluation pass around instead of bare `any`.
type Value struct {
	Type  ID
	Value any
}

// Bag is an unordered, duplicate-permitting multiset of same-typed
// values, per XACML §7.3.2. A bag is not itself a Value — functions
// that accept or return a bag are distinguished at the function-
// signature level in package function.
type Bag struct {
	Type   ID
	Values []any
}

// Empty reports whether the bag has zero elements. An empty bag is
// valid and distinct from Indeterminate.
func (b Bag) Empty() bool { return len(b.Values) == 0 }

// Contains reports whether v is a member of the bag, using the bag's
// datatype equality.
func (b Bag) Contains(v any) (bool, error) {
	dt, ok := Lookup(b.Type)
	if !ok {
		return false, &SyntaxError{Datatype: b.Type, Reason: "unknown bag datatype"}
	}
	for _, existing := range b.Values {
		if dt.Equal(existing, v) {
			return true, nil
		}
	}
	return false, nil
}

// Union returns a new bag holding every distinct value (by datatype
// equality) present in a or b.
func Union(a, b Bag) (Bag, error) {
	if a.Type != b.Type {
		return Bag{}, &SyntaxError{Datatype: a.Type, Reason: "bag union type mismatch"}
	}
	out := Bag{Type: a.Type}
	for _, src := range [][]any{a.Values, b.Values} {
		for _, v := range src {
			found, err := out.Contains(v)
			if err != nil {
				return Bag{}, err
			}
			if !found {
				out.Values = append(out.Values, v)
			}
		}
	}
	return out, nil
}

// Intersection returns values present (by datatype equality) in both
// a and b, deduplicated.
func Intersection(a, b Bag) (Bag, error) {
	if a.Type != b.Type {
		return Bag{}, &SyntaxError{Datatype: a.Type, Reason: "bag intersection type mismatch"}
	}
	out := Bag{Type: a.Type}
	for _, v := range a.Values {
		inB, err := b.Contains(v)
		if err != nil {
			return Bag{}, err
		}
		if !inB {
			continue
		}
		already, err := out.Contains(v)
		if err != nil {
			return Bag{}, err
		}
		if !already {
			out.Values = append(out.Values, v)
		}
	}
	return out, nil
}

// Subtract returns values in a that are not in b.
func Subtract(a, b Bag) (Bag, error) {
	if a.Type != b.Type {
		return Bag{}, &SyntaxError{Datatype: a.Type, Reason: "bag subtract type mismatch"}
	}
	out := Bag{Type: a.Type}
	for _, v := range a.Values {
		inB, err := b.Contains(v)
		if err != nil {
			return Bag{}, err
		}
		if !inB {
			out.Values = append(out.Values, v)
		}
	}
	return out, nil
}

// IsSubset reports whether every distinct value of a (by datatype
// equality) is present in b.
func IsSubset(a, b Bag) (bool, error) {
	if a.Type != b.Type {
		return false, &SyntaxError{Datatype: a.Type, Reason: "bag subset type mismatch"}
	}
	for _, v := range a.Values {
		found, err := b.Contains(v)
		if err != nil {
			return false, err
		}
		if !found {
			return false, nil
		}
	}
	return true, nil
}

// SetEquals reports whether a and b contain the same distinct values,
// ignoring multiplicity, per the XACML *-set-equals functions.
func SetEquals(a, b Bag) (bool, error) {
	aSub, err := IsSubset(a, b)
	if err != nil || !aSub {
		return false, err
	}
	return IsSubset(b, a)
}
