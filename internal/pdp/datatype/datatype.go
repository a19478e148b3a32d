// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

// Package datatype implements the closed set of XACML 3.0 core datatypes:
// parsing from lexical form, canonical equality, and (where ordered) a
// total order used by comparison functions.
package datatype

import "fmt"

// ID identifies a datatype by its XACML URI.
type ID string

// The XACML 3.0 core datatype identifiers.
const (
	Boolean           ID = "http://www.w3.org/2001/XMLSchema#boolean"
	Integer           ID = "http://www.w3.org/2001/XMLSchema#integer"
	Double            ID = "http://www.w3.org/2001/XMLSchema#double"
	String            ID = "http://www.w3.org/2001/XMLSchema#string"
	Time              ID = "http://www.w3.org/2001/XMLSchema#time"
	Date              ID = "http://www.w3.org/2001/XMLSchema#date"
	DateTime          ID = "http://www.w3.org/2001/XMLSchema#dateTime"
	DayTimeDuration   ID = "urn:oasis:names:tc:xacml:2.0:data-type:dayTimeDuration"
	YearMonthDuration ID = "urn:oasis:names:tc:xacml:2.0:data-type:yearMonthDuration"
	AnyURI            ID = "http://www.w3.org/2001/XMLSchema#anyURI"
	HexBinary         ID = "http://www.w3.org/2001/XMLSchema#hexBinary"
	Base64Binary      ID = "http://www.w3.org/2001/XMLSchema#base64Binary"
	RFC822Name        ID = "urn:oasis:names:tc:xacml:1.0:data-type:rfc822Name"
	X500Name          ID = "urn:oasis:names:tc:xacml:1.0:data-type:x500Name"
	IPAddress         ID = "urn:oasis:names:tc:xacml:2.0:data-type:ipAddress"
	DNSName           ID = "urn:oasis:names:tc:xacml:2.0:data-type:dnsName"
)

// SyntaxError reports that a lexical form violates its datatype's schema.
// Per spec.md §4.A this is surfaced by callers as Indeterminate{syntax-error}.
type SyntaxError struct {
	Datatype ID
	Lexical  string
	Reason   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("datatype %s: cannot parse %q: %s", e.Datatype, e.Lexical, e.Reason)
}

// Datatype is the contract every XACML core datatype implements.
type Datatype interface {
	// ID returns the datatype's URI.
	ID() ID

	// Parse converts a lexical form to a canonical Go value. Returns
	// *SyntaxError if the lexical form is invalid.
	Parse(lexical string) (any, error)

	// Serialize converts a canonical value back to its lexical form.
	Serialize(value any) (string, error)

	// Equal reports whether two canonical values of this datatype are equal.
	Equal(a, b any) bool

	// Orderable reports whether this datatype supports Compare.
	Orderable() bool

	// Compare returns -1, 0, or 1. Only valid when Orderable() is true.
	Compare(a, b any) (int, error)
}

// registry is the closed set of built-in datatypes, populated in init().
var registry = map[ID]Datatype{}

func register(dt Datatype) {
	registry[dt.ID()] = dt
}

// Lookup returns the Datatype implementation for id, or false if id is
// not one of the 16 core datatypes.
func Lookup(id ID) (Datatype, bool) {
	dt, ok := registry[id]
	return dt, ok
}

// MustLookup is Lookup but panics on an unknown id; intended for
// call sites building static function signatures at package init time.
func MustLookup(id ID) Datatype {
	dt, ok := registry[id]
	if !ok {
		panic(fmt.Sprintf("datatype: unknown id %q", id))
	}
	return dt
}
