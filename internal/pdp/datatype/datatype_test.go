// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package datatype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooleanRoundTrip(t *testing.T) {
	dt := MustLookup(Boolean)
	v, err := dt.Parse("true")
	require.NoError(t, err)
	s, err := dt.Serialize(v)
	require.NoError(t, err)
	assert.Equal(t, "true", s)

	_, err = dt.Parse("yes")
	assert.Error(t, err)
	var syntaxErr *SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}

func TestIntegerArbitraryPrecision(t *testing.T) {
	dt := MustLookup(Integer)
	big1, err := dt.Parse("99999999999999999999999999999999")
	require.NoError(t, err)
	big2, err := dt.Parse("99999999999999999999999999999999")
	require.NoError(t, err)
	assert.True(t, dt.Equal(big1, big2))

	cmp, err := dt.Compare(big1, big2)
	require.NoError(t, err)
	assert.Zero(t, cmp)
}

func TestDoubleCompare(t *testing.T) {
	dt := MustLookup(Double)
	a, _ := dt.Parse("1.5")
	b, _ := dt.Parse("2.5")
	cmp, err := dt.Compare(a, b)
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)
}

func TestDateTimeTimezoneSensitiveEquality(t *testing.T) {
	dt := MustLookup(DateTime)
	withZone, err := dt.Parse("2026-01-01T00:00:00Z")
	require.NoError(t, err)
	noZone, err := dt.Parse("2026-01-01T00:00:00")
	require.NoError(t, err)
	assert.False(t, dt.Equal(withZone, noZone), "zone-bearing and zone-less dateTimes must not be equal")
}

func TestDayTimeDurationParse(t *testing.T) {
	dt := MustLookup(DayTimeDuration)
	v, err := dt.Parse("P1DT2H")
	require.NoError(t, err)
	d := v.(Duration)
	assert.Equal(t, 1, d.Days)
	assert.Equal(t, 2, d.Hours)

	_, err = dt.Parse("P1Y2M")
	assert.Error(t, err, "dayTimeDuration must reject year/month components")
}

func TestRFC822NameEquality(t *testing.T) {
	dt := MustLookup(RFC822Name)
	a, _ := dt.Parse("Anderson@Sun.COM")
	b, _ := dt.Parse("Anderson@sun.com")
	assert.True(t, dt.Equal(a, b), "domain part is case-insensitive")

	c, _ := dt.Parse("anderson@sun.com")
	assert.False(t, dt.Equal(a, c), "local part is case-sensitive")
}

func TestIPAddressWithCIDRAndPort(t *testing.T) {
	dt := MustLookup(IPAddress)
	v, err := dt.Parse("192.168.1.0/24:8080-8090")
	require.NoError(t, err)
	ip := v.(IPAddress)
	assert.True(t, ip.HasPort)
	assert.Equal(t, 8080, ip.PortStart)
	assert.Equal(t, 8090, ip.PortEnd)
}

func TestBagSetOperations(t *testing.T) {
	a := Bag{Type: String, Values: []any{"x", "y"}}
	b := Bag{Type: String, Values: []any{"y", "z"}}

	u, err := Union(a, b)
	require.NoError(t, err)
	assert.Len(t, u.Values, 3)

	i, err := Intersection(a, b)
	require.NoError(t, err)
	assert.Len(t, i.Values, 1)

	sub, err := Subtract(a, b)
	require.NoError(t, err)
	assert.Equal(t, []any{"x"}, sub.Values)

	eq, err := SetEquals(Bag{Type: String, Values: []any{"x", "y"}}, Bag{Type: String, Values: []any{"y", "x", "x"}})
	require.NoError(t, err)
	assert.True(t, eq, "set-equals ignores multiplicity")
}

func TestUnknownDatatype(t *testing.T) {
	_, ok := Lookup("urn:example:not-a-type")
	assert.False(t, ok)
}
