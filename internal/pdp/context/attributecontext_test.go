// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package pdpcontext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xacmlgo/pdp/internal/pdp/datatype"
	"github.com/xacmlgo/pdp/internal/pdp/result"
)

type stubProvider struct {
	category, attributeID string
	dt                     datatype.ID
	bag                    datatype.Bag
	err                    error
	calls                  int
}

func (s *stubProvider) Supports(category, attributeID string, dt datatype.ID) bool {
	return category == s.category && attributeID == s.attributeID && dt == s.dt
}

func (s *stubProvider) Find(_ context.Context, _, _ string, _ datatype.ID, _ string) (datatype.Bag, error) {
	s.calls++
	return s.bag, s.err
}

type fixedEnv struct{ t datatype.XSDateTime }

func (f fixedEnv) Now() datatype.XSDateTime { return f.t }

func TestGetFromRequestStore(t *testing.T) {
	ctx := New(nil, nil)
	ctx.Seed(CategorySubject, "role", datatype.String, "", []any{"admin"})

	got := ctx.Get(context.Background(), CategorySubject, "role", datatype.String, "", false)
	require.Equal(t, result.StatusOK, got.Status.Code)
	assert.Equal(t, []any{"admin"}, got.Bag.Values)
}

func TestGetFallsBackToProviderAndCaches(t *testing.T) {
	p := &stubProvider{category: CategorySubject, attributeID: "dept", dt: datatype.String, bag: datatype.Bag{Type: datatype.String, Values: []any{"eng"}}}
	ctx := New([]AttributeProvider{p}, nil)

	got := ctx.Get(context.Background(), CategorySubject, "dept", datatype.String, "", false)
	require.Equal(t, result.StatusOK, got.Status.Code)
	assert.Equal(t, []any{"eng"}, got.Bag.Values)
	assert.Equal(t, 1, p.calls)

	// second lookup must be served from cache, not the provider again
	ctx.Get(context.Background(), CategorySubject, "dept", datatype.String, "", false)
	assert.Equal(t, 1, p.calls)
}

func TestMustBePresentLiftsEmptyToMissing(t *testing.T) {
	ctx := New(nil, nil)
	got := ctx.Get(context.Background(), CategorySubject, "role", datatype.String, "", true)
	assert.Equal(t, result.StatusMissingAttribute, got.Status.Code)
}

func TestNoProviderSupportsReturnsEmptyBag(t *testing.T) {
	ctx := New(nil, nil)
	got := ctx.Get(context.Background(), CategorySubject, "role", datatype.String, "", false)
	require.Equal(t, result.StatusOK, got.Status.Code)
	assert.True(t, got.Bag.Empty())
}

func TestClockFreezesOnFirstObservation(t *testing.T) {
	calls := 0
	env := providerFunc(func() datatype.XSDateTime {
		calls++
		return datatype.XSDateTime{}
	})
	ctx := New(nil, env)
	_ = ctx.Now()
	_ = ctx.Now()
	assert.Equal(t, 1, calls)
}

type providerFunc func() datatype.XSDateTime

func (f providerFunc) Now() datatype.XSDateTime { return f() }

func TestBuildContextRequestWinsByDefault(t *testing.T) {
	req := Request{Attributes: []AttributeValue{
		{Category: CategoryEnvironment, AttributeID: AttrCurrentTime, Type: Time, Issuer: "", Values: []any{"request-value"}},
	}}
	pdpEnv := []AttributeValue{
		{Category: CategoryEnvironment, AttributeID: AttrCurrentTime, Type: Time, Issuer: "", Values: []any{"pdp-value"}},
	}
	ctx := BuildContext(req, pdpEnv, false, nil, nil)
	got := ctx.Get(context.Background(), CategoryEnvironment, AttrCurrentTime, Time, "", false)
	assert.Equal(t, []any{"request-value"}, got.Bag.Values)
}

func TestBuildContextPDPOverrides(t *testing.T) {
	req := Request{Attributes: []AttributeValue{
		{Category: CategoryEnvironment, AttributeID: AttrCurrentTime, Type: Time, Values: []any{"request-value"}},
	}}
	pdpEnv := []AttributeValue{
		{Category: CategoryEnvironment, AttributeID: AttrCurrentTime, Type: Time, Values: []any{"pdp-value"}},
	}
	ctx := BuildContext(req, pdpEnv, true, nil, nil)
	got := ctx.Get(context.Background(), CategoryEnvironment, AttrCurrentTime, Time, "", false)
	assert.Equal(t, []any{"pdp-value"}, got.Bag.Values)
}

// Time is a placeholder datatype.ID alias local to tests to avoid
// importing a full time value just to exercise the merge policy.
const Time = datatype.ID("test:attr")
