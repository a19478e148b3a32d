// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package pdpcontext

import (
	"sync"

	"github.com/xacmlgo/pdp/internal/pdp/datatype"
)

// Well-known environment categories/attributeIds, per XACML 3.0 §B.7.
const (
	CategoryEnvironment = "urn:oasis:names:tc:xacml:3.0:attribute-category:environment"
	CategorySubject     = "urn:oasis:names:tc:xacml:1.0:subject-category:access-subject"
	CategoryResource    = "urn:oasis:names:tc:xacml:3.0:attribute-category:resource"
	CategoryAction      = "urn:oasis:names:tc:xacml:3.0:attribute-category:action"

	AttrCurrentTime     = "urn:oasis:names:tc:xacml:1.0:environment:current-time"
	AttrCurrentDate     = "urn:oasis:names:tc:xacml:1.0:environment:current-date"
	AttrCurrentDateTime = "urn:oasis:names:tc:xacml:1.0:environment:current-dateTime"
)

// clock freezes the request's notion of "now" on first observation,
// per spec §3 invariant 2 and §8 scenario 6. Grounded on
// policy/engine.go's Evaluate, which captures time.Now() once at the
// top of the call and threads it through; here the freeze is lazy
// (first read) rather than eager, since current-time/date/dateTime
// may never be requested at all.
type clock struct {
	mu       sync.Mutex
	provider EnvironmentProvider
	frozen   bool
	instant  datatype.XSDateTime
}

func newClock(p EnvironmentProvider) *clock {
	return &clock{provider: p}
}

func (c *clock) now() datatype.XSDateTime {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.frozen {
		if c.provider != nil {
			c.instant = c.provider.Now()
		}
		c.frozen = true
	}
	return c.instant
}
