// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package expr

import (
	"fmt"

	"github.com/xacmlgo/pdp/internal/pdp/result"
)

func processingf(format string, args ...any) result.Status {
	return result.Processing(fmt.Sprintf(format, args...))
}
