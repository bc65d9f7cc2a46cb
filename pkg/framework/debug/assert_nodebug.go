//go:build !debug

package debug

import (
	"fmt"

	"go.uber.org/zap"
)

// AssertionsEnabled reports whether contract violations panic.
const AssertionsEnabled = false

// Assert reports whether cond holds. A false cond is logged at error level
// and the caller is expected to ignore the offending input.
func Assert(cond bool, format string, args ...any) bool {
	if cond {
		return true
	}
	Logger().Error("contract violation", zap.String("detail", fmt.Sprintf(format, args...)))
	return false
}
