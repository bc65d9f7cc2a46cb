//go:build debug

package debug

import "fmt"

// AssertionsEnabled reports whether contract violations panic.
const AssertionsEnabled = true

// Assert panics with the formatted message when cond is false.
// Builds without the 'debug' tag log the violation instead.
func Assert(cond bool, format string, args ...any) bool {
	if cond {
		return true
	}
	panic(fmt.Sprintf("dfxparam: assertion failed: "+format, args...))
}
