// Package assert provides the debug assertions used across memkit.
//
// Assertions are compiled in by default. Building with the memkit_noassert
// tag turns every check into a no-op.
package assert

import "fmt"

// That panics with the formatted message when cond is false and assertions
// are enabled.
func That(cond bool, format string, args ...any) {
	if Enabled && !cond {
		panic(fmt.Sprintf(format, args...))
	}
}

// Fail panics unconditionally when assertions are enabled.
func Fail(format string, args ...any) {
	if Enabled {
		panic(fmt.Sprintf(format, args...))
	}
}
