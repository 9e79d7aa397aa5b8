//go:build exfatdebug

package exfat

import "fmt"

// assertf panics with a formatted message when cond is false. Internal
// invariants (handler bounds, geometry relations) are checked only in
// builds tagged exfatdebug; see assert_release.go for the production
// no-op, mirroring pkg/prof's build-tag split.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("exfat: assertion failed: "+format, args...))
	}
}
