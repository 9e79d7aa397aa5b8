//go:build !exfatdebug

package exfat

// assertf is a no-op in production builds; see assert_debug.go.
func assertf(cond bool, format string, args ...any) {}
