//go:build !linux

package serial

import "errors"

// BoardID is unavailable outside Linux hosts in this simulation; production
// firmware reads a factory-programmed unique ID register instead of a host
// syscall, so a real deployment never hits this path.
func BoardID() ([]byte, error) {
	return nil, errors.New("serial: no board identifier source on this platform")
}
