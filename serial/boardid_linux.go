//go:build linux

package serial

import "golang.org/x/sys/unix"

// BoardID reads the host's kernel/machine identity via uname(2) and returns
// it as raw bytes suitable for FromBoardID. On the reference microcontroller
// this would instead read a factory-programmed unique ID register; uname
// stands in for that on the development host and in simulation.
func BoardID() ([]byte, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return nil, err
	}
	id := make([]byte, 0, len(uts.Nodename)+len(uts.Machine))
	id = appendCString(id, uts.Nodename[:])
	id = appendCString(id, uts.Machine[:])
	return id, nil
}

// appendCString appends the NUL-terminated prefix of a fixed-size uname
// field, whose element type is int8 on some architectures and uint8 on
// others.
func appendCString[T ~int8 | ~uint8](dst []byte, field []T) []byte {
	for _, c := range field {
		if c == 0 {
			break
		}
		dst = append(dst, byte(c))
	}
	return dst
}
