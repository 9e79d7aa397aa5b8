// Package memdev models the device-side memory regions the synthesizer's
// static files expose read-only: SRAM, flash, and boot ROM. Each region is a
// byte-addressable, mutex-protected buffer standing in for live device
// memory — on an actual microcontroller this would be a direct pointer into
// flash/SRAM, not a copy, but the synthesizer's only contract with it is
// ReadAt(addr, buf).
package memdev
