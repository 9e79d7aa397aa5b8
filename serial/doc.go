// Package serial derives the exFAT volume's 32-bit VolumeSerialNumber from
// a stable per-board identifier, so a device re-mounts under the same
// identity every time it is plugged in. The identifier is read once and
// cached by the caller; this package only implements the read and the
// hash.
package serial
