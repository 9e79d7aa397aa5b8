// Package nameenc converts UTF-8 strings (volume labels, file names,
// partition names) to the little-endian UTF-16 exFAT stores on disk, and
// back for round-trip tests.
package nameenc
