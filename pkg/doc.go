// Package pkg provides shared utilities for the exFAT synthesizer.
//
// This package contains common functionality used across the synthesizer's
// packages, including:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Sentinel error types for synthesized SCSI command results
//   - Component identifiers for log filtering
//
// The package is designed to have zero external dependencies, relying
// only on the Go standard library.
//
// # Logging
//
// The logging subsystem wraps [log/slog] with synthesizer-specific context:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentSynth, "volume configured", "clusters", 512)
//
// # Errors
//
// Common command errors are defined as sentinel values:
//
//	if errors.Is(err, pkg.ErrWriteProtected) {
//	    // Reject the write-like command with CHECK CONDITION / DATA PROTECT
//	}
package pkg
