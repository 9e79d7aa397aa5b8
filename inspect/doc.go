// Package inspect exposes a synthesized volume's root directory as a
// read-only afero.Fs, for debugging and for the exfatsimd CLI's "ls"/"cat"
// commands: every file in [exfat.Synthesizer.Files] becomes a flat entry
// at the filesystem root, its content read through the same ContentFunc
// callback the real SCSI read path uses.
package inspect
