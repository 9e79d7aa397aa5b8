package exfat

import "time"

// MemoryFileConfig configures one of the three static memory-backed files
// (boot ROM, SRAM, flash image).
type MemoryFileConfig struct {
	Enabled      bool
	FileName     string // e.g. "BOOTROM.BIN"
	SizeBytes    int
	StartCluster uint32 // chosen so ClusterToLBA(StartCluster)*SectorSize == device base address
}

// PartitionsConfig configures the flash-partition file family: up to
// MaxFiles named regions of flash, each surfaced as a dynamic root-directory
// slot populated from a partition enumerator at startup.
type PartitionsConfig struct {
	Enabled           bool
	MaxFiles          int
	NamesStorageBytes int // budget for partition name storage, informational
}

// ChangingFileConfig configures a demo file whose content callback varies
// per read, useful for exercising the change-notification protocol without
// real device activity.
type ChangingFileConfig struct {
	Enabled   bool
	FileName  string
	SizeBytes int
}

// StdoutTailConfig configures the unit-attention pacing for the tail-window
// standard-output file: a write schedules a notification immediately if the
// producer has been idle at least Delay and has accumulated at least
// MinAmount unread bytes, otherwise a one-shot timer of Timeout fires it
// unconditionally.
type StdoutTailConfig struct {
	MinAmount int
	Delay     time.Duration
	Timeout   time.Duration
}

// Options is the synthesizer's entire configuration surface, resolved once
// at construction and never mutated afterward. Feature gating is expressed
// as conditional registration driven by the Enabled fields, not by
// recompiling with different build tags.
type Options struct {
	VolumeLabelUTF16LE []byte // up to 11 UTF-16LE code units

	SRAM    MemoryFileConfig
	BootROM MemoryFileConfig
	Flash   MemoryFileConfig

	Partitions PartitionsConfig
	Changing   ChangingFileConfig

	DynamicAreaStartCluster uint32
	DynamicAreaEndCluster   uint32
	MaxDynamicFiles         int

	UAMinDelay time.Duration
	StdoutTail StdoutTailConfig
}

// DefaultOptions returns an Options value with the pacing defaults the
// reference firmware ships: a 200ms minimum gap between UA 0x28
// notifications, and tail-window batching tuned for a 64-byte USB transport
// chunk.
func DefaultOptions() Options {
	return Options{
		UAMinDelay: 200 * time.Millisecond,
		StdoutTail: StdoutTailConfig{
			MinAmount: 64,
			Delay:     500 * time.Millisecond,
			Timeout:   2 * time.Second,
		},
		MaxDynamicFiles: 16,
	}
}
