package exfat

import "errors"

// Registration and allocation errors.
var (
	// ErrOutOfSpace is returned by Registry.Add when the bump allocator
	// cannot satisfy a file's requested cluster count.
	ErrOutOfSpace = errors.New("exfat: dynamic region out of space")

	// ErrTooManyFiles is returned by Registry.Add when the registry has
	// reached its configured maximum dynamic file count.
	ErrTooManyFiles = errors.New("exfat: too many dynamic files")

	// ErrNotAllocatedTail is returned by Registry.Update when a file's size
	// grows beyond its allocated capacity but the file is not the most
	// recently allocated entry (its range does not abut next_cluster).
	ErrNotAllocatedTail = errors.New("exfat: file is not the allocator tail, cannot grow")

	// ErrNegativeSize is returned when a registration or update requests a
	// negative size.
	ErrNegativeSize = errors.New("exfat: negative size")
)

// Configuration errors, surfaced by NewGeometry/New at construction time.
var (
	ErrBadClusterHeapAlign = errors.New("exfat: cluster heap offset must be a multiple of sectors-per-cluster")
	ErrBadFATOffset        = errors.New("exfat: FAT offset must be >= 24")
	ErrVolumeTooSmall      = errors.New("exfat: volume length too small for geometry")
	ErrDynamicRegionEmpty  = errors.New("exfat: dynamic region bounds are empty or inverted")
	ErrNameTooLong         = errors.New("exfat: file name exceeds 255 UTF-16 code units")
	ErrEmptyName           = errors.New("exfat: configured file name is empty")
	ErrRegionOverlap       = errors.New("exfat: memory-backed file region overlaps another fixed-placement region")
)
