package exfat

import (
	"time"

	"github.com/ardnew/usbexfat/memdev"
)

// memoryBackedContent builds a ContentFunc that reads straight through to a
// live memory region. Because the cluster assignments for memory-backed
// files are chosen so that a cluster's LBA*SectorSize equals the region's
// device address, the dispatcher's content-dispatch arithmetic already
// produces the right fileOffset; this callback only has to forward it.
func memoryBackedContent(provider memdev.Provider) ContentFunc {
	return func(fileOffset int64, buf []byte) {
		if err := provider.ReadAt(uint32(fileOffset), buf); err != nil {
			for i := range buf {
				buf[i] = 0
			}
		}
	}
}

// newMemoryBackedFile constructs the static FileRecord for one of the three
// memory-backed files (boot ROM, SRAM, flash), at a fixed cluster chosen by
// configuration rather than by the bump allocator: its content never
// changes shape, and its placement must satisfy the address-alignment
// invariant, something only the caller (who knows the device's real memory
// map) can guarantee.
func newMemoryBackedFile(nameUTF16LE []byte, firstCluster uint32, sizeBytes int, provider memdev.Provider, at time.Time) *FileRecord {
	return &FileRecord{
		NameUTF16LE:  nameUTF16LE,
		FirstCluster: firstCluster,
		ClusterCount: ClustersForSize(int64(sizeBytes)),
		Size:         int64(sizeBytes),
		Created:      at,
		Modified:     at,
		Content:      memoryBackedContent(provider),
	}
}

// partitionFile constructs a read-only FileRecord for one named flash
// partition, as reported by the partition enumerator collaborator. It has
// FirstCluster zero: callers register it through Registry.Add, which
// assigns it a cluster range in the dynamic region, since a partition's
// backing address in flash has no fixed relationship to its cluster
// assignment (unlike the three whole-region memory-backed files).
func partitionFile(nameUTF16LE []byte, flashBase uint32, sizeBytes int, flash memdev.Provider, at time.Time) *FileRecord {
	return &FileRecord{
		NameUTF16LE: nameUTF16LE,
		Size:        int64(sizeBytes),
		Created:     at,
		Modified:    at,
		Content: func(fileOffset int64, buf []byte) {
			if err := flash.ReadAt(flashBase+uint32(fileOffset), buf); err != nil {
				for i := range buf {
					buf[i] = 0
				}
			}
		},
	}
}
