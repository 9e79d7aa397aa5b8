package exfat

import "fmt"

// Fixed geometry constants.
const (
	// SectorSize is the exFAT sector size S, in bytes. The synthesizer
	// only ever produces 512-byte sectors.
	SectorSize = 512

	// SectorsPerCluster is P, the number of sectors in one cluster.
	SectorsPerCluster = 8

	// ClusterSize is C = S*P, in bytes.
	ClusterSize = SectorSize * SectorsPerCluster

	// DirEntrySize is the fixed size of one exFAT directory entry.
	DirEntrySize = 32

	// RootDirClusterCount is the fixed size of the root directory, in
	// clusters.
	RootDirClusterCount = 3

	// firstDataCluster is the first valid cluster index; exFAT reserves
	// cluster indices 0 and 1.
	firstDataCluster = 2
)

// Geometry derives and validates every sector/cluster/region boundary the
// rest of the synthesizer depends on. It is a pure function of its inputs:
// there is no storage behind it, only arithmetic, computed once at
// construction and reused by every generator.
type Geometry struct {
	VolumeLength      uint32 // V, in sectors
	FATOffset         uint32 // sector offset of FAT0
	FATLength         uint32 // FAT region length, in sectors
	ClusterHeapOffset uint32 // CHO, sector offset of cluster 2
	ClusterCount      uint32 // number of clusters in the heap

	BitmapFirstCluster  uint32
	BitmapClusterCount  uint32
	UpcaseFirstCluster  uint32
	UpcaseClusterCount  uint32
	RootDirFirstCluster uint32

	DynamicStartCluster uint32 // first cluster available to the bump allocator
	DynamicEndCluster   uint32 // exclusive bound of the dynamic region
}

// GeometryConfig is the raw numeric input to NewGeometry, supplied by
// Options after resolving the configuration table.
type GeometryConfig struct {
	VolumeLength        uint32
	FATOffset            uint32
	ClusterHeapOffset    uint32
	UpcaseTableSizeBytes int
	DynamicStartCluster  uint32
	DynamicEndCluster    uint32
}

// NewGeometry derives a Geometry from cfg, validating every layout invariant
// a well-formed volume must satisfy. All region boundaries are sector-aligned by construction,
// since every field here counts either whole sectors or whole clusters.
func NewGeometry(cfg GeometryConfig) (*Geometry, error) {
	var errs []error
	if cfg.ClusterHeapOffset%SectorsPerCluster != 0 {
		errs = append(errs, fmt.Errorf("%w: offset=%d", ErrBadClusterHeapAlign, cfg.ClusterHeapOffset))
	}
	if cfg.FATOffset < 24 {
		errs = append(errs, fmt.Errorf("%w: offset=%d", ErrBadFATOffset, cfg.FATOffset))
	}
	if cfg.DynamicEndCluster <= cfg.DynamicStartCluster {
		errs = append(errs, fmt.Errorf("%w: start=%d end=%d", ErrDynamicRegionEmpty, cfg.DynamicStartCluster, cfg.DynamicEndCluster))
	}

	g := &Geometry{
		VolumeLength:      cfg.VolumeLength,
		FATOffset:         cfg.FATOffset,
		ClusterHeapOffset: cfg.ClusterHeapOffset,
	}

	// Fixed-region layout: bitmap, then up-case table, then root directory,
	// all packed starting at cluster 2, ahead of the caller-supplied dynamic
	// region bounds.
	g.BitmapFirstCluster = firstDataCluster

	// ClusterCount is needed to size the bitmap, but the bitmap's own size
	// is bounded by ClusterCount, which in turn depends on the volume
	// length — resolved by the caller via DynamicEndCluster, which already
	// accounts for every fixed region. We take ClusterCount as "enough
	// clusters to cover the heap up to the volume length" directly from the
	// volume length rather than iterating to a fixed point.
	heapSectors := cfg.VolumeLength - cfg.ClusterHeapOffset
	g.ClusterCount = heapSectors / SectorsPerCluster

	bitmapBytes := (g.ClusterCount + 7) / 8
	g.BitmapClusterCount = clustersFor(bitmapBytes)
	if g.BitmapClusterCount == 0 {
		g.BitmapClusterCount = 1
	}

	g.UpcaseFirstCluster = g.BitmapFirstCluster + g.BitmapClusterCount
	g.UpcaseClusterCount = clustersFor(uint32(cfg.UpcaseTableSizeBytes))
	if g.UpcaseClusterCount == 0 {
		g.UpcaseClusterCount = 1
	}

	g.RootDirFirstCluster = g.UpcaseFirstCluster + g.UpcaseClusterCount

	g.DynamicStartCluster = cfg.DynamicStartCluster
	g.DynamicEndCluster = cfg.DynamicEndCluster

	fixedEnd := g.RootDirFirstCluster + RootDirClusterCount
	if g.DynamicStartCluster < fixedEnd {
		errs = append(errs, fmt.Errorf("exfat: dynamic region start cluster %d overlaps fixed regions ending at %d", g.DynamicStartCluster, fixedEnd))
	}
	if g.DynamicEndCluster > g.ClusterCount+firstDataCluster {
		errs = append(errs, fmt.Errorf("%w: dynamic end %d exceeds cluster count %d", ErrVolumeTooSmall, g.DynamicEndCluster, g.ClusterCount))
	}

	minFATEntries := g.DynamicEndCluster // FAT must at least cover fixed regions; dynamic files need no chain entries
	g.FATLength = sectorsFor((minFATEntries + 1) * 4)
	if g.FATOffset+g.FATLength > g.ClusterHeapOffset {
		errs = append(errs, fmt.Errorf("exfat: FAT region [%d,%d) overlaps cluster heap at %d", g.FATOffset, g.FATOffset+g.FATLength, g.ClusterHeapOffset))
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Errs: errs}
	}
	return g, nil
}

// ClusterToLBA maps a cluster index (>= 2) to its first LBA in the cluster
// heap.
func (g *Geometry) ClusterToLBA(n uint32) uint32 {
	assertf(n >= firstDataCluster, "ClusterToLBA: cluster %d precedes first data cluster %d", n, uint32(firstDataCluster))
	return g.ClusterHeapOffset + (n-firstDataCluster)*SectorsPerCluster
}

// LBAToCluster maps an LBA within the cluster heap to its cluster index.
func (g *Geometry) LBAToCluster(lba uint32) uint32 {
	assertf(lba >= g.ClusterHeapOffset, "LBAToCluster: lba %d precedes cluster heap offset %d", lba, g.ClusterHeapOffset)
	return firstDataCluster + (lba-g.ClusterHeapOffset)/SectorsPerCluster
}

// ClustersToBytes converts a cluster count to a byte count.
func ClustersToBytes(n uint32) uint64 { return uint64(n) * ClusterSize }

// ClustersForSize returns ⌈size/ClusterSize⌉, the number of clusters needed
// to hold size bytes.
func ClustersForSize(size int64) uint32 {
	if size <= 0 {
		return 0
	}
	return uint32((uint64(size) + ClusterSize - 1) / ClusterSize)
}

func clustersFor(bytes uint32) uint32 {
	return (bytes + ClusterSize - 1) / ClusterSize
}

func sectorsFor(bytes uint32) uint32 {
	return (bytes + SectorSize - 1) / SectorSize
}

// ValidationError collects every geometry invariant violated by a single
// configuration, so a caller sees the whole picture instead of one error
// at a time.
type ValidationError struct {
	Errs []error
}

func (e *ValidationError) Error() string {
	if len(e.Errs) == 1 {
		return e.Errs[0].Error()
	}
	msg := fmt.Sprintf("exfat: %d geometry invariants violated:", len(e.Errs))
	for _, err := range e.Errs {
		msg += "\n  - " + err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() []error { return e.Errs }
