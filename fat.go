package exfat

import "encoding/binary"

// fatEntriesPerSector is the number of 4-byte FAT entries in one sector.
const fatEntriesPerSector = SectorSize / 4

// fatEntry computes the 32-bit FAT entry for cluster index n. Only the
// fixed regions (allocation bitmap, up-case table, root directory) are
// chained; every dynamic and static file uses the "no FAT chain" flag in
// its directory entry, so the FAT need not and does not describe them.
func fatEntry(n uint32, g *Geometry) uint32 {
	switch n {
	case 0:
		return 0xFFFFFFF8
	case 1:
		return 0xFFFFFFFF
	}
	if chained, ok := chainNext(n, g.BitmapFirstCluster, g.BitmapClusterCount); ok {
		return chained
	}
	if chained, ok := chainNext(n, g.UpcaseFirstCluster, g.UpcaseClusterCount); ok {
		return chained
	}
	if chained, ok := chainNext(n, g.RootDirFirstCluster, RootDirClusterCount); ok {
		return chained
	}
	return 0
}

// chainNext returns the FAT entry for cluster n if it falls within
// [first, first+count), chaining to n+1 or terminating the chain with
// 0xFFFFFFFF at the last cluster.
func chainNext(n, first, count uint32) (uint32, bool) {
	if n < first || n >= first+count {
		return 0, false
	}
	if n == first+count-1 {
		return 0xFFFFFFFF, true
	}
	return n + 1, true
}

// renderFATSector writes one 512-byte sector of the FAT region. sectorIndex
// is relative to the start of FAT0 (0 is the first FAT sector). Every
// sector beyond the one containing the fixed-region chains reads as zero.
func renderFATSector(buf []byte, sectorIndex uint32, g *Geometry) {
	base := sectorIndex * fatEntriesPerSector
	for i := uint32(0); i < fatEntriesPerSector; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:], fatEntry(base+i, g))
	}
}
