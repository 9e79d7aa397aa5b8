package exfat

import "encoding/binary"

// Boot sector field offsets, the standard exFAT VBR layout.
const (
	bsOffJump          = 0
	bsOffFileSystemName = 3
	bsOffMustBeZero    = 11 // 53 bytes
	bsOffPartitionOff  = 64
	bsOffVolumeLength  = 72
	bsOffFATOffset     = 80
	bsOffFATLength     = 84
	bsOffClusterHeap   = 88
	bsOffClusterCount  = 92
	bsOffRootDirFirst  = 96
	bsOffVolumeSerial  = 100
	bsOffFSRevision    = 104
	bsOffVolumeFlags   = 106
	bsOffBytesPerSecShift = 108
	bsOffSecPerClusShift  = 109
	bsOffNumberOfFATs     = 110
	bsOffDriveSelect      = 111
	bsOffPercentInUse     = 112
	bsOffReserved         = 113 // 7 bytes
	bsOffBootCode         = 120
	bsOffSignature        = 510

	bytesPerSectorShift    = 9 // log2(512)
	sectorsPerClusterShift = 3 // log2(8)
)

// renderBootSector writes the 512-byte main/backup boot sector.
func renderBootSector(buf []byte, g *Geometry, serial uint32) {
	for i := range buf {
		buf[i] = 0
	}
	buf[0], buf[1], buf[2] = 0xEB, 0x76, 0x90
	copy(buf[bsOffFileSystemName:], "EXFAT   ")
	// bsOffMustBeZero..bsOffPartitionOff-1 already zero.
	binary.LittleEndian.PutUint64(buf[bsOffVolumeLength:], uint64(g.VolumeLength))
	binary.LittleEndian.PutUint32(buf[bsOffFATOffset:], g.FATOffset)
	binary.LittleEndian.PutUint32(buf[bsOffFATLength:], g.FATLength)
	binary.LittleEndian.PutUint32(buf[bsOffClusterHeap:], g.ClusterHeapOffset)
	binary.LittleEndian.PutUint32(buf[bsOffClusterCount:], g.ClusterCount)
	binary.LittleEndian.PutUint32(buf[bsOffRootDirFirst:], g.RootDirFirstCluster)
	binary.LittleEndian.PutUint32(buf[bsOffVolumeSerial:], serial)
	binary.LittleEndian.PutUint16(buf[bsOffFSRevision:], 0x0100)
	binary.LittleEndian.PutUint16(buf[bsOffVolumeFlags:], 0)
	buf[bsOffBytesPerSecShift] = bytesPerSectorShift
	buf[bsOffSecPerClusShift] = sectorsPerClusterShift
	buf[bsOffNumberOfFATs] = 1
	buf[bsOffDriveSelect] = 0
	buf[bsOffPercentInUse] = 0
	// reserved and boot code already zero.
	buf[bsOffSignature], buf[bsOffSignature+1] = 0x55, 0xAA
}

// renderExtendedBootSector writes an all-zero extended boot sector with
// only the 0x55 0xAA signature at the end.
func renderExtendedBootSector(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	buf[bsOffSignature], buf[bsOffSignature+1] = 0x55, 0xAA
}

// renderOEMParameterSector writes an all-zero OEM parameter sector.
func renderOEMParameterSector(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

// renderChecksumSector fills buf with the 32-bit VBR checksum replicated
// every 4 bytes across the whole sector.
func renderChecksumSector(buf []byte, checksum uint32) {
	for i := 0; i+4 <= len(buf); i += 4 {
		binary.LittleEndian.PutUint32(buf[i:], checksum)
	}
}
