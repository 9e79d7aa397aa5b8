package exfat

// buildDispatch assembles the ordered LBA region table: boot region, its
// backup, the FAT, bitmap, up-case table, root directory, then the combined
// dynamic/static file-content region, in exactly the order §3's region
// table describes.
func (s *Synthesizer) buildDispatch() {
	g := s.geo

	s.disp.addRegion(1, s.renderBootSectorAt(0))
	s.disp.addRegion(9, sectorHandler(func(_ uint32, full *[SectorSize]byte) {
		renderExtendedBootSector(full[:])
	}))
	s.disp.addRegion(11, sectorHandler(func(_ uint32, full *[SectorSize]byte) {
		renderOEMParameterSector(full[:])
	}))
	s.disp.addRegion(12, sectorHandler(func(_ uint32, full *[SectorSize]byte) {
		renderChecksumSector(full[:], s.vbrChecksum())
	}))
	s.disp.addRegion(13, s.renderBootSectorAt(12))
	s.disp.addRegion(21, sectorHandler(func(_ uint32, full *[SectorSize]byte) {
		renderExtendedBootSector(full[:])
	}))
	s.disp.addRegion(23, sectorHandler(func(_ uint32, full *[SectorSize]byte) {
		renderOEMParameterSector(full[:])
	}))
	s.disp.addRegion(24, sectorHandler(func(_ uint32, full *[SectorSize]byte) {
		renderChecksumSector(full[:], s.vbrChecksum())
	}))

	if g.FATOffset > 24 {
		s.disp.addRegion(g.FATOffset, zeroHandler)
	}
	s.disp.addRegion(g.FATOffset+g.FATLength, sectorHandler(func(lba uint32, full *[SectorSize]byte) {
		renderFATSector(full[:], lba-g.FATOffset, g)
	}))
	if g.ClusterHeapOffset > g.FATOffset+g.FATLength {
		s.disp.addRegion(g.ClusterHeapOffset, zeroHandler)
	}

	bitmapEnd := g.ClusterToLBA(g.BitmapFirstCluster + g.BitmapClusterCount)
	s.disp.addRegion(bitmapEnd, sectorHandler(func(_ uint32, full *[SectorSize]byte) {
		renderBitmapSector(full[:])
	}))

	upcaseEnd := g.ClusterToLBA(g.UpcaseFirstCluster + g.UpcaseClusterCount)
	upcaseStartLBA := g.ClusterToLBA(g.UpcaseFirstCluster)
	s.disp.addRegion(upcaseEnd, sectorHandler(func(lba uint32, full *[SectorSize]byte) {
		s.upcase.ReadAt(int64(lba-upcaseStartLBA)*SectorSize, full[:])
	}))

	rootDirFirstLBA := g.ClusterToLBA(g.RootDirFirstCluster)
	rootDirEnd := g.ClusterToLBA(g.RootDirFirstCluster + RootDirClusterCount)
	s.disp.addRegion(rootDirFirstLBA+1, sectorHandler(s.renderRootFixedSector))
	s.disp.addRegion(rootDirEnd, sectorHandler(func(lba uint32, full *[SectorSize]byte) {
		s.renderRootFileSlot(lba-rootDirFirstLBA-1, full)
	}))

	s.disp.addRegion(g.VolumeLength, s.fileContentHandler)
}

// renderBootSectorAt returns a handler rendering the main or backup boot
// sector; both are byte-identical apart from their LBA, which this closure
// ignores since the content depends only on geometry and the serial.
func (s *Synthesizer) renderBootSectorAt(_ uint32) handlerFunc {
	return sectorHandler(func(_ uint32, full *[SectorSize]byte) {
		renderBootSector(full[:], s.geo, s.serialNum)
	})
}

// vbrChecksum computes and caches the 32-bit Volume Boot Region checksum by
// rendering sectors 0..10 once and folding them through the direct
// algorithm.
func (s *Synthesizer) vbrChecksum() uint32 {
	s.checksumOnce.Do(func() {
		var sectors [11][SectorSize]byte
		renderBootSector(sectors[0][:], s.geo, s.serialNum)
		for i := 1; i <= 8; i++ {
			renderExtendedBootSector(sectors[i][:])
		}
		renderOEMParameterSector(sectors[9][:])
		renderOEMParameterSector(sectors[10][:])
		s.checksum = vbrChecksumDirect(sectors)
	})
	return s.checksum
}

// renderRootFixedSector renders the root directory's sector 0: the
// volume-label, allocation-bitmap, and up-case-table entries, followed by
// unused markers for the rest of the sector.
func (s *Synthesizer) renderRootFixedSector(_ uint32, full *[SectorSize]byte) {
	renderUnusedSector(full[:])
	g := s.geo
	renderVolumeLabelEntry(full[0:32], s.labelUTF16LE)
	renderBitmapEntry(full[32:64], g.BitmapFirstCluster, ClustersToBytes(g.BitmapClusterCount))
	renderUpcaseEntry(full[64:96], s.upcase.Checksum(), g.UpcaseFirstCluster, uint64(s.upcase.Len()))
}

// renderRootFileSlot renders the directory-set sector for file index slot,
// or a sector of unused markers if no file occupies that slot.
func (s *Synthesizer) renderRootFileSlot(slot uint32, full *[SectorSize]byte) {
	files := s.allFiles()
	if int(slot) >= len(files) {
		renderUnusedSector(full[:])
		return
	}
	renderUnusedSector(full[:])
	set := files[slot].dirSet(s.upcase)
	copy(full[:], set)
}

// fileContentHandler dispatches a cluster-heap LBA falling inside the
// dynamic or static file-content region to the owning file's content
// callback, per §4.7's offset arithmetic, zero-filling anything unmatched
// or past the file's declared size.
func (s *Synthesizer) fileContentHandler(lba uint32, offset int, buf []byte) {
	n := s.geo.LBAToCluster(lba)
	f := findFileForCluster(s.allFiles(), n)
	if f == nil {
		for i := range buf {
			buf[i] = 0
		}
		return
	}
	sectorsFromStart := int64(lba - s.geo.ClusterToLBA(f.FirstCluster))
	fileOffset := sectorsFromStart*SectorSize + int64(offset)

	if fileOffset >= f.Size {
		for i := range buf {
			buf[i] = 0
		}
		return
	}
	avail := f.Size - fileOffset
	if avail >= int64(len(buf)) {
		f.Content(fileOffset, buf)
		return
	}
	f.Content(fileOffset, buf[:avail])
	for i := avail; i < int64(len(buf)); i++ {
		buf[i] = 0
	}
}
