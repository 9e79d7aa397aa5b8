package exfat

// handlerFunc renders len(buf) bytes of one sector starting at byte offset
// offset within that sector. Implementations never cross a sector boundary;
// the dispatcher guarantees offset+len(buf) <= SectorSize before calling.
type handlerFunc func(sectorLBA uint32, offset int, buf []byte)

// region is one entry of the ordered LBA dispatch table: handler covers
// every LBA up to (but not including) end.
type region struct {
	end     uint32
	handler handlerFunc
}

// dispatcher is the ordered region table mapping every LBA in [0, V) to a
// handler, built once at synthesizer construction from the geometry and the
// live file registry. LBAs past the last region, or falling in a gap, read
// as zero.
type dispatcher struct {
	regions []region
}

// addRegion appends a region ending at end (exclusive) to the table. Callers
// must add regions in increasing LBA order; this is an internal builder
// invariant, not something dispatch validates at runtime.
func (d *dispatcher) addRegion(end uint32, h handlerFunc) {
	d.regions = append(d.regions, region{end: end, handler: h})
}

// read implements the read10 contract: 0 <= offset < SectorSize,
// offset+len(buf) <= SectorSize. It locates the handler whose region
// contains lba and invokes it; if no region matches, it zero-fills buf.
func (d *dispatcher) read(lba uint32, offset int, buf []byte) {
	assertf(offset >= 0 && offset+len(buf) <= SectorSize,
		"read: lba=%d offset=%d len=%d violates sector bounds", lba, offset, len(buf))
	for _, r := range d.regions {
		if lba < r.end {
			r.handler(lba, offset, buf)
			return
		}
	}
	for i := range buf {
		buf[i] = 0
	}
}

// sectorHandler adapts a function that renders an entire sector into a
// handlerFunc honoring the offset/length slice the dispatcher passes in.
// render must fill exactly SectorSize bytes starting at sector-relative
// offset 0; sectorHandler then slices out the requested window.
func sectorHandler(render func(sectorLBA uint32, full *[SectorSize]byte)) handlerFunc {
	return func(sectorLBA uint32, offset int, buf []byte) {
		var full [SectorSize]byte
		render(sectorLBA, &full)
		copy(buf, full[offset:offset+len(buf)])
	}
}

// zeroHandler is a handlerFunc that always zero-fills, used for padding
// regions (FAT padding, pre-root padding) that carry no meaningful content
// but still need an explicit entry to keep the region table gap-free and
// self-documenting.
func zeroHandler(_ uint32, _ int, buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
