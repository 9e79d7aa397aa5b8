package exfat

import (
	"encoding/binary"
	"time"
)

// Directory entry type bytes.
const (
	entryTypeUnused       = 0x01
	entryTypeVolumeLabel  = 0x83
	entryTypeBitmap       = 0x81
	entryTypeUpcaseTable  = 0x82
	entryTypeFile         = 0x85
	entryTypeStreamExt    = 0xC0
	entryTypeFileName     = 0xC1
)

// Stream-extension GeneralSecondaryFlags bits.
const (
	streamFlagAllocationPossible = 0x01
	streamFlagNoFATChain         = 0x02
)

// File attribute bits used by the synthesizer. Every file the synthesizer
// serves is read-only.
const (
	attrReadOnly = 0x0001
)

// nameUnitsPerEntry is the number of UTF-16 code units packed into one
// 0xC1 file-name entry.
const nameUnitsPerEntry = 15

// packTimestamp encodes t as the 32-bit exFAT timestamp plus its 10ms
// increment, Years before 1980 clamp to 1980.
func packTimestamp(t time.Time) (ts uint32, tenMS uint8, utcOffset uint8) {
	year := t.Year()
	if year < 1980 {
		year = 1980
	}
	ts = uint32(year-1980)&0x7F<<25 |
		uint32(t.Month())&0xF<<21 |
		uint32(t.Day())&0x1F<<16 |
		uint32(t.Hour())&0x1F<<11 |
		uint32(t.Minute())&0x3F<<5 |
		uint32(t.Second()/2)&0x1F
	// Sub-second precision beyond the 2-second granularity is recorded in
	// the 10ms-increment secondary field: up to 199 (1.99s), odd seconds
	// contribute 100.
	tenMS = uint8((t.Second()%2)*100 + t.Nanosecond()/10_000_000)
	return ts, tenMS, 0x80 // 0x80: UTC-valid offset, zero minutes offset
}

// renderVolumeLabelEntry writes the fixed volume-label primary entry.
// labelUTF16LE holds up to 11 UTF-16LE code units; an empty label still
// emits an in-use entry with CharacterCount 0.
func renderVolumeLabelEntry(buf []byte, labelUTF16LE []byte) {
	clear32(buf)
	buf[0] = entryTypeVolumeLabel
	buf[1] = byte(len(labelUTF16LE) / 2)
	copy(buf[2:2+11*2], labelUTF16LE)
}

// renderBitmapEntry writes the fixed allocation-bitmap primary entry.
func renderBitmapEntry(buf []byte, firstCluster uint32, dataLength uint64) {
	clear32(buf)
	buf[0] = entryTypeBitmap
	buf[1] = 0 // BitmapFlags: first (and only) bitmap
	binary.LittleEndian.PutUint32(buf[20:], firstCluster)
	binary.LittleEndian.PutUint64(buf[24:], dataLength)
}

// renderUpcaseEntry writes the fixed up-case-table primary entry.
func renderUpcaseEntry(buf []byte, checksum uint32, firstCluster uint32, dataLength uint64) {
	clear32(buf)
	buf[0] = entryTypeUpcaseTable
	binary.LittleEndian.PutUint32(buf[4:], checksum)
	binary.LittleEndian.PutUint32(buf[20:], firstCluster)
	binary.LittleEndian.PutUint64(buf[24:], dataLength)
}

// renderUnusedSector fills an entire root-directory sector with unused
// markers for slots with no assigned file: bytes past the fixed entries
// read as a run of 0x01.
func renderUnusedSector(buf []byte) {
	for i := range buf {
		buf[i] = entryTypeUnused
	}
}

// buildFileDirSet renders the complete directory set (file entry + stream
// extension + name entries) for one file record into a freshly allocated
// buffer, computing and embedding the set checksum. uc is the volume's
// shared up-case table, needed to compute the name hash.
func buildFileDirSet(f *FileRecord, uc *upcaseTable) []byte {
	nameEntries := (len(f.NameUTF16LE)/2 + nameUnitsPerEntry - 1) / nameUnitsPerEntry
	if nameEntries == 0 {
		nameEntries = 1
	}
	secondaryCount := 1 + nameEntries // stream-ext + name entries
	set := make([]byte, (1+secondaryCount)*DirEntrySize)

	// Primary file entry.
	fe := set[0:DirEntrySize]
	fe[0] = entryTypeFile
	fe[1] = byte(secondaryCount)
	binary.LittleEndian.PutUint16(fe[4:], attrReadOnly)
	cts, ctenms, coff := packTimestamp(f.Created)
	mts, mtenms, moff := packTimestamp(f.Modified)
	binary.LittleEndian.PutUint32(fe[8:], cts)
	binary.LittleEndian.PutUint32(fe[12:], mts)
	binary.LittleEndian.PutUint32(fe[16:], mts) // last-access := last-modified
	fe[20] = ctenms
	fe[21] = mtenms
	fe[22] = coff
	fe[23] = moff
	fe[24] = moff

	// Stream extension entry.
	se := set[DirEntrySize : 2*DirEntrySize]
	se[0] = entryTypeStreamExt
	se[1] = streamFlagAllocationPossible | streamFlagNoFATChain
	se[3] = byte(len(f.NameUTF16LE) / 2)
	hash := nameHashOf(f.NameUTF16LE, uc)
	binary.LittleEndian.PutUint16(se[4:], hash)
	binary.LittleEndian.PutUint64(se[8:], uint64(f.Size))
	binary.LittleEndian.PutUint32(se[20:], f.FirstCluster)
	binary.LittleEndian.PutUint64(se[24:], uint64(f.Size))

	// Name entries.
	name := f.NameUTF16LE
	for i := 0; i < nameEntries; i++ {
		ne := set[(2+i)*DirEntrySize : (3+i)*DirEntrySize]
		ne[0] = entryTypeFileName
		start := i * nameUnitsPerEntry * 2
		end := start + nameUnitsPerEntry*2
		if end > len(name) {
			end = len(name)
		}
		if start < len(name) {
			copy(ne[2:], name[start:end])
		}
		// Padding beyond the name is zero per the stream extension's own
		// NameLength field taking precedence; real-world writers pad with
		// 0x0000, which clear32-on-alloc already gives us.
	}

	chk := setChecksum(set)
	binary.LittleEndian.PutUint16(fe[2:], chk)
	return set
}

// nameHashOf up-cases a copy of the name with the shared table and hashes
// it, round-trip law that the stored hash equals
// hash(up_case(name)).
func nameHashOf(nameUTF16LE []byte, uc *upcaseTable) uint16 {
	upper := make([]byte, len(nameUTF16LE))
	copy(upper, nameUTF16LE)
	uc.upCase(upper)
	return nameHash(upper)
}

func clear32(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
