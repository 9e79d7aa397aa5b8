// Package exfat synthesizes a read-only exFAT volume, sector by sector, on
// demand: every LBA a host reads is computed from compile-time geometry
// tables and live pointers into device memory, never from a stored image.
package exfat

import (
	"fmt"
	"sync"
	"time"
	"unicode/utf16"

	"github.com/ardnew/usbexfat/memdev"
	"github.com/ardnew/usbexfat/nameenc"
	"github.com/ardnew/usbexfat/pkg"
	"github.com/ardnew/usbexfat/scsi"
)

// PartitionInfo is one entry the partition enumerator collaborator reports:
// a named flash region exposed as a dynamic root-directory file.
type PartitionInfo struct {
	NameUTF16LE []byte
	FirstPage   uint32
	SizeBytes   int
}

// Synthesizer is the owned value holding every piece of state the exFAT
// read path depends on: geometry, the up-case table, the static and dynamic
// file lists, the region dispatch table, and the change-notification
// bitmask. Nothing here is file-scope global state; a SCSI boundary adapter
// holds a reference to one instance.
type Synthesizer struct {
	geo    *Geometry
	upcase *upcaseTable

	registry *Registry
	static   []*FileRecord // whole-region memory-backed files, fixed clusters

	disp   dispatcher
	notify *notifyState
	stdout *stdoutFiles

	stdoutFull *FileRecord
	stdoutTail *FileRecord

	serialNum    uint32
	labelUTF16LE []byte

	checksumOnce sync.Once
	checksum     uint32

	inquiry scsi.Inquiry
}

// Config bundles everything New needs beyond Options: the resolved
// geometry, the live memory providers for static files, and the
// partition/board-identity collaborators the synthesizer has no other way
// to reach.
type Config struct {
	Geometry GeometryConfig
	Options  Options

	BoardSerial uint32 // pre-derived via the serial package

	SRAM    memdev.Provider
	BootROM memdev.Provider
	Flash   memdev.Provider

	FlashPageSizeBytes int
	Partitions         []PartitionInfo

	ChangingFileContent ContentFunc

	Vendor, Product, Revision string

	Now time.Time
}

// New builds a Synthesizer from cfg: it derives geometry, builds the
// up-case table, registers every configured static and dynamic file, and
// assembles the LBA dispatch table. It returns the same aggregated
// [ValidationError] NewGeometry would, plus any registration error the
// configured files trigger.
func New(cfg Config) (*Synthesizer, error) {
	geo, err := NewGeometry(cfg.Geometry)
	if err != nil {
		return nil, err
	}

	s := &Synthesizer{
		geo:          geo,
		upcase:       newUpcaseTable(),
		registry:     NewRegistry(geo.DynamicStartCluster, geo.DynamicEndCluster, cfg.Options.MaxDynamicFiles),
		serialNum:    cfg.BoardSerial,
		labelUTF16LE: cfg.Options.VolumeLabelUTF16LE,
		notify:       newNotifyState(cfg.Options.UAMinDelay),
		inquiry:      scsi.NewInquiry(true, cfg.Vendor, cfg.Product, cfg.Revision),
	}
	s.stdout = newStdoutFiles(4096, s.notify, cfg.Options.StdoutTail)

	if cfg.Options.BootROM.Enabled {
		name, encErr := requireName(cfg.Options.BootROM.FileName)
		if encErr != nil {
			return nil, encErr
		}
		s.static = append(s.static, newMemoryBackedFile(name, cfg.Options.BootROM.StartCluster, cfg.Options.BootROM.SizeBytes, cfg.BootROM, cfg.Now))
	}
	if cfg.Options.SRAM.Enabled {
		name, encErr := requireName(cfg.Options.SRAM.FileName)
		if encErr != nil {
			return nil, encErr
		}
		s.static = append(s.static, newMemoryBackedFile(name, cfg.Options.SRAM.StartCluster, cfg.Options.SRAM.SizeBytes, cfg.SRAM, cfg.Now))
	}
	if cfg.Options.Flash.Enabled {
		name, encErr := requireName(cfg.Options.Flash.FileName)
		if encErr != nil {
			return nil, encErr
		}
		s.static = append(s.static, newMemoryBackedFile(name, cfg.Options.Flash.StartCluster, cfg.Options.Flash.SizeBytes, cfg.Flash, cfg.Now))
	}

	if err := validateStaticRegions(geo, s.static); err != nil {
		return nil, err
	}

	if cfg.Options.Partitions.Enabled {
		max := cfg.Options.Partitions.MaxFiles
		for i, p := range cfg.Partitions {
			if i >= max {
				pkg.LogWarn(pkg.ComponentRegistry, "partition enumerator returned more entries than configured", "max", max)
				break
			}
			base := p.FirstPage * uint32(cfg.FlashPageSizeBytes)
			rec := partitionFile(p.NameUTF16LE, base, p.SizeBytes, cfg.Flash, cfg.Now)
			if err := s.registry.Add(rec, int64(p.SizeBytes)); err != nil {
				return nil, err
			}
		}
	}

	if cfg.Options.Changing.Enabled {
		name, encErr := requireName(cfg.Options.Changing.FileName)
		if encErr != nil {
			return nil, encErr
		}
		rec := &FileRecord{
			NameUTF16LE: name,
			Size:        int64(cfg.Options.Changing.SizeBytes),
			Created:     cfg.Now,
			Modified:    cfg.Now,
			Content:     cfg.ChangingFileContent,
		}
		if err := s.registry.Add(rec, int64(cfg.Options.Changing.SizeBytes)); err != nil {
			return nil, err
		}
	}

	// The full-log and tail-window standard-output files are always
	// present; they are what makes the change-notification protocol
	// observable at all.
	fullLog, encErr := requireName("STDOUT.LOG")
	if encErr != nil {
		return nil, encErr
	}
	fullRec := &FileRecord{NameUTF16LE: fullLog, Created: cfg.Now, Modified: cfg.Now, Content: s.stdout.fullLogContent()}
	if err := s.registry.Add(fullRec, 1<<20); err != nil {
		return nil, err
	}
	tailName, encErr := requireName("TAIL.LOG")
	if encErr != nil {
		return nil, encErr
	}
	tailRec := &FileRecord{NameUTF16LE: tailName, Created: cfg.Now, Modified: cfg.Now, Content: s.stdout.tailWindowContent()}
	if err := s.registry.Add(tailRec, 1<<20); err != nil {
		return nil, err
	}
	s.stdoutFull, s.stdoutTail = fullRec, tailRec

	s.buildDispatch()
	return s, nil
}

// requireName is a small helper gating an empty configured name, since an
// enabled file with no name is a configuration mistake the caller should
// see immediately rather than have it silently render an unnamed entry.
func requireName(name string) ([]byte, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if units := len(utf16.Encode([]rune(name))); units > nameenc.MaxNameCodeUnits {
		return nil, fmt.Errorf("%w: %q is %d code units", ErrNameTooLong, name, units)
	}
	enc, err := nameenc.Encode(name)
	if err != nil {
		return nil, err
	}
	return enc, nil
}

// validateStaticRegions checks that every fixed-placement memory-backed
// file (boot ROM, SRAM, flash) occupies a cluster range that overlaps
// neither the fixed metadata regions (bitmap, up-case table, root
// directory) nor another fixed-placement file. Dynamic files never hit
// this path: Registry.Add's bump allocator makes overlap structurally
// impossible for them.
func validateStaticRegions(geo *Geometry, static []*FileRecord) error {
	fixedEnd := geo.RootDirFirstCluster + RootDirClusterCount
	for i, f := range static {
		first, end := f.ClusterRange()
		if first < fixedEnd {
			return fmt.Errorf("%w: %q [%d,%d) overlaps fixed metadata region ending at %d",
				ErrRegionOverlap, string(f.NameUTF16LE), first, end, fixedEnd)
		}
		if end > geo.DynamicStartCluster {
			return fmt.Errorf("%w: %q [%d,%d) overlaps the dynamic region starting at %d",
				ErrRegionOverlap, string(f.NameUTF16LE), first, end, geo.DynamicStartCluster)
		}
		for _, other := range static[:i] {
			oFirst, oEnd := other.ClusterRange()
			if first < oEnd && oFirst < end {
				return fmt.Errorf("%w: %q [%d,%d) overlaps %q [%d,%d)",
					ErrRegionOverlap, string(f.NameUTF16LE), first, end, string(other.NameUTF16LE), oFirst, oEnd)
			}
		}
	}
	return nil
}

// allFiles returns the root directory's file slots in the fixed order the
// dispatcher's slot arithmetic depends on: static memory-backed files
// first, then every dynamic registry entry in registration order.
func (s *Synthesizer) allFiles() []*FileRecord {
	dyn := s.registry.Files()
	out := make([]*FileRecord, 0, len(s.static)+len(dyn))
	out = append(out, s.static...)
	out = append(out, dyn...)
	return out
}

// Geometry exposes the resolved, read-only volume geometry.
func (s *Synthesizer) Geometry() *Geometry { return s.geo }

// Files returns every file currently visible in the root directory, static
// and dynamic, in the fixed slot order their directory entries occupy. It
// is the read-only debug surface a filesystem adapter or CLI inspector
// builds its directory listing from.
func (s *Synthesizer) Files() []*FileRecord { return s.allFiles() }

// Read10 implements the §4.1 read contract: it synthesizes len(buf) bytes
// of sector lba starting at the given byte offset.
func (s *Synthesizer) Read10(lba uint32, offset int, buf []byte) {
	s.disp.read(lba, offset, buf)
}

// Inquiry fills the standard INQUIRY response for a write-protected,
// removable disk.
func (s *Synthesizer) Inquiry() scsi.Inquiry { return s.inquiry }

// Capacity returns the volume's block count and block size, as READ
// CAPACITY reports them.
func (s *Synthesizer) Capacity() (blockCount uint32, blockSize uint32) {
	return s.geo.VolumeLength, SectorSize
}

// TestUnitReady implements the second change-notification hook.
func (s *Synthesizer) TestUnitReady(now time.Time) (ready bool, sense scsi.Sense) {
	return s.notify.testUnitReady(now)
}

// PreventAllowMediumRemoval implements the first change-notification hook.
func (s *Synthesizer) PreventAllowMediumRemoval(prevent bool) bool {
	return s.notify.preventAllowMediumRemoval(prevent)
}

// Write10 is unreachable in a correctly behaving host; the volume is
// permanently read-only, so any write attempt fails with the write-protect
// sentinel.
func (s *Synthesizer) Write10(lba uint32, offset int, buf []byte) error {
	pkg.LogWarn(pkg.ComponentSynth, "write10 rejected", "lba", lba)
	return pkg.ErrWriteProtected
}

// IsWritable is always false: the volume never accepts writes.
func (s *Synthesizer) IsWritable() bool { return false }

// ModeSense10 renders the 8-byte MODE SENSE (10) header with the
// write-protect bit set and zero block descriptors, the one SCSI command
// besides INQUIRY/CAPACITY this package renders directly rather than
// leaving to the transport's default handling.
func (s *Synthesizer) ModeSense10(buf []byte) int {
	return scsi.ModeSense10Header{WriteProtect: true}.MarshalTo(buf)
}

// SCSI filters the handful of commands §4.10 singles out: every write-like
// command is rejected with CHECK CONDITION / DATA PROTECT, MODE SENSE (10)
// is rendered directly, and everything else returns -1 to defer to the
// transport's default command handling (the source this design follows
// does the same, and whether unreachable commands should instead report
// "not supported" is left to the transport).
func (s *Synthesizer) SCSI(cmd [16]byte, buf []byte) (n int, sense scsi.Sense, handled bool) {
	op := scsi.Opcode(cmd[0])
	if scsi.IsWriteLike(op) {
		pkg.LogWarn(pkg.ComponentSynth, "rejecting write-like command", "opcode", op)
		return 0, scsi.WriteProtected(), true
	}
	if op == scsi.OpModeSense10 {
		return s.ModeSense10(buf), scsi.NoSense(), true
	}
	return -1, scsi.NoSense(), false
}

// WriteStdout pushes producer bytes into the standard-output ring buffer
// and runs the on-write notification hook, then refreshes the logical sizes
// of the full-log file (total bytes written, capped at its allocated
// capacity) and the tail-window file so the next directory read reports
// them.
func (s *Synthesizer) WriteStdout(now time.Time, p []byte) {
	s.stdout.Write(now, p)
	fullSize := s.stdout.buf.StreamEnd()
	if capacity := s.stdoutFull.Capacity(); fullSize > capacity {
		fullSize = capacity
	}
	if err := s.registry.Update(s.stdoutFull, fullSize, now); err != nil {
		pkg.LogWarn(pkg.ComponentStdout, "full log update failed", "err", err)
	}
	s.refreshTailWindow(now)
}

// refreshTailWindow updates the tail-window file's Size to the
// largest-multiple-of-chunk-size window of currently unread bytes.
func (s *Synthesizer) refreshTailWindow(now time.Time) {
	size := s.stdout.tailWindowSize()
	if err := s.registry.Update(s.stdoutTail, size, now); err != nil {
		pkg.LogWarn(pkg.ComponentStdout, "tail window update failed", "err", err)
	}
}
