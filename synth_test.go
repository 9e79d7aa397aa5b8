package exfat

import (
	"errors"
	"testing"
	"time"

	"github.com/ardnew/usbexfat/memdev"
)

func testSynthConfig() Config {
	return Config{
		Geometry:   validGeometryConfig(),
		Options:    DefaultOptions(),
		Vendor:     "ACME",
		Product:    "SynthDisk",
		Revision:   "1.0",
		Now:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNew_MinimalConfig(t *testing.T) {
	s, err := New(testSynthConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if len(s.allFiles()) != 2 { // STDOUT.LOG + TAIL.LOG always present
		t.Errorf("len(allFiles()) = %d, want 2", len(s.allFiles()))
	}
}

func TestNew_WithMemoryBackedFiles(t *testing.T) {
	cfg := testSynthConfig()
	cfg.Options.BootROM = MemoryFileConfig{Enabled: true, FileName: "BOOTROM.BIN", SizeBytes: 4096, StartCluster: cfg.Geometry.DynamicStartCluster - 1}
	cfg.BootROM = memdev.NewRegion("bootrom", 4096)
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if len(s.static) != 1 {
		t.Fatalf("len(static) = %d, want 1", len(s.static))
	}
}

func TestNew_RejectsEmptyFileName(t *testing.T) {
	cfg := testSynthConfig()
	cfg.Options.Changing = ChangingFileConfig{Enabled: true, FileName: "", SizeBytes: 16}
	if _, err := New(cfg); err == nil {
		t.Error("New() error = nil, want ErrEmptyName")
	}
}

func TestNew_RejectsNameTooLong(t *testing.T) {
	cfg := testSynthConfig()
	long := make([]byte, 256)
	for i := range long {
		long[i] = 'A'
	}
	cfg.Options.Changing = ChangingFileConfig{Enabled: true, FileName: string(long), SizeBytes: 16}
	_, err := New(cfg)
	if !errors.Is(err, ErrNameTooLong) {
		t.Errorf("New() error = %v, want ErrNameTooLong", err)
	}
}

func TestNew_RejectsOverlappingStaticRegions(t *testing.T) {
	cfg := testSynthConfig()
	start := cfg.Geometry.DynamicStartCluster - 1
	cfg.Options.BootROM = MemoryFileConfig{Enabled: true, FileName: "BOOTROM.BIN", SizeBytes: 4096, StartCluster: start}
	cfg.BootROM = memdev.NewRegion("bootrom", 4096)
	cfg.Options.SRAM = MemoryFileConfig{Enabled: true, FileName: "SRAM.BIN", SizeBytes: 4096, StartCluster: start}
	cfg.SRAM = memdev.NewRegion("sram", 4096)
	_, err := New(cfg)
	if !errors.Is(err, ErrRegionOverlap) {
		t.Errorf("New() error = %v, want ErrRegionOverlap", err)
	}
}

func TestNew_RejectsStaticRegionOverlappingFixedMetadata(t *testing.T) {
	cfg := testSynthConfig()
	cfg.Options.BootROM = MemoryFileConfig{Enabled: true, FileName: "BOOTROM.BIN", SizeBytes: 4096, StartCluster: 2}
	cfg.BootROM = memdev.NewRegion("bootrom", 4096)
	_, err := New(cfg)
	if !errors.Is(err, ErrRegionOverlap) {
		t.Errorf("New() error = %v, want ErrRegionOverlap", err)
	}
}

func TestSynthesizer_Read10_BootSectorSignature(t *testing.T) {
	s, err := New(testSynthConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	buf := make([]byte, 2)
	s.Read10(0, 510, buf)
	if buf[0] != 0x55 || buf[1] != 0xAA {
		t.Errorf("boot sector signature = %#x %#x, want 0x55 0xAA", buf[0], buf[1])
	}
}

func TestSynthesizer_Read10_BackupBootSectorMatchesMain(t *testing.T) {
	s, err := New(testSynthConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	main := make([]byte, SectorSize)
	backup := make([]byte, SectorSize)
	s.Read10(0, 0, main)
	s.Read10(12, 0, backup)
	for i := range main {
		if main[i] != backup[i] {
			t.Fatalf("backup boot sector differs at byte %d: %#x != %#x", i, main[i], backup[i])
		}
	}
}

func TestSynthesizer_Read10_ChecksumSectorsAgree(t *testing.T) {
	s, err := New(testSynthConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	main := make([]byte, 4)
	backup := make([]byte, 4)
	s.Read10(11, 0, main)
	s.Read10(23, 0, backup)
	for i := range main {
		if main[i] != backup[i] {
			t.Fatalf("checksum sectors differ at byte %d", i)
		}
	}
}

func TestSynthesizer_Read10_PastVolumeLengthZeroFills(t *testing.T) {
	s, err := New(testSynthConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	buf := []byte{1, 2, 3}
	s.Read10(s.geo.VolumeLength+1000, 0, buf)
	for _, b := range buf {
		if b != 0 {
			t.Errorf("past-volume-length read did not zero-fill: got %d", b)
		}
	}
}

func TestSynthesizer_Write10_RejectedAsReadOnly(t *testing.T) {
	s, err := New(testSynthConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := s.Write10(100, 0, []byte{1}); err == nil {
		t.Error("Write10() error = nil, want ErrWriteProtected")
	}
	if s.IsWritable() {
		t.Error("IsWritable() = true, want false")
	}
}

func TestSynthesizer_SCSI_RejectsWriteLikeCommands(t *testing.T) {
	s, err := New(testSynthConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	var cmd [16]byte
	cmd[0] = 0x2A // WRITE(10)
	_, sense, handled := s.SCSI(cmd, nil)
	if !handled {
		t.Fatal("SCSI(WRITE10) handled = false, want true")
	}
	if sense.Key == 0 {
		t.Errorf("SCSI(WRITE10) sense = %+v, want DATA PROTECT", sense)
	}
}

func TestSynthesizer_SCSI_DefersUnknownCommands(t *testing.T) {
	s, err := New(testSynthConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	var cmd [16]byte
	cmd[0] = 0x00 // TEST UNIT READY, not specially handled by SCSI()
	n, _, handled := s.SCSI(cmd, nil)
	if handled {
		t.Error("SCSI(TEST UNIT READY) handled = true, want false (deferred)")
	}
	if n != -1 {
		t.Errorf("SCSI(TEST UNIT READY) n = %d, want -1", n)
	}
}

func TestSynthesizer_WriteStdout_MakesTailWindowGrow(t *testing.T) {
	s, err := New(testSynthConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	data := make([]byte, 256)
	s.WriteStdout(time.Now(), data)
	if s.stdoutTail.Size == 0 {
		t.Error("tail-window file Size = 0 after WriteStdout, want nonzero")
	}
}
