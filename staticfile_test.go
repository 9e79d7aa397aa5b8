package exfat

import (
	"io"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/ardnew/usbexfat/memdev"
)

func TestMemoryBackedContent_PassesThrough(t *testing.T) {
	region := memdev.NewRegion("flash", 64)
	if err := region.WriteAt(0, []byte("hello world")); err != nil {
		t.Fatalf("WriteAt() error = %v", err)
	}
	content := memoryBackedContent(region)
	buf := make([]byte, 5)
	content(0, buf)
	if string(buf) != "hello" {
		t.Errorf("content(0) = %q, want %q", buf, "hello")
	}
}

func TestMemoryBackedContent_ZeroFillsOnError(t *testing.T) {
	region := memdev.NewRegion("flash", 4)
	content := memoryBackedContent(region)
	buf := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	content(0, buf)
	for i, b := range buf {
		if b != 0 {
			t.Errorf("buf[%d] = %d, want 0 (past-end read should zero-fill)", i, b)
		}
	}
}

func TestNewMemoryBackedFile(t *testing.T) {
	region := memdev.NewRegion("sram", 4096)
	now := time.Now()
	f := newMemoryBackedFile([]byte("S"), 40, 4096, region, now)
	if f.FirstCluster != 40 {
		t.Errorf("FirstCluster = %d, want 40", f.FirstCluster)
	}
	if f.ClusterCount != 1 {
		t.Errorf("ClusterCount = %d, want 1", f.ClusterCount)
	}
	if f.Size != 4096 {
		t.Errorf("Size = %d, want 4096", f.Size)
	}
}

// TestMemoryBackedContent_ZeroFillsOnProviderError uses a mocked Provider
// to inject a failure mid-file, the case a real I/O fault over a memory
// bus would produce, distinct from the simple out-of-range case above.
func TestMemoryBackedContent_ZeroFillsOnProviderError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := memdev.NewMockProvider(ctrl)
	mock.EXPECT().ReadAt(uint32(512), gomock.Any()).Return(io.ErrUnexpectedEOF)

	content := memoryBackedContent(mock)
	buf := []byte{1, 2, 3}
	content(512, buf)
	for i, b := range buf {
		if b != 0 {
			t.Errorf("buf[%d] = %d, want 0", i, b)
		}
	}
}

func TestPartitionFile_LeavesClusterUnassigned(t *testing.T) {
	flash := memdev.NewRegion("flash", 1<<20)
	if err := flash.WriteAt(0x1000, []byte("partition-data")); err != nil {
		t.Fatalf("WriteAt() error = %v", err)
	}
	f := partitionFile([]byte("P"), 0x1000, 14, flash, time.Now())
	if f.FirstCluster != 0 {
		t.Errorf("FirstCluster = %d, want 0 (assigned later by Registry.Add)", f.FirstCluster)
	}
	buf := make([]byte, 14)
	f.Content(0, buf)
	if string(buf) != "partition-data" {
		t.Errorf("Content(0) = %q, want %q", buf, "partition-data")
	}
}
