package exfat

import "testing"

func TestUpcaseTable_ChecksumStable(t *testing.T) {
	a := newUpcaseTable()
	b := newUpcaseTable()
	if a.Checksum() != b.Checksum() {
		t.Errorf("two tables disagree on checksum: %#x != %#x", a.Checksum(), b.Checksum())
	}
	if a.Checksum() == 0 {
		t.Error("Checksum() = 0, want nonzero")
	}
}

func TestUpcaseTable_ReadAt_ZeroFillsPastEnd(t *testing.T) {
	tbl := newUpcaseTable()
	dst := make([]byte, 32)
	tbl.ReadAt(int64(tbl.Len()), dst)
	for i, b := range dst {
		if b != 0 {
			t.Fatalf("dst[%d] = %#x, want 0", i, b)
		}
	}
}

func TestUpcaseTable_ReadAt_MatchesBytes(t *testing.T) {
	tbl := newUpcaseTable()
	dst := make([]byte, 8)
	tbl.ReadAt(0, dst)
	for i, b := range dst {
		if b != tbl.bytes[i] {
			t.Fatalf("dst[%d] = %#x, want %#x", i, b, tbl.bytes[i])
		}
	}
}

func TestUpcaseTable_UpCase_LowerToUpper(t *testing.T) {
	tbl := newUpcaseTable()
	name := []byte{'a', 0, 'z', 0, '_', 0, '9', 0}
	tbl.upCase(name)
	want := []byte{'A', 0, 'Z', 0, '_', 0, '9', 0}
	for i := range name {
		if name[i] != want[i] {
			t.Fatalf("upCase result[%d] = %#x, want %#x", i, name[i], want[i])
		}
	}
}
