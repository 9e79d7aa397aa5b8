package exfat

import "testing"

func TestDispatcher_RoutesToMatchingRegion(t *testing.T) {
	var d dispatcher
	d.addRegion(10, func(lba uint32, offset int, buf []byte) {
		for i := range buf {
			buf[i] = 1
		}
	})
	d.addRegion(20, func(lba uint32, offset int, buf []byte) {
		for i := range buf {
			buf[i] = 2
		}
	})

	buf := make([]byte, 4)
	d.read(5, 0, buf)
	if buf[0] != 1 {
		t.Errorf("lba=5: buf[0] = %d, want 1", buf[0])
	}
	d.read(15, 0, buf)
	if buf[0] != 2 {
		t.Errorf("lba=15: buf[0] = %d, want 2", buf[0])
	}
}

func TestDispatcher_ZeroFillsPastLastRegion(t *testing.T) {
	var d dispatcher
	d.addRegion(10, func(lba uint32, offset int, buf []byte) {
		for i := range buf {
			buf[i] = 0xFF
		}
	})
	buf := []byte{9, 9, 9}
	d.read(100, 0, buf)
	for i, b := range buf {
		if b != 0 {
			t.Errorf("buf[%d] = %d, want 0", i, b)
		}
	}
}

func TestSectorHandler_SlicesRequestedWindow(t *testing.T) {
	h := sectorHandler(func(lba uint32, full *[SectorSize]byte) {
		for i := range full {
			full[i] = byte(i)
		}
	})
	buf := make([]byte, 8)
	h(0, 100, buf)
	for i, b := range buf {
		if want := byte(100 + i); b != want {
			t.Errorf("buf[%d] = %d, want %d", i, b, want)
		}
	}
}

func TestZeroHandler(t *testing.T) {
	buf := []byte{1, 2, 3}
	zeroHandler(0, 0, buf)
	for i, b := range buf {
		if b != 0 {
			t.Errorf("buf[%d] = %d, want 0", i, b)
		}
	}
}
