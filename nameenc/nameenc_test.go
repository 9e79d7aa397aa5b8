package nameenc

import (
	"strings"
	"testing"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tests := []string{"HELLO.TXT", "firmware.bin", "日本語.txt", ""}
	for _, s := range tests {
		b, err := Encode(s)
		if err != nil {
			t.Fatalf("Encode(%q) error = %v", s, err)
		}
		got, err := Decode(b)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if got != s {
			t.Errorf("round trip = %q, want %q", got, s)
		}
	}
}

func TestEncode_RejectsOverlong(t *testing.T) {
	long := strings.Repeat("A", MaxNameCodeUnits+1)
	if _, err := Encode(long); err == nil {
		t.Error("Encode() error = nil, want error for name exceeding MaxNameCodeUnits")
	}
}

func TestEncode_MaxLengthAccepted(t *testing.T) {
	name := strings.Repeat("A", MaxNameCodeUnits)
	if _, err := Encode(name); err != nil {
		t.Errorf("Encode() error = %v, want nil for exactly MaxNameCodeUnits", err)
	}
}

func TestEncodeLabel_Truncates(t *testing.T) {
	b, err := EncodeLabel(strings.Repeat("A", 20))
	if err != nil {
		t.Fatalf("EncodeLabel() error = %v", err)
	}
	if len(b)/2 != 11 {
		t.Errorf("EncodeLabel() code units = %d, want 11", len(b)/2)
	}
}

func TestEncodeLabel_ShortPassesThrough(t *testing.T) {
	b, err := EncodeLabel("DISK")
	if err != nil {
		t.Fatalf("EncodeLabel() error = %v", err)
	}
	if len(b)/2 != 4 {
		t.Errorf("EncodeLabel() code units = %d, want 4", len(b)/2)
	}
}
