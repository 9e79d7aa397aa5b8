package nameenc

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

var codec = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// MaxNameCodeUnits is the longest file name exFAT's 8-bit secondary entry
// count can address: 17 name entries * 15 code units each.
const MaxNameCodeUnits = 255

// Encode converts s to little-endian UTF-16 bytes, as exFAT stores every
// name field. Returns an error if s contains a code point with no UTF-16
// representation or exceeds MaxNameCodeUnits once encoded.
func Encode(s string) ([]byte, error) {
	enc := codec.NewEncoder()
	b, err := enc.Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("nameenc: encode %q: %w", s, err)
	}
	if len(b)/2 > MaxNameCodeUnits {
		return nil, fmt.Errorf("nameenc: %q exceeds %d UTF-16 code units", s, MaxNameCodeUnits)
	}
	return b, nil
}

// Decode converts little-endian UTF-16 bytes back to a UTF-8 string, used by
// tests verifying the round trip through the on-disk name entries.
func Decode(b []byte) (string, error) {
	dec := codec.NewDecoder()
	out, err := dec.Bytes(b)
	if err != nil {
		return "", fmt.Errorf("nameenc: decode: %w", err)
	}
	return string(out), nil
}

// EncodeLabel encodes s for the volume-label directory entry, truncating to
// at most 11 UTF-16 code units as the entry's CharacterCount field allows.
func EncodeLabel(s string) ([]byte, error) {
	b, err := Encode(s)
	if err != nil {
		return nil, err
	}
	const maxLabelUnits = 11
	if len(b)/2 > maxLabelUnits {
		b = b[:maxLabelUnits*2]
	}
	return b, nil
}
