package scsi

// Standard INQUIRY response layout constants (SPC-4).
const (
	InquiryStandardSize      = 36
	InquiryVersionSPC4       = 0x06
	InquiryResponseFormatSPC = 0x02
	InquiryRMB               = 0x80 // removable media bit
	DeviceTypeDisk           = 0x00
)

// Inquiry is the standard INQUIRY response for a read-only direct-access
// block device. Fill and call MarshalTo to produce the on-wire bytes a
// transport collaborator returns for an INQUIRY command.
type Inquiry struct {
	RMB        uint8
	Protect    bool
	VendorID   [8]byte
	ProductID  [16]byte
	ProductRev [4]byte
}

// NewInquiry builds an Inquiry for a removable, write-protected volume with
// the given vendor/product/revision strings, space-padded and truncated to
// fit.
func NewInquiry(removable bool, vendor, product, revision string) Inquiry {
	var inq Inquiry
	if removable {
		inq.RMB = InquiryRMB
	}
	inq.Protect = true
	padInto(inq.VendorID[:], vendor)
	padInto(inq.ProductID[:], product)
	padInto(inq.ProductRev[:], revision)
	return inq
}

// MarshalTo writes the 36-byte standard INQUIRY response into buf, which
// must be at least InquiryStandardSize bytes. Returns the bytes written,
// or 0 if buf is too small.
func (inq Inquiry) MarshalTo(buf []byte) int {
	if len(buf) < InquiryStandardSize {
		return 0
	}
	buf[0] = DeviceTypeDisk
	buf[1] = inq.RMB
	buf[2] = InquiryVersionSPC4
	buf[3] = InquiryResponseFormatSPC
	buf[4] = InquiryStandardSize - 5
	buf[5] = 0
	if inq.Protect {
		buf[5] |= 0x01
	}
	buf[6], buf[7] = 0, 0
	copy(buf[8:16], inq.VendorID[:])
	copy(buf[16:32], inq.ProductID[:])
	copy(buf[32:36], inq.ProductRev[:])
	return InquiryStandardSize
}

func padInto(dst []byte, s string) {
	n := copy(dst, s)
	for ; n < len(dst); n++ {
		dst[n] = ' '
	}
}

// ModeSense10Header is the 8-byte header MODE SENSE (10) returns with zero
// block descriptors, carrying only the write-protect bit the synthesizer
// always sets.
type ModeSense10Header struct {
	WriteProtect bool
}

// MarshalTo writes the 8-byte header into buf.
func (h ModeSense10Header) MarshalTo(buf []byte) int {
	if len(buf) < 8 {
		return 0
	}
	const modeDataLength = 6 // length field excludes itself
	buf[0] = 0
	buf[1] = modeDataLength
	buf[2] = 0
	if h.WriteProtect {
		buf[3] = 0x80
	} else {
		buf[3] = 0
	}
	buf[4], buf[5] = 0, 0 // block descriptor length = 0 (high/low)
	buf[6], buf[7] = 0, 0
	return 8
}
