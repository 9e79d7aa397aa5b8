package scsi

// Opcode is a SCSI command's first byte, the CDB operation code.
type Opcode = uint8

// Operation codes the synthesizer must recognize to answer §4.10's hooks
// and reject write-like commands. This is a small subset of SPC-4/SBC-3,
// not a general SCSI command set.
const (
	OpTestUnitReady       Opcode = 0x00
	OpRequestSense        Opcode = 0x03
	OpInquiry             Opcode = 0x12
	OpModeSelect6         Opcode = 0x15
	OpModeSense6          Opcode = 0x1A
	OpStartStopUnit       Opcode = 0x1B
	OpPreventAllowRemoval Opcode = 0x1E
	OpReadCapacity10      Opcode = 0x25
	OpRead10              Opcode = 0x28
	OpWrite10             Opcode = 0x2A
	OpModeSelect10        Opcode = 0x55
	OpModeSense10         Opcode = 0x5A
	OpUnmap               Opcode = 0x42
	OpWrite12             Opcode = 0xAA
	OpWrite16             Opcode = 0x8A
	OpFormatUnit          Opcode = 0x04
)

// IsWriteLike reports whether op is one of the commands the synthesizer
// must reject as CHECK CONDITION / DATA PROTECT, because it only ever
// serves a read-only volume.
func IsWriteLike(op Opcode) bool {
	switch op {
	case OpWrite10, OpWrite12, OpWrite16, OpModeSelect6, OpModeSelect10, OpUnmap, OpFormatUnit:
		return true
	default:
		return false
	}
}
