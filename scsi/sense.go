package scsi

// Sense keys, a small subset of SPC-4 relevant to a read-only volume.
const (
	SenseNoSense        = 0x00
	SenseNotReady       = 0x02
	SenseIllegalRequest  = 0x05
	SenseUnitAttention  = 0x06
	SenseDataProtect    = 0x07
)

// Additional Sense Codes (ASC) used by the synthesizer and its collaborators.
const (
	ASCNoAdditionalInfo      = 0x00
	ASCLBAOutOfRange         = 0x21
	ASCWriteProtected        = 0x27
	ASCNotReadyToReadyChange = 0x28
	ASCMediumNotPresent      = 0x3A
)

// Sense bundles a sense key with its additional sense code pair, the unit
// the transport collaborator reports back to the host in a REQUEST SENSE
// reply or encodes into a CHECK CONDITION status.
type Sense struct {
	Key  uint8
	ASC  uint8
	ASCQ uint8
}

// String renders the sense triplet the way it appears in SCSI traces.
func (s Sense) String() string {
	const hex = "0123456789ABCDEF"
	buf := [8]byte{hex[s.Key>>4], hex[s.Key&0xF], '/', hex[s.ASC>>4], hex[s.ASC&0xF], '/', hex[s.ASCQ>>4], hex[s.ASCQ&0xF]}
	return string(buf[:])
}

// NoSense reports a clean, error-free sense state.
func NoSense() Sense { return Sense{SenseNoSense, ASCNoAdditionalInfo, 0} }

// UnitAttentionMediaChanged is raised after content_changed; it tells the
// host its cache of the volume may be stale and it should re-read.
func UnitAttentionMediaChanged() Sense {
	return Sense{SenseUnitAttention, ASCNotReadyToReadyChange, 0}
}

// WriteProtected is the sense accompanying every CHECK CONDITION returned
// for WRITE(10/12/16), MODE SELECT, UNMAP, and FORMAT UNIT.
func WriteProtected() Sense {
	return Sense{SenseDataProtect, ASCWriteProtected, 0}
}

// MediumNotPresent signals a missing medium to TEST UNIT READY / READ
// CAPACITY callers; the synthesizer itself never raises this (its medium
// always exists), but collaborators may reuse the constant.
func MediumNotPresent() Sense {
	return Sense{SenseNotReady, ASCMediumNotPresent, 0}
}
