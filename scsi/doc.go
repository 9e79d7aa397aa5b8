// Package scsi provides the SCSI-layer vocabulary the synthesizer needs to
// answer the handful of commands a virtual exFAT volume must speak: sense
// codes for REQUEST SENSE, an INQUIRY response describing a read-only disk,
// and a MODE SENSE (10) header reporting the write-protect bit.
//
// The Bulk-Only Transport framing (CBW/CSW) and the SCSI command dispatch
// loop belong to the transport collaborator and are not implemented here.
package scsi
