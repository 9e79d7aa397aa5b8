package exfat

import (
	"time"

	"github.com/ardnew/usbexfat/pkg"
	"github.com/ardnew/usbexfat/ringbuf"
)

// transportChunkSize is the USB transport's typical pull size; the
// tail-window file's exposed window is always a multiple of this so a host
// reading in its natural chunk size never sees a short final read straddle
// a future write.
const transportChunkSize = 64

// stdoutFiles owns the ring buffer shared by the two standard-output
// virtual files and the pacing state for the on-write notification hook.
type stdoutFiles struct {
	buf       *ringbuf.Buffer
	notify    *notifyState
	cfg       StdoutTailConfig
	lastWrite time.Time
	timer     *time.Timer

	// windowStart is the absolute stream position the tail-window file's
	// current Size counts from, snapshotted each time tailWindowSize is
	// queried (synth.go queries it on every WriteStdout).
	windowStart int64
}

// newStdoutFiles allocates the ring buffer and wires the on-write hook.
// lastWrite starts at the zero time, so the first Write counts as idle; the
// synthesizer never needs a live clock beyond what's passed into its own
// calls.
func newStdoutFiles(capacity int, notify *notifyState, cfg StdoutTailConfig) *stdoutFiles {
	return &stdoutFiles{
		buf:    ringbuf.New(capacity),
		notify: notify,
		cfg:    cfg,
	}
}

// Write pushes bytes from a standard-output producer into the ring buffer
// and synchronously runs the on-write hook: a notification fires
// immediately if the producer has been idle long enough and has
// accumulated enough unread bytes, otherwise a one-shot timer arms to fire
// it unconditionally once Timeout elapses.
func (s *stdoutFiles) Write(now time.Time, p []byte) {
	s.buf.Write(p)
	idle := s.lastWrite.IsZero() || now.Sub(s.lastWrite) >= s.cfg.Delay
	s.lastWrite = now
	unread := s.buf.Unread()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	if idle && unread >= int64(s.cfg.MinAmount) {
		pkg.LogDebug(pkg.ComponentStdout, "notifying immediately", "unread", unread)
		s.notify.contentChanged(false)
		return
	}
	s.timer = time.AfterFunc(s.cfg.Timeout, func() {
		pkg.LogDebug(pkg.ComponentStdout, "notifying after idle timeout")
		s.notify.contentChanged(false)
	})
}

// fullLogContent returns the ContentFunc for the full-log file: reading at
// offset o returns the byte at stream position o if it is still resident,
// else a zero byte standing in for the discarded prefix.
func (s *stdoutFiles) fullLogContent() ContentFunc {
	return func(fileOffset int64, buf []byte) {
		s.buf.ReadAt(fileOffset, buf)
	}
}

// tailWindowSize returns the largest multiple of transportChunkSize not
// exceeding the current unread byte count, the tail-window file's current
// logical size. It also snapshots the window's start position, so
// subsequent content reads of this window resolve to the same absolute
// stream range regardless of how many sector reads the host splits them
// into.
func (s *stdoutFiles) tailWindowSize() int64 {
	s.windowStart = s.buf.ReadCursor()
	unread := s.buf.Unread()
	return (unread / transportChunkSize) * transportChunkSize
}

// tailWindowContent returns the ContentFunc for the tail-window file.
// fileOffset is relative to windowStart; each read advances the ring
// buffer's cursor up to the furthest position it has now served, so bytes
// already delivered to the host are never re-exposed by a later window.
func (s *stdoutFiles) tailWindowContent() ContentFunc {
	return func(fileOffset int64, buf []byte) {
		abs := s.windowStart + fileOffset
		s.buf.ReadAt(abs, buf)
		s.buf.AdvanceTo(abs + int64(len(buf)))
	}
}
