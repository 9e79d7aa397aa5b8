package exfat

import (
	"sync/atomic"
	"time"

	"github.com/ardnew/usbexfat/pkg"
	"github.com/ardnew/usbexfat/scsi"
)

// Change-notification bitmask flags.
const (
	needDisallowRemovalFail uint32 = 1 << iota
	needUA28h
)

// notifyState holds the host cache-coherence flags and rate-limit clock
// shared between the SCSI-hook goroutine and any alarm callback that fires
// a notification after an idle period. Both fields are accessed only
// through atomics, so no lock is needed even though two callers touch them
// concurrently.
type notifyState struct {
	flags     atomic.Uint32
	lastUAMs  atomic.Int64
	minDelay  time.Duration
}

// newNotifyState returns a notifyState initialized to the Windows
// workaround: the very first PREVENT ALLOW MEDIUM REMOVAL must be rejected.
func newNotifyState(minDelay time.Duration) *notifyState {
	n := &notifyState{minDelay: minDelay}
	n.flags.Store(needDisallowRemovalFail)
	return n
}

// contentChanged records that synthesized content has changed, arming a
// pending unit-attention notification. hard additionally requests a brief
// USB electrical disconnect/reconnect — a transport-level action this
// package only signals via the returned bool, since the transport itself is
// an external collaborator.
func (n *notifyState) contentChanged(hard bool) (wantsReconnect bool) {
	for {
		old := n.flags.Load()
		if old&needUA28h != 0 {
			break
		}
		if n.flags.CompareAndSwap(old, old|needUA28h) {
			break
		}
	}
	return hard
}

// preventAllowMediumRemoval implements the first SCSI hook: while the
// "disallow removal" workaround flag is set, the first request fails and
// clears the flag; every subsequent request succeeds.
func (n *notifyState) preventAllowMediumRemoval(prevent bool) bool {
	for {
		old := n.flags.Load()
		if old&needDisallowRemovalFail == 0 {
			return true
		}
		if n.flags.CompareAndSwap(old, old&^needDisallowRemovalFail) {
			return false
		}
	}
}

// testUnitReady implements the second SCSI hook. While the UA flag is set
// and at least minDelay has elapsed since the last notification, it clears
// the flag, stamps the rate-limit clock, and reports not-ready with a Unit
// Attention / ASC 0x28 sense. Otherwise it reports ready with no sense.
func (n *notifyState) testUnitReady(now time.Time) (ready bool, sense scsi.Sense) {
	nowMs := now.UnixMilli()
	for {
		old := n.flags.Load()
		if old&needUA28h == 0 {
			return true, scsi.NoSense()
		}
		last := n.lastUAMs.Load()
		if nowMs-last < n.minDelay.Milliseconds() {
			return true, scsi.NoSense()
		}
		if !n.flags.CompareAndSwap(old, old&^needUA28h) {
			continue
		}
		n.lastUAMs.Store(nowMs)
		pkg.LogDebug(pkg.ComponentNotify, "reporting unit attention", "sense", scsi.UnitAttentionMediaChanged().String())
		return false, scsi.UnitAttentionMediaChanged()
	}
}
