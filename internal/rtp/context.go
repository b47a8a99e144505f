package rtp

import "time"

// Media clock rates used to convert paused wall time into timestamp units.
const (
	audioClockRate = 48000
	videoClockRate = 90000
)

// SwitchingContext rewrites sequence numbers and timestamps so the output
// stream stays monotonic and contiguous, whatever gaps or source switches
// the input stream had. The zero value is ready for use.
type SwitchingContext struct {
	lastSSRC uint32

	baseSeq     uint16
	baseSeqPrev uint16
	lastSeq     uint16

	baseTs     uint32
	baseTsPrev uint32
	lastTs     uint32

	seqReset bool
	tsReset  bool
	lastTime time.Time
}

// ArmResets requests a rebase of both sequence number and timestamp on the
// next Update, anchored at now. Called on resume: the next frame continues
// from the last output values plus the time since now, not the full gap.
func (c *SwitchingContext) ArmResets(now time.Time) {
	c.seqReset = true
	c.tsReset = true
	c.lastTime = now
}

// Update rewrites the header's sequence number and timestamp in place so
// they continue the output stream. An SSRC change counts as an upstream
// discontinuity and rebases both values.
func (c *SwitchingContext) Update(h Header, video bool, now time.Time) {
	ssrc := h.SSRC()
	ts := h.Timestamp()
	seq := h.SequenceNumber()

	if ssrc != c.lastSSRC {
		c.lastSSRC = ssrc
		c.tsReset = true
		c.seqReset = true
	}
	if c.tsReset {
		c.tsReset = false
		c.baseTsPrev = c.lastTs
		c.baseTs = ts
		if !c.lastTime.IsZero() {
			rate := int64(audioClockRate)
			if video {
				rate = videoClockRate
			}
			diff := now.Sub(c.lastTime).Nanoseconds() * rate / int64(time.Second)
			if diff <= 0 {
				diff = 1
			}
			c.baseTsPrev += uint32(diff)
			c.lastTs += uint32(diff)
		}
	}
	if c.seqReset {
		c.seqReset = false
		c.baseSeqPrev = c.lastSeq
		c.baseSeq = seq
	}

	c.lastTs = (ts - c.baseTs) + c.baseTsPrev
	c.lastSeq = (seq - c.baseSeq) + c.baseSeqPrev + 1

	h.SetTimestamp(c.lastTs)
	h.SetSequenceNumber(c.lastSeq)
}
