package rtp

import (
	"testing"
	"time"

	pionrtp "github.com/pion/rtp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// packet builds a serialized RTP packet with the given header fields, so the
// view is exercised against a real RTP serializer.
func packet(t *testing.T, seq uint16, ts, ssrc uint32) []byte {
	t.Helper()
	p := &pionrtp.Packet{
		Header: pionrtp.Header{
			Version:        2,
			PayloadType:    111,
			SequenceNumber: seq,
			Timestamp:      ts,
			SSRC:           ssrc,
		},
		Payload: []byte{0xde, 0xad, 0xbe, 0xef},
	}
	buf, err := p.Marshal()
	require.NoError(t, err)
	return buf
}

func TestHeaderViewMatchesPion(t *testing.T) {
	buf := packet(t, 4242, 987654321, 0xcafebabe)
	h, err := ParseHeader(buf)
	require.NoError(t, err)

	assert.Equal(t, uint16(4242), h.SequenceNumber())
	assert.Equal(t, uint32(987654321), h.Timestamp())
	assert.Equal(t, uint32(0xcafebabe), h.SSRC())

	h.SetSequenceNumber(1)
	h.SetTimestamp(2)
	h.SetSSRC(3)

	var decoded pionrtp.Packet
	require.NoError(t, decoded.Unmarshal(buf))
	assert.Equal(t, uint16(1), decoded.SequenceNumber)
	assert.Equal(t, uint32(2), decoded.Timestamp)
	assert.Equal(t, uint32(3), decoded.SSRC)
}

func TestParseHeaderShort(t *testing.T) {
	_, err := ParseHeader(make([]byte, 11))
	require.ErrorIs(t, err, ErrShortPacket)
}

func TestUpdateFirstPacketStartsContiguous(t *testing.T) {
	var ctx SwitchingContext
	buf := packet(t, 30000, 500000, 0x11111111)
	h, err := ParseHeader(buf)
	require.NoError(t, err)

	ctx.Update(h, false, time.Now())

	// Whatever the input started at, the output stream starts fresh.
	assert.Equal(t, uint16(1), h.SequenceNumber())
	assert.Equal(t, uint32(0), h.Timestamp())
}

func TestUpdateKeepsInputDeltas(t *testing.T) {
	var ctx SwitchingContext
	now := time.Now()

	first, err := ParseHeader(packet(t, 100, 1000, 0x22222222))
	require.NoError(t, err)
	ctx.Update(first, false, now)

	second, err := ParseHeader(packet(t, 101, 1960, 0x22222222))
	require.NoError(t, err)
	ctx.Update(second, false, now)

	assert.Equal(t, first.SequenceNumber()+1, second.SequenceNumber())
	assert.Equal(t, first.Timestamp()+960, second.Timestamp())
}

func TestUpdateAfterResumeIgnoresGap(t *testing.T) {
	var ctx SwitchingContext
	now := time.Now()

	h, err := ParseHeader(packet(t, 100, 1000, 0x33333333))
	require.NoError(t, err)
	ctx.Update(h, false, now)
	lastSeq := h.SequenceNumber()
	lastTs := h.Timestamp()

	// A long pause: the live stream advanced by minutes, the resume was
	// 20ms ago.
	resumed := now.Add(5 * time.Minute)
	ctx.ArmResets(resumed)
	h2, err := ParseHeader(packet(t, 9100, 15000000, 0x33333333))
	require.NoError(t, err)
	ctx.Update(h2, false, resumed.Add(20*time.Millisecond))

	assert.Equal(t, lastSeq+1, h2.SequenceNumber())
	// Timestamp advanced by ~20ms of audio clock (960 ticks), not by the
	// multi-minute gap.
	gap := h2.Timestamp() - lastTs
	assert.InDelta(t, 960, float64(gap), 96)
}

func TestUpdateSSRCChangeRebases(t *testing.T) {
	var ctx SwitchingContext
	now := time.Now()

	h, err := ParseHeader(packet(t, 55, 7000, 0x44444444))
	require.NoError(t, err)
	ctx.Update(h, true, now)
	lastSeq := h.SequenceNumber()

	h2, err := ParseHeader(packet(t, 20000, 90000000, 0x55555555))
	require.NoError(t, err)
	ctx.Update(h2, true, now)

	assert.Equal(t, lastSeq+1, h2.SequenceNumber())
}

func TestUpdateSequenceWraps(t *testing.T) {
	var ctx SwitchingContext
	now := time.Now()

	h, err := ParseHeader(packet(t, 65535, 1000, 0x66666666))
	require.NoError(t, err)
	ctx.Update(h, false, now)

	h2, err := ParseHeader(packet(t, 0, 1960, 0x66666666))
	require.NoError(t, err)
	ctx.Update(h2, false, now)

	assert.Equal(t, h.SequenceNumber()+1, h2.SequenceNumber())
}
