// Package rtp provides a minimal in-place view over RTP packet headers and
// the switching context that keeps recorded sequence numbers and timestamps
// contiguous across pauses and upstream discontinuities.
package rtp

import (
	"encoding/binary"
	"errors"
)

// HeaderSize is the fixed part of an RTP header.
const HeaderSize = 12

// ErrShortPacket classifies a buffer too small to hold an RTP header.
var ErrShortPacket = errors.New("packet shorter than RTP header")

// Header is a view over a caller-owned packet buffer. Setters mutate the
// buffer in place; the caller is responsible for restoring original values
// when the mutation must not outlive a write.
type Header []byte

// ParseHeader validates the buffer length and returns a header view.
func ParseHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return nil, ErrShortPacket
	}
	return Header(buf), nil
}

// SequenceNumber returns the packet sequence number.
func (h Header) SequenceNumber() uint16 {
	return binary.BigEndian.Uint16(h[2:4])
}

// SetSequenceNumber overwrites the packet sequence number.
func (h Header) SetSequenceNumber(seq uint16) {
	binary.BigEndian.PutUint16(h[2:4], seq)
}

// Timestamp returns the packet media timestamp.
func (h Header) Timestamp() uint32 {
	return binary.BigEndian.Uint32(h[4:8])
}

// SetTimestamp overwrites the packet media timestamp.
func (h Header) SetTimestamp(ts uint32) {
	binary.BigEndian.PutUint32(h[4:8], ts)
}

// SSRC returns the synchronization source identifier.
func (h Header) SSRC() uint32 {
	return binary.BigEndian.Uint32(h[8:12])
}

// SetSSRC overwrites the synchronization source identifier.
func (h Header) SetSSRC(ssrc uint32) {
	binary.BigEndian.PutUint32(h[8:12], ssrc)
}
