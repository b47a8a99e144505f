// Package mjr implements the on-disk framing of structured media
// recordings: a fixed magic marker, a one-time JSON info record with a
// 16-bit length prefix, and a stream of frame blocks. The package is pure
// encode/decode logic; it performs no I/O and keeps no state.
package mjr

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
)

const (
	// FileMagic is the first 8 bytes of every recording file, written at
	// creation time, before any frame.
	FileMagic = "MJR00002"
	// FrameMarker introduces every frame block.
	FrameMarker = "MEET"

	// FrameHeaderSize is marker (4) + relative timestamp (4) + length (2).
	FrameHeaderSize = 10
	// DataTimestampSize is the absolute wall-clock prefix of data payloads.
	DataTimestampSize = 8

	// MaxPayloadSize is the largest audio/video payload a frame can carry.
	MaxPayloadSize = math.MaxUint16
	// MaxDataPayloadSize is the largest data payload; the length field
	// also covers the prepended absolute timestamp.
	MaxDataPayloadSize = math.MaxUint16 - DataTimestampSize
)

// Info is the one-time metadata record written before the first frame.
// Field order is fixed; optional fields are omitted when absent.
type Info struct {
	Type        string            `json:"t"`            // "a", "v" or "d"
	Codec       string            `json:"c"`            // media codec
	FMTP        string            `json:"f,omitempty"`  // codec-specific parameters
	Description string            `json:"d,omitempty"`  // stream description
	Extensions  map[string]string `json:"x,omitempty"`  // extension id -> name
	Created     int64             `json:"s"`            // creation time, microseconds
	FirstFrame  int64             `json:"u"`            // first frame time, microseconds
	RED         int               `json:"or,omitempty"` // RED payload type, audio only
	Encrypted   bool              `json:"e,omitempty"`  // end-to-end encrypted media
}

// EncodeInfo renders the info record as its 2-byte big-endian length prefix
// followed by the JSON text. The record must fit the 16-bit length field.
func EncodeInfo(info Info) ([]byte, error) {
	text, err := json.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("marshal info record: %w", err)
	}
	if len(text) > math.MaxUint16 {
		return nil, fmt.Errorf("info record too large: %d bytes", len(text))
	}
	out := make([]byte, 2+len(text))
	binary.BigEndian.PutUint16(out, uint16(len(text)))
	copy(out[2:], text)
	return out, nil
}

// EncodeFrameHeader renders a frame block header: the fixed marker, the
// relative timestamp in milliseconds since the first frame, and the length
// field. For data frames size must already include DataTimestampSize.
func EncodeFrameHeader(elapsedMS uint32, size uint16) [FrameHeaderSize]byte {
	var hdr [FrameHeaderSize]byte
	copy(hdr[:4], FrameMarker)
	binary.BigEndian.PutUint32(hdr[4:8], elapsedMS)
	binary.BigEndian.PutUint16(hdr[8:10], size)
	return hdr
}

// EncodeDataTimestamp renders the absolute wall-clock prefix of a data
// payload, in microseconds since the Unix epoch.
func EncodeDataTimestamp(us int64) [DataTimestampSize]byte {
	var ts [DataTimestampSize]byte
	binary.BigEndian.PutUint64(ts[:], uint64(us))
	return ts
}
