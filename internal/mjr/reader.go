package mjr

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrBadMagic classifies a file that does not start with FileMagic.
var ErrBadMagic = errors.New("not a recording file")

// ErrBadFrameMarker classifies a frame block with a corrupt marker.
var ErrBadFrameMarker = errors.New("bad frame marker")

// Frame is one decoded frame block.
type Frame struct {
	// Elapsed is the recorded time since the first frame.
	Elapsed time.Duration
	// When is the absolute wall-clock timestamp; data frames only.
	When time.Time
	// Payload is the recorded bytes, without the data timestamp prefix.
	Payload []byte
}

// Reader decodes a recording stream: magic, info record, then frames.
type Reader struct {
	br   *bufio.Reader
	info *Info
	data bool
}

// NewReader wraps r for decoding. ReadInfo must be called before Next.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// ReadInfo consumes the magic marker and the info record.
func (r *Reader) ReadInfo() (Info, error) {
	var magic [8]byte
	if _, err := io.ReadFull(r.br, magic[:]); err != nil {
		return Info{}, fmt.Errorf("read magic: %w", err)
	}
	if !bytes.Equal(magic[:], []byte(FileMagic)) {
		return Info{}, fmt.Errorf("%w: %q", ErrBadMagic, magic)
	}
	var size [2]byte
	if _, err := io.ReadFull(r.br, size[:]); err != nil {
		return Info{}, fmt.Errorf("read info length: %w", err)
	}
	text := make([]byte, binary.BigEndian.Uint16(size[:]))
	if _, err := io.ReadFull(r.br, text); err != nil {
		return Info{}, fmt.Errorf("read info record: %w", err)
	}
	var info Info
	if err := json.Unmarshal(text, &info); err != nil {
		return Info{}, fmt.Errorf("decode info record: %w", err)
	}
	r.info = &info
	r.data = info.Type == "d"
	return info, nil
}

// Next decodes the next frame block, returning io.EOF at a clean end of
// stream. A truncated frame yields io.ErrUnexpectedEOF.
func (r *Reader) Next() (Frame, error) {
	if r.info == nil {
		if _, err := r.ReadInfo(); err != nil {
			return Frame{}, err
		}
	}
	var hdr [FrameHeaderSize]byte
	if _, err := io.ReadFull(r.br, hdr[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, io.EOF
		}
		return Frame{}, fmt.Errorf("read frame header: %w", err)
	}
	if !bytes.Equal(hdr[:4], []byte(FrameMarker)) {
		return Frame{}, fmt.Errorf("%w: %q", ErrBadFrameMarker, hdr[:4])
	}
	frame := Frame{
		Elapsed: time.Duration(binary.BigEndian.Uint32(hdr[4:8])) * time.Millisecond,
	}
	size := int(binary.BigEndian.Uint16(hdr[8:10]))
	if r.data {
		if size < DataTimestampSize {
			return Frame{}, fmt.Errorf("data frame too short: %d bytes", size)
		}
		var ts [DataTimestampSize]byte
		if _, err := io.ReadFull(r.br, ts[:]); err != nil {
			return Frame{}, fmt.Errorf("read data timestamp: %w", err)
		}
		frame.When = time.UnixMicro(int64(binary.BigEndian.Uint64(ts[:])))
		size -= DataTimestampSize
	}
	frame.Payload = make([]byte, size)
	if _, err := io.ReadFull(r.br, frame.Payload); err != nil {
		return Frame{}, fmt.Errorf("read payload: %w", err)
	}
	return frame, nil
}
