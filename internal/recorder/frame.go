package recorder

import (
	"fmt"
	"time"

	"github.com/mediabridge/mjrec/internal/metrics"
	"github.com/mediabridge/mjrec/internal/mjr"
	"github.com/mediabridge/mjrec/internal/rtp"
)

// SaveFrame persists one frame. The first successful call also writes the
// one-time info record and anchors the recording's relative timestamps.
//
// For audio and video the payload's protocol header (sequence number,
// timestamp, source identifier) is rewritten in place for the duration of
// the write and restored on every exit path, so the caller's buffer is
// byte-identical before and after the call regardless of outcome.
func (r *Recorder) SaveFrame(buf []byte) error {
	if r == nil {
		return ErrNilRecorder
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(buf) == 0 {
		r.countFailure("invalid_payload")
		return ErrEmptyPayload
	}
	if r.file == nil {
		r.countFailure("closed")
		return ErrNoFile
	}
	if !r.writable.Load() {
		r.countFailure("closed")
		return ErrClosed
	}
	if r.paused.Load() {
		r.countFailure("paused")
		return ErrPaused
	}

	sizeField, err := r.frameSize(len(buf))
	if err != nil {
		r.countFailure("invalid_payload")
		return err
	}

	var header rtp.Header
	if r.medium != MediumData {
		header, err = rtp.ParseHeader(buf)
		if err != nil {
			r.countFailure("invalid_payload")
			return fmt.Errorf("%w: %s", ErrInvalidPayload, err)
		}
	}

	now := r.clock()
	if !r.header.Load() {
		if err := r.writeInfoRecord(now); err != nil {
			return err
		}
		r.started = now
		r.header.Store(true)
	}

	// Frame header and data timestamp failures are soft: log and keep
	// writing the remaining bytes of the same frame.
	var elapsed uint32
	if now.After(r.started) {
		elapsed = uint32(now.Sub(r.started).Milliseconds())
	}
	hdr := mjr.EncodeFrameHeader(elapsed, sizeField)
	if _, err := r.file.Write(hdr[:]); err != nil {
		r.log.Warn().Err(err).Msg("short frame header write, expect issues post-processing")
	}
	if r.medium == MediumData {
		ts := mjr.EncodeDataTimestamp(r.clock().UnixMicro())
		if _, err := r.file.Write(ts[:]); err != nil {
			r.log.Warn().Err(err).Msg("short data timestamp write, expect issues post-processing")
		}
	}

	if header != nil {
		seq, ts, ssrc := header.SequenceNumber(), header.Timestamp(), header.SSRC()
		defer func() {
			header.SetSequenceNumber(seq)
			header.SetTimestamp(ts)
			header.SetSSRC(ssrc)
		}()
		r.ctx.Update(header, r.medium == MediumVideo, now)
	}

	if _, err := r.file.Write(buf); err != nil {
		r.countFailure("io")
		r.log.Error().Err(err).Msg("error saving frame")
		return fmt.Errorf("%w: %s", ErrWriteFailed, err)
	}

	r.frames++
	r.frameBytes += int64(len(buf))
	metrics.IncFrameWritten(r.medium.String(), len(buf))
	return nil
}

// frameSize computes the frame length field. Data frames account for the
// prepended absolute timestamp.
func (r *Recorder) frameSize(payloadLen int) (uint16, error) {
	if r.medium == MediumData {
		if payloadLen > mjr.MaxDataPayloadSize {
			return 0, ErrPayloadTooLarge
		}
		return uint16(payloadLen + mjr.DataTimestampSize), nil
	}
	if payloadLen > mjr.MaxPayloadSize {
		return 0, ErrPayloadTooLarge
	}
	return uint16(payloadLen), nil
}

// writeInfoRecord persists the one-time info record. Encoding failure is
// hard; short writes are soft-warned, as the remaining frame bytes may
// still be recoverable in post-processing.
func (r *Recorder) writeInfoRecord(firstFrame time.Time) error {
	encoded, err := mjr.EncodeInfo(r.infoRecord(firstFrame))
	if err != nil {
		return err
	}
	if _, err := r.file.Write(encoded); err != nil {
		r.log.Warn().Err(err).Msg("short info record write, expect issues post-processing")
	}
	return nil
}

func (r *Recorder) countFailure(reason string) {
	metrics.IncWriteFailure(r.medium.String(), reason)
}
