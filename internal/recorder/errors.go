package recorder

import "errors"

// Construction errors.
var (
	// ErrMissingCodec means no codec name was supplied.
	ErrMissingCodec = errors.New("recorder: missing codec")
	// ErrUnsupportedCodec means the codec is not in the recognized set.
	ErrUnsupportedCodec = errors.New("recorder: unsupported codec")
	// ErrProtectedPath means the target path is rejected by the
	// protected-path policy.
	ErrProtectedPath = errors.New("recorder: target path is protected")
)

// ErrNilRecorder means the operation was invoked on a nil recorder.
var ErrNilRecorder = errors.New("recorder: nil recorder")

// State errors. Each maps to a distinct wrong-lifecycle-state condition and
// never corrupts recorder state.
var (
	// ErrAlreadyPaused means Pause was called on a paused recorder.
	ErrAlreadyPaused = errors.New("recorder: already paused")
	// ErrNotPaused means Resume was called on a recorder that is not paused.
	ErrNotPaused = errors.New("recorder: not paused")
	// ErrPaused means a frame was submitted while the recorder is paused.
	ErrPaused = errors.New("recorder: paused")
	// ErrClosed means the recorder is no longer writable.
	ErrClosed = errors.New("recorder: closed")
	// ErrHeaderWritten means a metadata mutation arrived after the info
	// record was persisted.
	ErrHeaderWritten = errors.New("recorder: info record already written")
	// ErrInvalidExtensionID means an extension id outside 1..15.
	ErrInvalidExtensionID = errors.New("recorder: extension id out of range")
)

// Write errors.
var (
	// ErrEmptyPayload means a nil or zero-length frame payload.
	ErrEmptyPayload = errors.New("recorder: empty payload")
	// ErrInvalidPayload means a payload that cannot be framed, such as an
	// audio/video packet shorter than its protocol header.
	ErrInvalidPayload = errors.New("recorder: invalid payload")
	// ErrPayloadTooLarge means the payload exceeds the frame length field.
	ErrPayloadTooLarge = errors.New("recorder: payload too large")
	// ErrNoFile means the recorder's file is already released.
	ErrNoFile = errors.New("recorder: file not open")
	// ErrWriteFailed wraps a partial or failed disk write of a frame
	// payload; the recorder stays open and the caller may retry or close.
	ErrWriteFailed = errors.New("recorder: frame write failed")
)
