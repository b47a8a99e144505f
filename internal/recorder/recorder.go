// Package recorder persists timestamped media and data frames to a single
// append-only structured file, inline on a live delivery path. One recorder
// owns one medium and one file; post-processing into playable containers
// happens elsewhere.
package recorder

import (
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/mediabridge/mjrec/internal/mjr"
	"github.com/mediabridge/mjrec/internal/rtp"
)

// Recorder writes one recording file. It is safe for concurrent use by
// multiple holders; see Ref, Release and Destroy for the ownership rules.
type Recorder struct {
	mu sync.Mutex

	dir      string
	filename string // current on-disk name, including any temp suffix
	medium   Medium
	codec    string
	fmtp     string

	// Mutable until the info record is written.
	description string
	extensions  map[int]string
	encrypted   bool
	redPayload  int

	file *os.File

	created    time.Time // wall clock, set at construction
	started    time.Time // monotonic anchor, set at first frame write
	frames     int64
	frameBytes int64

	ctx rtp.SwitchingContext

	// One-shot latches, readable without the lock.
	header    atomic.Bool
	writable  atomic.Bool
	paused    atomic.Bool
	destroyed atomic.Bool
	refs      atomic.Int32

	tempSuffix string // "." + configured extension, or "" when disabled
	sidecar    bool
	clock      func() time.Time
	log        zerolog.Logger
}

// Medium returns the recorder's medium.
func (r *Recorder) Medium() Medium {
	return r.medium
}

// Filename returns the recording's current on-disk name. After a successful
// close with temporary naming enabled, the temp suffix is already stripped.
func (r *Recorder) Filename() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filename
}

// Directory returns the target directory, empty when recording into the
// working directory.
func (r *Recorder) Directory() string {
	return r.dir
}

// Writable reports whether the recorder still accepts frames. Lock-free.
func (r *Recorder) Writable() bool {
	return r.writable.Load()
}

// Paused reports whether the recorder is paused. Lock-free.
func (r *Recorder) Paused() bool {
	return r.paused.Load()
}

// HeaderWritten reports whether the info record has been persisted and the
// static metadata is immutable. Lock-free.
func (r *Recorder) HeaderWritten() bool {
	return r.header.Load()
}

// SetExtension records that the protocol extension with the given id was in
// use under the given name. Ids are constrained to 1..15; mutation is
// rejected once the info record is written.
func (r *Recorder) SetExtension(id int, name string) error {
	if id < 1 || id > 15 {
		return ErrInvalidExtensionID
	}
	if name == "" {
		return ErrInvalidExtensionID
	}
	if r.header.Load() {
		return ErrHeaderWritten
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.header.Load() {
		return ErrHeaderWritten
	}
	if r.extensions == nil {
		r.extensions = make(map[int]string)
	}
	r.extensions[id] = name
	return nil
}

// SetDescription sets the human-readable stream description. Once the info
// record is written the call is a silent no-op, not an error.
func (r *Recorder) SetDescription(description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.header.Load() {
		return
	}
	r.description = description
}

// SetRED records the redundancy-encoding payload type hint for audio
// streams. Rejected once the info record is written.
func (r *Recorder) SetRED(payloadType int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.header.Load() {
		return ErrHeaderWritten
	}
	r.redPayload = payloadType
	return nil
}

// SetEncrypted marks the recorded media as end-to-end encrypted. Rejected
// once the info record is written.
func (r *Recorder) SetEncrypted() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.header.Load() {
		return ErrHeaderWritten
	}
	r.encrypted = true
	return nil
}

// infoRecord assembles the info record from the recorder's static metadata.
// Caller holds the lock.
func (r *Recorder) infoRecord(firstFrame time.Time) mjr.Info {
	info := mjr.Info{
		Type:        r.medium.Tag(),
		Codec:       r.codec,
		FMTP:        r.fmtp,
		Description: r.description,
		Created:     r.created.UnixMicro(),
		FirstFrame:  firstFrame.UnixMicro(),
		Encrypted:   r.encrypted,
	}
	if len(r.extensions) > 0 {
		info.Extensions = make(map[string]string, len(r.extensions))
		for id, name := range r.extensions {
			info.Extensions[strconv.Itoa(id)] = name
		}
	}
	if r.medium == MediumAudio && r.redPayload > 0 {
		info.RED = r.redPayload
	}
	return info
}
