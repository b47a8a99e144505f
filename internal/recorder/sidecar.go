package recorder

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
)

// sidecarRecord is the JSON metadata written next to a finished recording
// when sidecar files are enabled, for library indexing without parsing the
// recording itself.
type sidecarRecord struct {
	Medium     string            `json:"medium"`
	Codec      string            `json:"codec"`
	FMTP       string            `json:"fmtp,omitempty"`
	Text       string            `json:"description,omitempty"`
	Extensions map[string]string `json:"extensions,omitempty"`
	CreatedUS  int64             `json:"created_us"`
	Frames     int64             `json:"frames"`
	Bytes      int64             `json:"payload_bytes"`
	FileBytes  int64             `json:"file_bytes"`
}

// writeSidecar writes the sidecar atomically next to the finalized file.
// Best-effort: failures are logged, never surfaced. Caller holds the lock.
func (r *Recorder) writeSidecar(fileSize int64) {
	info := r.infoRecord(r.created)
	rec := sidecarRecord{
		Medium:     r.medium.String(),
		Codec:      r.codec,
		FMTP:       r.fmtp,
		Text:       r.description,
		Extensions: info.Extensions,
		CreatedUS:  info.Created,
		Frames:     r.frames,
		Bytes:      r.frameBytes,
		FileBytes:  fileSize,
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		r.log.Warn().Err(err).Msg("marshal sidecar")
		return
	}
	base := strings.TrimSuffix(r.filename, FileExtension)
	path := filepath.Join(r.dir, base+".json")
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		r.log.Warn().Err(err).Str("file", path).Msg("write sidecar")
		return
	}
	r.log.Debug().Str("file", path).Msg("sidecar written")
}
