package recorder

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mediabridge/mjrec/internal/metrics"
)

// Pause stops accepting frames until Resume. Edge-triggered: pausing an
// already paused recorder fails.
func (r *Recorder) Pause() error {
	if r == nil {
		return ErrNilRecorder
	}
	if r.paused.CompareAndSwap(false, true) {
		return nil
	}
	return ErrAlreadyPaused
}

// Resume re-enables frame writes and re-arms the continuity rebase, so the
// next accepted frame continues the output stream from where the last one
// left off, independent of how long the pause lasted.
func (r *Recorder) Resume() error {
	if r == nil {
		return ErrNilRecorder
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.paused.CompareAndSwap(true, false) {
		return ErrNotPaused
	}
	if r.medium != MediumData {
		r.ctx.ArmResets(r.clock())
	}
	return nil
}

// Close finalizes the recording and reports the final file size. Only the
// first caller performs the finalize step; later calls observe ErrClosed
// and change nothing. The file handle itself is released when the last
// reference is dropped.
func (r *Recorder) Close() (int64, error) {
	if r == nil {
		return 0, ErrNilRecorder
	}
	if !r.writable.CompareAndSwap(true, false) {
		return 0, ErrClosed
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var size int64
	if r.file != nil {
		if info, err := r.file.Stat(); err == nil {
			size = info.Size()
		}
		r.log.Info().Int64("bytes", size).Str("file", r.filename).Msg("recording closed")
	}
	r.finalizeName()
	if r.sidecar {
		r.writeSidecar(size)
	}
	metrics.RecordingClosed()
	return size, nil
}

// finalizeName strips the temporary suffix via rename. The suffix is
// verified before stripping: if the filename does not actually end with it,
// the original name is kept and the mismatch logged. Caller holds the lock.
func (r *Recorder) finalizeName() {
	if r.tempSuffix == "" {
		return
	}
	final, ok := strings.CutSuffix(r.filename, r.tempSuffix)
	if !ok {
		r.log.Warn().
			Str("file", r.filename).
			Str("suffix", r.tempSuffix).
			Msg("temporary suffix not present, keeping filename")
		return
	}
	oldPath := filepath.Join(r.dir, r.filename)
	newPath := filepath.Join(r.dir, final)
	if err := os.Rename(oldPath, newPath); err != nil {
		r.log.Error().Err(err).Str("from", oldPath).Str("to", newPath).Msg("error renaming recording")
		return
	}
	r.filename = final
	r.log.Info().Str("file", final).Msg("recording renamed")
}

// Ref adds a strong reference for an additional holder. Every Ref must be
// balanced by a Release.
func (r *Recorder) Ref() {
	r.refs.Add(1)
}

// Release drops one reference; the last one closes the recording if still
// open and releases the file handle and all owned state.
func (r *Recorder) Release() {
	if r == nil {
		return
	}
	if r.refs.Add(-1) > 0 {
		return
	}
	if r.writable.Load() {
		_, _ = r.Close()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file != nil {
		_ = r.file.Close()
		r.file = nil
	}
	r.extensions = nil
}

// Destroy marks the recorder for teardown and drops the constructing
// reference. One-shot: later calls change nothing. Deallocation happens
// when the last reference is released.
func (r *Recorder) Destroy() {
	if r == nil || !r.destroyed.CompareAndSwap(false, true) {
		return
	}
	r.Release()
}

// Destroyed reports whether teardown has been requested. Lock-free.
func (r *Recorder) Destroyed() bool {
	return r.destroyed.Load()
}
