package recorder

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mediabridge/mjrec/internal/config"
	"github.com/mediabridge/mjrec/internal/log"
	"github.com/mediabridge/mjrec/internal/metrics"
	"github.com/mediabridge/mjrec/internal/mjr"
	"github.com/mediabridge/mjrec/internal/platform/fs"
)

// FileExtension is appended to every recording filename.
const FileExtension = ".mjr"

// Options describes one recording to create.
type Options struct {
	// Directory is the target directory; empty records into Filename's
	// own directory, or the working directory.
	Directory string
	// Codec is the media codec name; required, and determines the medium.
	Codec string
	// FMTP carries optional codec-specific format parameters.
	FMTP string
	// Filename is the base name without the .mjr extension; empty
	// generates a random one.
	Filename string
}

// Factory creates recorders. It carries the process-wide recording settings
// and the filesystem collaborators, so no recorder depends on global state.
type Factory struct {
	cfg     config.Recording
	policy  fs.ProtectedPathPolicy
	newName func() string
	clock   func() time.Time
	log     zerolog.Logger
}

// FactoryOption customises a Factory.
type FactoryOption func(*Factory)

// WithPolicy replaces the protected-path policy.
func WithPolicy(policy fs.ProtectedPathPolicy) FactoryOption {
	return func(f *Factory) { f.policy = policy }
}

// WithNameGenerator replaces the generator used for unnamed recordings.
func WithNameGenerator(gen func() string) FactoryOption {
	return func(f *Factory) { f.newName = gen }
}

// WithClock replaces the wall/monotonic clock source.
func WithClock(clock func() time.Time) FactoryOption {
	return func(f *Factory) { f.clock = clock }
}

// NewFactory builds a Factory from the process recording settings.
func NewFactory(cfg config.Recording, opts ...FactoryOption) *Factory {
	f := &Factory{
		cfg:     cfg,
		policy:  fs.PrefixPolicy(cfg.ProtectedPaths...),
		newName: func() string { return "recording-" + uuid.NewString() },
		clock:   time.Now,
		log:     log.WithComponent("recorder"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// New creates a recording file, writes the magic marker and returns an open
// recorder holding one reference. On failure no recorder is returned and no
// open handle is leaked; a partially created file may remain on disk.
func (f *Factory) New(opts Options) (*Recorder, error) {
	medium, err := ResolveCodec(opts.Codec)
	if err != nil {
		return nil, err
	}

	recDir, recFile := f.resolveTarget(opts.Directory, opts.Filename)
	if recDir != "" {
		if err := fs.EnsureDir(recDir); err != nil {
			return nil, err
		}
	}

	name := recFile
	if name == "" {
		name = f.newName()
	}
	name += FileExtension
	suffix := ""
	if f.cfg.TempNames {
		suffix = "." + f.cfg.TempExtension
		name += suffix
	}

	path := filepath.Join(recDir, name)
	if f.policy != nil && f.policy(path) {
		return nil, fmt.Errorf("%w: %s", ErrProtectedPath, path)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open recording file: %w", err)
	}
	if _, err := file.WriteString(mjr.FileMagic); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("write file magic: %w", err)
	}

	r := &Recorder{
		dir:        recDir,
		filename:   name,
		medium:     medium,
		codec:      opts.Codec,
		fmtp:       opts.FMTP,
		file:       file,
		created:    f.clock(),
		tempSuffix: suffix,
		sidecar:    f.cfg.WriteSidecar,
		clock:      f.clock,
		log: f.log.With().
			Str("file", path).
			Str("medium", medium.String()).
			Logger(),
	}
	r.writable.Store(true)
	r.refs.Store(1)
	metrics.RecordingOpened()
	r.log.Info().Str("codec", opts.Codec).Msg("recording created")
	return r, nil
}

// resolveTarget reconciles the directory and filename options. A filename
// carrying its own path is split when no directory is given; a filename with
// a path combined with an explicit directory is kept as supplied but logged,
// matching the lenient warn-and-continue contract.
func (f *Factory) resolveTarget(dir, filename string) (string, string) {
	if filename == "" {
		return dir, ""
	}
	parent := filepath.Dir(filename)
	base := filepath.Base(filename)
	if dir == "" {
		if parent == "." {
			return "", base
		}
		return parent, base
	}
	if parent != "." || base != filename {
		f.log.Warn().
			Str("dir", dir).
			Str("filename", filename).
			Msg("unsupported combination of directory and filename")
	}
	return dir, filename
}
