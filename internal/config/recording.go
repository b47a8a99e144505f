package config

import "strings"

// Environment keys for the recording settings.
const (
	EnvTempNames      = "MJREC_TEMP_NAMES"
	EnvTempExtension  = "MJREC_TEMP_EXTENSION"
	EnvWriteSidecar   = "MJREC_WRITE_SIDECAR"
	EnvProtectedPaths = "MJREC_PROTECTED_PATHS"
)

// DefaultTempExtension is appended to filenames while a recording is being
// written, when temporary naming is enabled.
const DefaultTempExtension = "tmp"

// Recording holds the process-wide recording settings. It is loaded once at
// startup and threaded into the recorder factory, never read from a global.
type Recording struct {
	// TempNames appends TempExtension to filenames while writing; the
	// suffix is stripped via rename at successful close.
	TempNames bool
	// TempExtension is the suffix used when TempNames is enabled, without
	// the leading dot.
	TempExtension string
	// WriteSidecar writes a JSON metadata file next to the recording at
	// close.
	WriteSidecar bool
	// ProtectedPaths lists directory prefixes recordings may never be
	// written into.
	ProtectedPaths []string
}

// RecordingFromEnv loads the recording settings from the environment.
func RecordingFromEnv() Recording {
	ext := strings.TrimPrefix(ParseString(EnvTempExtension, DefaultTempExtension), ".")
	if ext == "" {
		ext = DefaultTempExtension
	}
	return Recording{
		TempNames:      ParseBool(EnvTempNames, false),
		TempExtension:  ext,
		WriteSidecar:   ParseBool(EnvWriteSidecar, false),
		ProtectedPaths: ParseList(EnvProtectedPaths, nil),
	}
}
