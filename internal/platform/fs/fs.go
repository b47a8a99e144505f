// Package fs holds the filesystem collaborators of the recorder: directory
// creation and the protected-path policy.
package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotDirectory classifies an existing path that is not a directory.
// Use errors.Is(err, ErrNotDirectory) instead of string matching.
var ErrNotDirectory = errors.New("path exists but is not a directory")

// EnsureDir checks that path is an existing directory, creating it (and any
// missing parents) if absent.
func EnsureDir(path string) error {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		if !info.IsDir() {
			return fmt.Errorf("%w: %s", ErrNotDirectory, path)
		}
		return nil
	case os.IsNotExist(err):
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", path, err)
		}
		return nil
	default:
		return fmt.Errorf("stat %s: %w", path, err)
	}
}

// ProtectedPathPolicy reports whether a target path must not be written to.
type ProtectedPathPolicy func(path string) bool

// PrefixPolicy builds a ProtectedPathPolicy rejecting any path under one of
// the given directory prefixes. Prefixes are cleaned; matching is
// separator-aware, so "/etc" protects "/etc/passwd" but not "/etcetera".
func PrefixPolicy(prefixes ...string) ProtectedPathPolicy {
	cleaned := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		if p == "" {
			continue
		}
		cleaned = append(cleaned, filepath.Clean(p))
	}
	return func(path string) bool {
		target := filepath.Clean(path)
		for _, prefix := range cleaned {
			if target == prefix {
				return true
			}
			if strings.HasPrefix(target, prefix+string(filepath.Separator)) {
				return true
			}
		}
		return false
	}
}
