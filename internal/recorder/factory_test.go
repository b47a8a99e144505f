package recorder

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediabridge/mjrec/internal/config"
	"github.com/mediabridge/mjrec/internal/mjr"
)

// makePacket builds a minimal RTP packet buffer with the given header fields.
func makePacket(seq uint16, ts, ssrc uint32, payloadLen int) []byte {
	buf := make([]byte, 12+payloadLen)
	buf[0] = 0x80
	binary.BigEndian.PutUint16(buf[2:4], seq)
	binary.BigEndian.PutUint32(buf[4:8], ts)
	binary.BigEndian.PutUint32(buf[8:12], ssrc)
	for i := 12; i < len(buf); i++ {
		buf[i] = byte(i)
	}
	return buf
}

func newTestFactory(t *testing.T, cfg config.Recording) *Factory {
	t.Helper()
	return NewFactory(cfg)
}

func TestResolveCodec(t *testing.T) {
	tests := []struct {
		codec string
		want  Medium
	}{
		{"opus", MediumAudio},
		{"OPUS", MediumAudio},
		{"multiopus", MediumAudio},
		{"g711", MediumAudio},
		{"pcmu", MediumAudio},
		{"pcma", MediumAudio},
		{"g722", MediumAudio},
		{"l16", MediumAudio},
		{"l16-48", MediumAudio},
		{"vp8", MediumVideo},
		{"vp9", MediumVideo},
		{"h264", MediumVideo},
		{"H264", MediumVideo},
		{"av1", MediumVideo},
		{"h265", MediumVideo},
		{"text", MediumData},
		{"binary", MediumData},
	}
	for _, tt := range tests {
		medium, err := ResolveCodec(tt.codec)
		require.NoError(t, err, tt.codec)
		assert.Equal(t, tt.want, medium, tt.codec)
	}

	_, err := ResolveCodec("")
	assert.ErrorIs(t, err, ErrMissingCodec)
	_, err = ResolveCodec("mp3")
	assert.ErrorIs(t, err, ErrUnsupportedCodec)
}

func TestNewUnsupportedCodecCreatesNoFile(t *testing.T) {
	dir := t.TempDir()
	f := newTestFactory(t, config.Recording{})

	_, err := f.New(Options{Directory: dir, Codec: "mp3", Filename: "rec"})
	require.ErrorIs(t, err, ErrUnsupportedCodec)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNewWritesMagicAtConstruction(t *testing.T) {
	dir := t.TempDir()
	f := newTestFactory(t, config.Recording{})

	r, err := f.New(Options{Directory: dir, Codec: "vp8", Filename: "cam"})
	require.NoError(t, err)
	defer r.Destroy()

	data, err := os.ReadFile(filepath.Join(dir, "cam.mjr"))
	require.NoError(t, err)
	assert.Equal(t, []byte(mjr.FileMagic), data)
}

func TestNewGeneratesNameForUnnamedRecording(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	f := newTestFactory(t, config.Recording{})

	r, err := f.New(Options{Codec: "opus"})
	require.NoError(t, err)
	defer r.Destroy()

	assert.Equal(t, MediumAudio, r.Medium())
	assert.True(t, strings.HasSuffix(r.Filename(), ".mjr"), r.Filename())

	data, err := os.ReadFile(r.Filename())
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(data), 8)
	assert.Equal(t, mjr.FileMagic, string(data[:8]))
}

func TestNewCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "rec", "2026")
	f := newTestFactory(t, config.Recording{})

	r, err := f.New(Options{Directory: dir, Codec: "text", Filename: "chat"})
	require.NoError(t, err)
	defer r.Destroy()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewRejectsProtectedPath(t *testing.T) {
	dir := t.TempDir()
	f := newTestFactory(t, config.Recording{ProtectedPaths: []string{dir}})

	_, err := f.New(Options{Directory: dir, Codec: "opus", Filename: "rec"})
	require.ErrorIs(t, err, ErrProtectedPath)
}

func TestNewSplitsFilenameWithPath(t *testing.T) {
	base := t.TempDir()
	f := newTestFactory(t, config.Recording{})

	r, err := f.New(Options{Codec: "opus", Filename: filepath.Join(base, "sub", "rec")})
	require.NoError(t, err)
	defer r.Destroy()

	assert.Equal(t, filepath.Join(base, "sub"), r.Directory())
	assert.Equal(t, "rec.mjr", r.Filename())
	_, err = os.Stat(filepath.Join(base, "sub", "rec.mjr"))
	require.NoError(t, err)
}

func TestNewAppendsTempSuffix(t *testing.T) {
	dir := t.TempDir()
	f := newTestFactory(t, config.Recording{TempNames: true, TempExtension: "tmp"})

	r, err := f.New(Options{Directory: dir, Codec: "opus", Filename: "rec"})
	require.NoError(t, err)
	defer r.Destroy()

	assert.Equal(t, "rec.mjr.tmp", r.Filename())
	_, err = os.Stat(filepath.Join(dir, "rec.mjr.tmp"))
	require.NoError(t, err)
}

func TestNewRejectsFileAsDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "occupied")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	f := newTestFactory(t, config.Recording{})
	_, err := f.New(Options{Directory: file, Codec: "opus", Filename: "rec"})
	require.Error(t, err)
}
