package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Output: &buf, Service: "test"})

	logger := WithComponent("recorder")
	logger.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "recorder", entry["component"])
	assert.Equal(t, "hello", entry["message"])
}

func TestRecordingIDRoundTrip(t *testing.T) {
	ctx := ContextWithRecordingID(context.Background(), "rec-42")
	assert.Equal(t, "rec-42", RecordingIDFromContext(ctx))
	assert.Empty(t, RecordingIDFromContext(context.Background()))
}
