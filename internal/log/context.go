package log

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey string

const recordingIDKey ctxKey = "recording_id"

// ContextWithRecordingID stores the provided recording ID in the context.
func ContextWithRecordingID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, recordingIDKey, id)
}

// RecordingIDFromContext extracts the recording ID from context if present.
func RecordingIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(recordingIDKey).(string); ok {
		return v
	}
	return ""
}

// FromContext returns a logger enriched with the recording ID from ctx,
// or the base logger if no ID is present.
func FromContext(ctx context.Context) zerolog.Logger {
	l := Base()
	if id := RecordingIDFromContext(ctx); id != "" {
		l = l.With().Str("recording_id", id).Logger()
	}
	return l
}
