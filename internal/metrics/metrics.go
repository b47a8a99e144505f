// Package metrics exposes prometheus instrumentation for the recording
// write path.
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	framesWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mjrec_frames_written_total",
		Help: "Total number of frames persisted, by medium",
	}, []string{"medium"})

	frameBytes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mjrec_frame_bytes_total",
		Help: "Total payload bytes persisted, by medium",
	}, []string{"medium"})

	writeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mjrec_write_failures_total",
		Help: "Total rejected or failed frame writes, by medium and reason",
	}, []string{"medium", "reason"})

	recordingsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mjrec_recordings_open",
		Help: "Number of recordings currently open for writing",
	})

	recordingsClosed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mjrec_recordings_closed_total",
		Help: "Total number of recordings closed",
	})
)

// IncFrameWritten records one persisted frame with its payload size.
// Label allowlists are intentionally strict to cap cardinality:
// medium ∈ {audio,video,data,unknown}.
func IncFrameWritten(medium string, bytes int) {
	label := normalizeMediumLabel(medium)
	framesWritten.WithLabelValues(label).Inc()
	frameBytes.WithLabelValues(label).Add(float64(bytes))
}

// IncWriteFailure records one rejected or failed frame write.
// reason ∈ {paused,closed,invalid_payload,io,unknown}.
func IncWriteFailure(medium, reason string) {
	writeFailures.WithLabelValues(normalizeMediumLabel(medium), normalizeReasonLabel(reason)).Inc()
}

// RecordingOpened tracks a recording becoming writable.
func RecordingOpened() {
	recordingsOpen.Inc()
}

// RecordingClosed tracks a recording leaving the writable state.
func RecordingClosed() {
	recordingsOpen.Dec()
	recordingsClosed.Inc()
}

func normalizeMediumLabel(medium string) string {
	switch strings.ToLower(strings.TrimSpace(medium)) {
	case "audio", "video", "data":
		return strings.ToLower(strings.TrimSpace(medium))
	default:
		return "unknown"
	}
}

func normalizeReasonLabel(reason string) string {
	switch strings.ToLower(strings.TrimSpace(reason)) {
	case "paused", "closed", "invalid_payload", "io":
		return strings.ToLower(strings.TrimSpace(reason))
	default:
		return "unknown"
	}
}
