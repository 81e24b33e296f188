package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Playback queue metrics
	queuedSamples = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cwplayer_queued_samples",
		Help: "Samples currently buffered in the playback queue",
	})

	queuedEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cwplayer_queued_entries",
		Help: "Entries currently buffered in the playback queue",
	})

	segmentsEnqueued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cwplayer_segments_enqueued_total",
		Help: "Total number of sound segments enqueued",
	}, []string{"kind"})

	// Stream driver metrics
	underruns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cwplayer_underruns_total",
		Help: "Times the output was fed silence because the queue was empty",
	})

	inputBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cwplayer_input_bytes_total",
		Help: "Total input bytes consumed",
	})

	outputBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cwplayer_output_bytes_total",
		Help: "Total audio bytes pushed to the output sink",
	})

	// Remote keying session metrics
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cwplayer_active_sessions",
		Help: "Number of active keying sessions",
	})

	totalSessions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cwplayer_sessions_total",
		Help: "Total number of keying sessions served",
	})
)

// RecordQueueDepth updates the queue fill gauges.
func RecordQueueDepth(samples, entries int) {
	queuedSamples.Set(float64(samples))
	queuedEntries.Set(float64(entries))
}

// RecordSegmentEnqueued counts one enqueued segment by kind.
func RecordSegmentEnqueued(kind string) {
	segmentsEnqueued.WithLabelValues(kind).Inc()
}

// RecordUnderrun counts one silence substitution. Called from the audio
// path; the underlying counter add is a single atomic operation.
func RecordUnderrun() {
	underruns.Inc()
}

// RecordInputBytes counts consumed input bytes.
func RecordInputBytes(n int) {
	inputBytes.Add(float64(n))
}

// RecordOutputBytes counts bytes pushed to the sink.
func RecordOutputBytes(n int) {
	outputBytes.Add(float64(n))
}

// RecordSessionStart marks a keying session as active.
func RecordSessionStart() {
	activeSessions.Inc()
	totalSessions.Inc()
}

// RecordSessionEnd marks a keying session as finished.
func RecordSessionEnd() {
	activeSessions.Dec()
}
