// Package monitoring exposes prometheus metrics for SDK request accounting.
// Registration is global via promauto; applications embedding the SDK scrape
// them through their own /metrics handler.
package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geminikit_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"dialect", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "geminikit_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		},
		[]string{"dialect", "endpoint"},
	)

	StreamChunksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geminikit_stream_chunks_total",
			Help: "Total number of streamed response chunks",
		},
		[]string{"dialect"},
	)

	UploadChunkRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "geminikit_upload_chunk_retries_total",
			Help: "Total number of retried upload chunks",
		},
	)

	LiveFramesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geminikit_live_frames_total",
			Help: "Total number of live session frames",
		},
		[]string{"dialect", "direction"},
	)
)

// ObserveRequest records one completed unary or streaming request.
func ObserveRequest(dialect, endpoint string, statusCode int, start time.Time) {
	RequestsTotal.WithLabelValues(dialect, endpoint, strconv.Itoa(statusCode)).Inc()
	RequestDuration.WithLabelValues(dialect, endpoint).Observe(time.Since(start).Seconds())
}
