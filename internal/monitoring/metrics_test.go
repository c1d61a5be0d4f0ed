package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(RequestsTotal.WithLabelValues("gemini", "generateContent", "200"))

	ObserveRequest("gemini", "generateContent", 200, time.Now().Add(-50*time.Millisecond))

	after := testutil.ToFloat64(RequestsTotal.WithLabelValues("gemini", "generateContent", "200"))
	assert.Equal(t, before+1, after)
}

func TestStreamChunks(t *testing.T) {
	before := testutil.ToFloat64(StreamChunksTotal.WithLabelValues("vertex"))

	StreamChunksTotal.WithLabelValues("vertex").Inc()
	StreamChunksTotal.WithLabelValues("vertex").Inc()

	after := testutil.ToFloat64(StreamChunksTotal.WithLabelValues("vertex"))
	assert.Equal(t, before+2, after)
}

func TestLiveFrames(t *testing.T) {
	before := testutil.ToFloat64(LiveFramesTotal.WithLabelValues("gemini", "sent"))

	LiveFramesTotal.WithLabelValues("gemini", "sent").Inc()

	after := testutil.ToFloat64(LiveFramesTotal.WithLabelValues("gemini", "sent"))
	assert.Equal(t, before+1, after)
}
