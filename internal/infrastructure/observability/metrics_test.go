package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
)

func TestCollector_Recorders(t *testing.T) {
	c := NewCollector("test")

	c.RecordQuestion("bone", "en")
	c.RecordQuestion("", "ar")
	c.SetGraphSize(3, 2)
	c.RecordProviderCall("translate", 10*time.Millisecond, nil)
	c.RecordProviderCall("speech", 10*time.Millisecond, errors.New("boom"))
	c.RecordAudioFile()
	c.BreakerStateChanged("speech", gobreaker.StateClosed, gobreaker.StateOpen)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Questions.WithLabelValues("bone", "en")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Questions.WithLabelValues("fallback", "ar")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.GraphNodes))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.GraphEdges))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ProviderCalls.WithLabelValues("speech", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.AudioFiles))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.BreakerState.WithLabelValues("speech")))
}

func TestCollector_MiddlewareAndHandler(t *testing.T) {
	c := NewCollector("test")

	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", c.Handler())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/health", "200")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test_http_requests_total")
}
