package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObserveGenerateDuration(20 * time.Millisecond)
	pr.IncGenerateOutcome(OutcomeWritten)
	pr.IncGenerateOutcome(OutcomeWritten)
	pr.IncGenerateOutcome(OutcomeUnchanged)
	pr.SetGroupPages("Courses", 4)
	pr.IncWatchEvent("content")
	pr.IncContentCheck(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(pr.generateOutcome.WithLabelValues("written")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pr.generateOutcome.WithLabelValues("unchanged")))
	assert.Equal(t, 4.0, testutil.ToFloat64(pr.groupPages.WithLabelValues("Courses")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pr.contentChecks.WithLabelValues("failed")))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, mfs, 5)
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.ObserveGenerateDuration(time.Second)
		pr.IncGenerateOutcome(OutcomeFailed)
		pr.SetGroupPages("x", 1)
		pr.IncWatchEvent("config")
		pr.IncContentCheck(true)
	})
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).IncGenerateOutcome(OutcomeWritten)

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `sitecfg_generate_outcomes_total{outcome="written"} 1`)
}
