package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordChange(t *testing.T) {
	m := New()
	m.RecordChange("church", "deleted")
	m.RecordChange("church", "deleted")
	m.RecordChange("member", "created")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.recordChanges.WithLabelValues("church", "deleted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.recordChanges.WithLabelValues("member", "created")))
}

func TestObserveHTTPDefaultsRoute(t *testing.T) {
	m := New()
	m.ObserveHTTP(http.MethodGet, "", http.StatusNotFound, 3*time.Millisecond)
	m.ObserveHTTP(http.MethodGet, "GET /api/members", http.StatusOK, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "GET /api/members", "200")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordChange("member", "created")
	m.PublishFailed("member")
	m.RateLimited()
	m.LedgerSynced("created", "ok")
	m.ObserveHTTP("GET", "/", 200, time.Second)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.PublishFailed("financial_entry")
	m.LedgerSynced("created", "ok")
	m.RateLimited()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	for _, name := range []string{
		`igreja_amqp_publish_failures_total{entity="financial_entry"} 1`,
		`igreja_worker_ledger_sync_total{action="created",outcome="ok"} 1`,
		`igreja_http_rate_limited_total 1`,
		"go_goroutines",
	} {
		assert.True(t, strings.Contains(text, name), "missing %s", name)
	}
}
