package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupPrometheus_SkipsNilCollectors(t *testing.T) {
	extra := prometheus.NewCounter(prometheus.CounterOpts{Name: "extra_total", Help: "extra"})
	reg := SetupPrometheus(nil, extra, nil)
	require.NotNil(t, reg)

	extra.Inc()
	count, err := testutil.GatherAndCount(reg, "extra_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestHandler_ServesManagerMetrics(t *testing.T) {
	reg := SetupPrometheus()
	m := NewManager("notes", "main", reg)
	m.GaugeLifeSignal.Set(1)
	m.CounterNoteMutations.WithLabelValues("create").Add(2)
	m.GaugeNotes.WithLabelValues("pending").Set(3)

	rr := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "notes_main_life_signal 1")
	assert.Contains(t, body, `notes_main_note_mutations{op="create"} 2`)
	assert.Contains(t, body, `notes_main_notes_current{state="pending"} 3`)
	assert.True(t, strings.Contains(body, "go_goroutines"))
}

func TestNewTestManagerAndRegistry(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()
	m.CounterRateLimitedRequests.Inc()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterRateLimitedRequests))
	count, err := testutil.GatherAndCount(reg, "notes_test_server_rate_limited_requests")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
