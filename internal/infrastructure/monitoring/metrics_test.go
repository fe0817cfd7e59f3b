package monitoring

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewMetricsIsolatedRegistries(t *testing.T) {
	a := NewMetrics(prometheus.NewRegistry())
	b := NewMetrics(prometheus.NewRegistry())

	a.RecordConversion("kg_to_lb", "mass")

	assert.Equal(t, 1.0, testutil.ToFloat64(a.ConversionsTotal.WithLabelValues("kg_to_lb", "mass")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.ConversionsTotal.WithLabelValues("kg_to_lb", "mass")))
}

func TestServiceRecording(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordServiceCall("conversion", "kg_to_lb", "success", time.Millisecond)
	m.RecordServiceCall("conversion", "kg_to_lb", "failure", time.Millisecond)
	m.RecordServiceError("conversion", "kg_to_lb", "tool_failure")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ServiceCalls.WithLabelValues("conversion", "kg_to_lb", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ServiceErrors.WithLabelValues("conversion", "kg_to_lb", "tool_failure")))

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.ServiceCalls)
	assert.Equal(t, int64(1), snap.ServiceErrors)
}

func TestSnapshot(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordHTTPRequest("GET", "/health", "200", 10*time.Millisecond, 0, 10)
	m.RecordHTTPRequest("GET", "/conversions/:id", "404", 30*time.Millisecond, 0, 10)
	m.RecordConversion("inch_to_cm", "length")
	m.RecordConversion("inch_to_cm", "length")
	m.IncWSConnections()
	m.IncWSConnections()
	m.DecWSConnections()

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.TotalRequests)
	assert.Equal(t, int64(1), snap.TotalErrors)
	assert.InDelta(t, 20.0, snap.AvgLatencyMS, 0.001)
	assert.Equal(t, int64(1), snap.ActiveConnections)
	assert.Equal(t, int64(2), snap.Conversions["inch_to_cm"])
	assert.GreaterOrEqual(t, snap.UptimeSeconds, 0.0)

	// Snapshot is a copy
	snap.Conversions["inch_to_cm"] = 99
	assert.Equal(t, int64(2), m.Snapshot().Conversions["inch_to_cm"])
}

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/conversions/:id", func(c *gin.Context) {
		c.String(http.StatusOK, c.Param("id"))
	})

	for _, id := range []string{"kg_to_lb", "lb_to_kg"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/conversions/"+id, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/conversions/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestHandlerExposition(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.RecordConversion("hp_to_watts", "power")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.True(t, strings.Contains(text, `unitconv_conversions_total{conversion="hp_to_watts",quantity="power"} 1`))
	assert.True(t, strings.Contains(text, "unitconv_uptime_seconds"))
}

func TestTimerNilMetrics(t *testing.T) {
	timer := NewTimer(nil, "svc", "m")
	assert.GreaterOrEqual(t, timer.Stop("OK"), time.Duration(0))
}
