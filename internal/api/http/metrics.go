package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Prometheus serves the exposition format
func (h *Handlers) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "metrics disabled"})
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// MetricsJSON returns a compact snapshot for dashboards
func (h *Handlers) MetricsJSON(c *gin.Context) {
	body := gin.H{
		"timestamp":        time.Now().UTC(),
		"service_registry": h.registry.Stats(),
	}
	if h.metrics != nil {
		body["server"] = h.metrics.Snapshot()
	}
	c.JSON(http.StatusOK, body)
}
