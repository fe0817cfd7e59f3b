package http

import (
	"net/http"
	"time"

	"github.com/GriffinCanCode/unitconv/backend/internal/api/middleware"
	"github.com/GriffinCanCode/unitconv/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/unitconv/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/unitconv/backend/internal/service"
	"github.com/GriffinCanCode/unitconv/backend/internal/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultDiscoverLimit = 5
	maxDiscoverLimit     = 50
)

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *service.Registry
	metrics  *monitoring.Metrics
	logger   *logging.Logger
	version  string
	started  time.Time
}

// NewHandlers creates a new handler set. metrics may be nil.
func NewHandlers(registry *service.Registry, metrics *monitoring.Metrics, logger *logging.Logger, version string) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{
		registry: registry,
		metrics:  metrics,
		logger:   logger,
		version:  version,
		started:  time.Now(),
	}
}

// Register mounts every HTTP route on r
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	// Service management
	r.GET("/services", h.ListServices)
	r.POST("/services/discover", h.DiscoverServices)
	r.POST("/services/execute", h.ExecuteService)

	// Conversions
	r.GET("/conversions", h.ListConversions)
	r.GET("/conversions/:id", h.Convert)
	r.POST("/conversions/:id/batch", h.BatchConvert)

	// Metrics
	r.GET("/metrics", h.Prometheus)
	r.GET("/metrics/json", h.MetricsJSON)
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "unitconv",
		"version": h.version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"version":          h.version,
		"uptime_seconds":   time.Since(h.started).Seconds(),
		"service_registry": h.registry.Stats(),
	})
}

// ListServices lists all available services
func (h *Handlers) ListServices(c *gin.Context) {
	var category *types.Category
	if categoryStr := c.Query("category"); categoryStr != "" {
		cat := types.Category(categoryStr)
		if cat != types.CategoryConversion && cat != types.CategorySystem {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category: " + categoryStr})
			return
		}
		category = &cat
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.List(category),
		"stats":    h.registry.Stats(),
	})
}

// DiscoverServices ranks services and tools against a free-text intent
func (h *Handlers) DiscoverServices(c *gin.Context) {
	var req types.DiscoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultDiscoverLimit
	}
	if limit > maxDiscoverLimit {
		limit = maxDiscoverLimit
	}

	c.JSON(http.StatusOK, gin.H{
		"query":    req.Message,
		"services": h.registry.Discover(req.Message, limit),
		"tools":    h.registry.DiscoverTools(req.Message, limit),
	})
}

// ExecuteService executes a service tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.execute(c, req.ToolID, req.Params, req.ClientID)
}

// execute runs a tool through the registry and writes the result.
// Tool-level failures are still 200 with success=false.
func (h *Handlers) execute(c *gin.Context, toolID string, params map[string]interface{}, clientID *string) {
	reqID := middleware.GetRequestID(c)
	appCtx := &types.Context{ClientID: clientID, Transport: "http"}
	if reqID != "" {
		appCtx.RequestID = &reqID
	}

	result, err := h.registry.Execute(c.Request.Context(), toolID, params, appCtx)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case c.Request.Context().Err() != nil:
			status = http.StatusRequestTimeout
		case result != nil:
			// Registry-level rejection: malformed id or unknown service
			status = http.StatusNotFound
		}

		h.logger.Warn("tool execution failed",
			zap.String("tool_id", toolID),
			zap.String("request_id", reqID),
			zap.Error(err))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result.JSONSafe())
}
