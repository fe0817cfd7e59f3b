package ws

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/GriffinCanCode/unitconv/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/unitconv/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/unitconv/backend/internal/providers/conversion"
	"github.com/GriffinCanCode/unitconv/backend/internal/service"
	"github.com/GriffinCanCode/unitconv/backend/internal/shared/id"
	"github.com/GriffinCanCode/unitconv/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	maxMessageSize = 64 * 1024
	executeTimeout = 10 * time.Second
	writeTimeout   = 5 * time.Second
)

// Client message types
const (
	msgExecute = "execute"
	msgList    = "list"
	msgPing    = "ping"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is open for the REST API as well
	},
}

// Handler manages WebSocket connections
type Handler struct {
	registry *service.Registry
	metrics  *monitoring.Metrics
	logger   *logging.Logger
}

// NewHandler creates a new WebSocket handler. metrics may be nil.
func NewHandler(registry *service.Registry, metrics *monitoring.Metrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{
		registry: registry,
		metrics:  metrics,
		logger:   logger.Component("ws"),
	}
}

// HandleConnection upgrades the request and serves messages until the
// client disconnects. Messages on one connection are handled in order.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	clientID := id.NewClientID().String()
	conn.SetReadLimit(maxMessageSize)

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	reqCtx := c.Request.Context()
	log := h.logger.With(zap.String("client_id", clientID))
	log.Debug("client connected")

	if err := h.send(conn, map[string]interface{}{
		"type":      "system",
		"message":   "Connected to unitconv",
		"client_id": clientID,
	}); err != nil {
		log.Debug("WebSocket write error", zap.Error(err))
		return
	}

	for {
		var msg types.WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("WebSocket read error", zap.Error(err))
			}
			break
		}
		h.record("in", messageLabel(msg.Type))

		if err := h.dispatch(reqCtx, conn, clientID, msg); err != nil {
			log.Debug("WebSocket write error", zap.Error(err))
			break
		}
	}

	log.Debug("client disconnected")
}

// dispatch answers one message. The returned error is a write failure.
func (h *Handler) dispatch(reqCtx context.Context, conn *websocket.Conn, clientID string, msg types.WSMessage) error {
	switch msg.Type {
	case msgExecute:
		return h.handleExecute(reqCtx, conn, clientID, msg)
	case msgList:
		return h.send(conn, map[string]interface{}{
			"type":        "conversions",
			"id":          msg.ID,
			"conversions": conversion.Catalog(),
		})
	case msgPing:
		return h.send(conn, map[string]interface{}{"type": "pong", "id": msg.ID})
	default:
		return h.sendError(conn, msg.ID, "unknown message type: "+msg.Type)
	}
}

// messageLabel maps client-chosen types onto a fixed label set
func messageLabel(msgType string) string {
	switch msgType {
	case msgExecute, msgList, msgPing:
		return msgType
	default:
		return "unknown"
	}
}

func (h *Handler) handleExecute(reqCtx context.Context, conn *websocket.Conn, clientID string, msg types.WSMessage) error {
	if msg.ToolID == "" {
		return h.sendError(conn, msg.ID, "tool_id required")
	}

	ctx, cancel := context.WithTimeout(reqCtx, executeTimeout)
	defer cancel()

	reqID := msg.ID
	if reqID == "" {
		reqID = id.NewRequestID().String()
	}
	appCtx := &types.Context{RequestID: &reqID, ClientID: &clientID, Transport: "ws"}

	result, err := h.registry.Execute(ctx, msg.ToolID, msg.Params, appCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return h.sendError(conn, msg.ID, "execution timed out")
		}
		return h.sendError(conn, msg.ID, err.Error())
	}

	safe := result.JSONSafe()
	return h.send(conn, map[string]interface{}{
		"type":    "result",
		"id":      msg.ID,
		"tool_id": msg.ToolID,
		"success": safe.Success,
		"data":    safe.Data,
		"error":   safe.Error,
	})
}

func (h *Handler) send(conn *websocket.Conn, data map[string]interface{}) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if t, ok := data["type"].(string); ok {
		h.record("out", t)
	}
	return conn.WriteJSON(data)
}

func (h *Handler) sendError(conn *websocket.Conn, msgID, message string) error {
	return h.send(conn, map[string]interface{}{
		"type":      "error",
		"id":        msgID,
		"message":   message,
		"timestamp": time.Now().Unix(),
	})
}

func (h *Handler) record(direction, msgType string) {
	if h.metrics != nil {
		h.metrics.RecordWSMessage(direction, msgType)
	}
}
