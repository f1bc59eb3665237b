package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"evalgo.org/pvegraph/internal/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket streams topologies to the client
// @Summary WebSocket topology push
// @Description Sends a topology event on connect and after every refresh interval
// @Tags websocket
// @Success 101 {string} string "Switching Protocols"
// @Router /ws/topology [get]
func (s *Server) HandleWebSocket(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logging.FromContext(c.Request().Context()).Warn("websocket upgrade failed", "error", err)
		return err
	}

	client := &Client{
		hub:  s.wsHub,
		conn: ws,
		send: make(chan []byte, 256),
	}

	// queued before the hub knows the client, so nothing can close send yet
	if msg, err := encodeEvent(s.topologyEvent(c.Request().Context())); err == nil {
		client.send <- msg
	}

	if !s.wsHub.Register(client) {
		_ = ws.Close()
		return nil
	}

	go client.writePump()
	go client.readPump()

	return nil
}

// GetWebSocketStats returns WebSocket connection statistics
// @Summary Get WebSocket statistics
// @Tags websocket
// @Produce json
// @Success 200 {object} WebSocketStats
// @Router /ws/stats [get]
func (s *Server) GetWebSocketStats(c echo.Context) error {
	return c.JSON(http.StatusOK, WebSocketStats{
		ConnectedClients: s.wsHub.ClientCount(),
		RefreshInterval:  s.config.Topology.RefreshInterval.String(),
		Status:           "operational",
	})
}

// runTopologyPush broadcasts a fresh topology every refresh interval while
// clients are connected.
func (s *Server) runTopologyPush(ctx context.Context) {
	interval := s.config.Topology.RefreshInterval
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.wsHub.ClientCount() == 0 {
				continue
			}
			if err := s.wsHub.BroadcastEvent(s.topologyEvent(ctx)); err != nil {
				s.logger.Error("failed to broadcast topology", "error", err)
			}
		}
	}
}

// topologyEvent runs one build. A failed build becomes an error event so
// clients keep their last topology.
func (s *Server) topologyEvent(ctx context.Context) Event {
	ctx = logging.WithLogger(ctx, s.logger.With("trigger", "websocket"))

	topo, err := s.builder.Build(ctx)
	if err != nil {
		s.logger.Warn("topology push failed", "error", err)
		return Event{Type: EventTopologyError, Data: fromProxmoxError(err)}
	}
	return Event{Type: EventTopology, Data: topo}
}
