package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/retaildash/sales-backend-go/internal/websocket"
	"github.com/retaildash/sales-backend-go/pkg/utils"
)

// WebSocketHandler upgrades dashboard connections into the hub.
func (h *Handlers) WebSocketHandler(hub *websocket.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.collector != nil {
			h.collector.RecordWebSocketConnection("connect")
		}
		websocket.HandleWebSocket(hub, c.Writer, c.Request)
	}
}

// GetWebSocketStats reports hub connection statistics.
func (h *Handlers) GetWebSocketStats(hub *websocket.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.SendSuccess(c, hub.GetStats())
	}
}
