package websocket

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Hub maintains the set of connected dashboard clients and broadcasts
// dataset notifications and heartbeats to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	logger *logrus.Logger
	mu     sync.RWMutex

	heartbeatInterval time.Duration
	stats             *HubStats
}

// HubStats contains hub statistics.
type HubStats struct {
	ConnectedClients int       `json:"connected_clients"`
	TotalConnections int64     `json:"total_connections"`
	MessagesSent     int64     `json:"messages_sent"`
	LastActivity     time.Time `json:"last_activity"`
}

// NewHub creates a new WebSocket hub.
func NewHub(logger *logrus.Logger, heartbeatInterval time.Duration) *Hub {
	if heartbeatInterval <= 0 {
		heartbeatInterval = 30 * time.Second
	}
	return &Hub{
		clients:           make(map[*Client]bool),
		broadcast:         make(chan []byte, 256),
		register:          make(chan *Client),
		unregister:        make(chan *Client),
		logger:            logger,
		heartbeatInterval: heartbeatInterval,
		stats: &HubStats{
			LastActivity: time.Now(),
		},
	}
}

// Run handles client registration, unregistration, and broadcasting.
func (h *Hub) Run() {
	h.logger.Info("WebSocket hub started")

	ticker := time.NewTicker(h.heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)

		case <-ticker.C:
			h.sendHeartbeat()
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	h.stats.TotalConnections++
	h.stats.ConnectedClients = len(h.clients)
	h.stats.LastActivity = time.Now()
	h.mu.Unlock()

	h.logger.WithFields(logrus.Fields{
		"client_id":         client.ID,
		"remote_addr":       client.RemoteAddr,
		"connected_clients": h.GetClientCount(),
	}).Info("WebSocket client connected")

	welcome := Message{
		Type: "connection",
		Data: map[string]interface{}{
			"status":    "connected",
			"client_id": client.ID,
		},
	}
	client.send <- welcome.ToJSON()
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		h.stats.ConnectedClients = len(h.clients)
		h.stats.LastActivity = time.Now()

		h.logger.WithFields(logrus.Fields{
			"client_id":         client.ID,
			"connected_clients": len(h.clients),
		}).Info("WebSocket client disconnected")
	}
}

func (h *Hub) broadcastMessage(message []byte) {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.stats.MessagesSent++
	h.stats.LastActivity = time.Now()
	h.mu.Unlock()

	for _, client := range clients {
		select {
		case client.send <- message:
		default:
			// Send buffer full, drop the client. This runs on the Run
			// goroutine, which is the only reader of h.unregister, so
			// the removal must be direct rather than channeled.
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) sendHeartbeat() {
	h.BroadcastToAll(Message{
		Type: "heartbeat",
		Data: map[string]interface{}{
			"clients": h.GetClientCount(),
		},
	})
}

// BroadcastToAll broadcasts a message to every connected client.
func (h *Hub) BroadcastToAll(message Message) {
	select {
	case h.broadcast <- message.ToJSON():
	default:
		h.logger.Warn("Broadcast channel is full, message dropped")
	}
}

// DatasetReloaded implements the dataset notifier: connected dashboards
// are told to refetch.
func (h *Hub) DatasetReloaded(version int64, records int) {
	h.BroadcastToAll(NewDatasetReloadedMessage(version, records))
}

// GetStats returns current hub statistics.
func (h *Hub) GetStats() *HubStats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	statsCopy := *h.stats
	statsCopy.ConnectedClients = len(h.clients)
	return &statsCopy
}

// GetClientCount returns the number of connected clients.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
