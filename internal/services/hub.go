package services

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 10 * time.Second

// Client serialises writes to one websocket connection; gorilla allows a
// single concurrent writer.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *Client) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(v)
}

func (c *Client) Ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

func (c *Client) Conn() *websocket.Conn {
	return c.conn
}

type RefreshMessage struct {
	Type        string   `json:"type"`
	Message     string   `json:"message"`
	SubdomainID string   `json:"subdomain_id"`
	Paths       []string `json:"paths,omitempty"`
}

// RefreshHub tells open dashboards of a subdomain to refetch after a write.
type RefreshHub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]bool
	logger  *zap.Logger
}

func NewRefreshHub(logger *zap.Logger) *RefreshHub {
	return &RefreshHub{
		clients: make(map[string]map[*Client]bool),
		logger:  logger,
	}
}

func (h *RefreshHub) Register(subdomainID string, conn *websocket.Conn) *Client {
	client := &Client{conn: conn}

	h.mu.Lock()
	if h.clients[subdomainID] == nil {
		h.clients[subdomainID] = make(map[*Client]bool)
	}
	h.clients[subdomainID][client] = true
	h.mu.Unlock()

	return client
}

func (h *RefreshHub) Unregister(subdomainID string, client *Client) {
	h.mu.Lock()
	if clients, exists := h.clients[subdomainID]; exists {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.clients, subdomainID)
		}
	}
	h.mu.Unlock()

	client.conn.Close()
}

func (h *RefreshHub) ClientCount(subdomainID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[subdomainID])
}

// Broadcast matches cache.Listener. Clients that cannot be written to are
// dropped.
func (h *RefreshHub) Broadcast(subdomainID string, paths []string) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients[subdomainID]))
	for c := range h.clients[subdomainID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	msg := RefreshMessage{
		Type:        "refresh",
		Message:     "Portfolio data updated",
		SubdomainID: subdomainID,
		Paths:       paths,
	}

	for _, c := range clients {
		if err := c.WriteJSON(msg); err != nil {
			h.logger.Debug("dropping websocket client", zap.String("subdomain_id", subdomainID), zap.Error(err))
			h.Unregister(subdomainID, c)
		}
	}
}
