package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/benvansteenbergen/console-sub000/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const clusterChannel = "wingsuite_live_events"

// ExecutionEvent is one frame pushed to subscribed consoles.
type ExecutionEvent struct {
	Type        string      `json:"type"` // "execution_update" | "execution_result"
	ExecutionID string      `json:"execution_id"`
	Status      string      `json:"status"`
	DocumentID  string      `json:"document_id,omitempty"`
	Steps       interface{} `json:"steps,omitempty"`
}

// Hub fans execution events out to every console tab subscribed under the
// same session key (multi-tab support). With Redis configured, events also
// reach tabs connected to other instances.
type Hub struct {
	// Session key -> connected clients
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out; nil for single instance
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionKey] = append(h.clients[client.SessionKey], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_key": client.SessionKey})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.SessionKey]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.SessionKey] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.SessionKey]) == 0 {
					delete(h.clients, client.SessionKey)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish delivers an event to every client under the session key. With Redis
// configured the event goes through the cluster channel only; our own
// subscription delivers it locally, so clients never see it twice.
func (h *Hub) Publish(sessionKey string, event ExecutionEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	if h.rdb == nil {
		h.deliverLocal(sessionKey, data)
		return
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"session_key": sessionKey,
		"message":     json.RawMessage(data),
	})
	h.rdb.Publish(context.Background(), clusterChannel, payload)
}

func (h *Hub) deliverLocal(sessionKey string, data []byte) {
	h.mu.RLock()
	clients := h.clients[sessionKey]
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"session_key": sessionKey})
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			SessionKey string          `json:"session_key"`
			Message    json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}
		h.deliverLocal(payload.SessionKey, payload.Message)
	}
}
