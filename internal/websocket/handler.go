package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs attaches a connection to the hub and starts its write pump. The
// caller drives the read side via Run; the client's Done channel signals
// teardown.
func ServeWs(hub *Hub, c *websocket.Conn, sessionKey string) *Client {
	client := &Client{
		Hub:        hub,
		Conn:       c,
		SessionKey: sessionKey,
		Send:       make(chan []byte, 256),
		Done:       make(chan struct{}),
	}
	client.Hub.register <- client

	go client.writePump()
	return client
}
