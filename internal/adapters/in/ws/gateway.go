// Package ws exposes the notification fanout over a WebSocket endpoint.
// Clients send subscribe/unsubscribe frames naming topics; events published
// on those topics stream back as JSON. The gateway inherits the fanout's
// delivery contract: best effort, at most once, no replay after reconnect.
package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"dispatch/internal/adapters/out/fanout"
	"dispatch/internal/core/ports"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum control frame size allowed from peer. Subscribe frames are tiny.
	maxMessageSize = 512

	// Outbound event buffer per connection.
	sendBufferSize = 32
)

// frame is the client-to-server control message.
type frame struct {
	Action string `json:"action"`
	Topic  string `json:"topic"`
}

// Gateway upgrades HTTP requests to WebSocket connections and bridges them
// to the fanout hub.
type Gateway struct {
	hub      *fanout.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewGateway creates a gateway over the given hub.
func NewGateway(hub *fanout.Hub, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin checks belong to the outer gateway that terminates auth.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "ws"),
	}
}

// Handle serves GET /ws. The connection starts with no subscriptions;
// the client opts in per topic.
func (g *Gateway) Handle(c echo.Context) error {
	conn, err := g.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		return nil
	}

	client := &client{
		gateway: g,
		conn:    conn,
		send:    make(chan ports.Event, sendBufferSize),
		done:    make(chan struct{}),
		subs:    make(map[string]*fanout.Subscription),
	}

	go client.writePump()
	client.readPump()
	return nil
}

// client is one WebSocket connection and its topic subscriptions.
type client struct {
	gateway *Gateway
	conn    *websocket.Conn
	send    chan ports.Event
	done    chan struct{}

	mu   sync.Mutex
	subs map[string]*fanout.Subscription
}

// readPump consumes control frames until the connection dies, then tears
// everything down. There is exactly one reader per connection.
func (c *client) readPump() {
	defer c.shutdown()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.gateway.logger.Debug("connection closed unexpectedly", "error", err)
			}
			return
		}

		var f frame
		if err := json.Unmarshal(message, &f); err != nil {
			c.gateway.logger.Debug("dropping malformed frame", "error", err)
			continue
		}

		switch f.Action {
		case "subscribe":
			c.subscribe(f.Topic)
		case "unsubscribe":
			c.unsubscribe(f.Topic)
		default:
			c.gateway.logger.Debug("dropping frame with unknown action", "action", f.Action)
		}
	}
}

// writePump relays events to the peer and keeps the connection alive with
// pings. There is exactly one writer per connection.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case event := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
			return
		}
	}
}

func (c *client) subscribe(topic string) {
	if topic == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.subs[topic]; exists {
		return
	}

	sub := c.gateway.hub.Subscribe(topic)
	c.subs[topic] = sub
	go c.forward(sub)
}

func (c *client) unsubscribe(topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if sub, exists := c.subs[topic]; exists {
		sub.Close()
		delete(c.subs, topic)
	}
}

// forward drains one subscription into the connection's send queue. A full
// queue drops the event; the fanout already promises no more than that.
func (c *client) forward(sub *fanout.Subscription) {
	for event := range sub.C() {
		select {
		case c.send <- event:
		case <-c.done:
			return
		default:
			c.gateway.logger.Debug("dropping event for slow connection", "topic", event.Topic)
		}
	}
}

// shutdown closes every subscription and stops the write pump.
func (c *client) shutdown() {
	c.mu.Lock()
	for topic, sub := range c.subs {
		sub.Close()
		delete(c.subs, topic)
	}
	c.mu.Unlock()

	close(c.done)
}
