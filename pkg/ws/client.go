package ws

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	conn    *websocket.Conn
	channel string

	// Buffered channel of outbound messages.
	send chan []byte

	needCompression bool
	registered      bool
}

func NewClient(conn *websocket.Conn, channel string, needCompression bool) *Client {
	return &Client{
		conn:            conn,
		channel:         channel,
		send:            make(chan []byte, 128),
		needCompression: needCompression,
	}
}

// Register adds the client to hub. Once it returns, every later broadcast on
// the client's channel reaches the client. It reports false when the hub has
// stopped, in which case the connection is closed.
func (c *Client) Register(hub *Hub) bool {
	if c.registered {
		return true
	}

	select {
	case hub.register <- c:
		c.registered = true
		return true
	case <-hub.done:
		c.conn.Close()
		return false
	}
}

// Serve registers the client on hub if Register was not called yet, and blocks
// until the connection is closed by either side. Inbound text messages are
// passed to onMessage.
func (c *Client) Serve(hub *Hub, onMessage func([]byte)) {
	if !c.Register(hub) {
		return
	}
	go c.runWriter()

	defer func() {
		select {
		case hub.unregister <- c:
		case <-hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		t, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		if t != websocket.TextMessage || onMessage == nil {
			continue
		}

		if c.needCompression {
			if msg, err = Decompress(msg); err != nil {
				continue
			}
		}

		onMessage(msg)
	}
}

func (c *Client) runWriter() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if c.needCompression {
				var err error
				if msg, err = Compress(msg); err != nil {
					continue
				}
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
