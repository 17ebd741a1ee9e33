package ws

import "context"

// Hub maintains the set of active clients and broadcasts messages to the
// clients. All bookkeeping happens on the goroutine running Run.

type clients map[*Client]bool

type message struct {
	channel string
	data    []byte
}

type Hub struct {
	// Registered clients.
	clients clients

	channels map[string]clients

	// Outbound messages. An empty channel name means every client.
	broadcast chan message

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	count chan chan int

	// Closed when Run returns.
	done chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan message, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		count:      make(chan chan int),
		done:       make(chan struct{}),
		clients:    make(clients),
		channels:   make(map[string]clients),
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.disconnect(client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			if _, ok := h.channels[client.channel]; !ok {
				h.channels[client.channel] = make(clients)
			}
			h.channels[client.channel][client] = true

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.disconnect(client)
			}

		case msg := <-h.broadcast:
			targets := h.clients
			if msg.channel != "" {
				targets = h.channels[msg.channel]
			}

			for client := range targets {
				select {
				case client.send <- msg.data:
				default:
					// Too slow to keep up.
					h.disconnect(client)
				}
			}

		case reply := <-h.count:
			reply <- len(h.clients)
		}
	}
}

func (h *Hub) disconnect(client *Client) {
	delete(h.clients, client)
	delete(h.channels[client.channel], client)
	if len(h.channels[client.channel]) == 0 {
		delete(h.channels, client.channel)
	}
	close(client.send)
}

func (h *Hub) BroadcastByChannel(channel string, data []byte) {
	select {
	case h.broadcast <- message{channel: channel, data: data}:
	case <-h.done:
	}
}

func (h *Hub) Broadcast(data []byte) {
	h.BroadcastByChannel("", data)
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	reply := make(chan int, 1)
	select {
	case h.count <- reply:
		return <-reply
	case <-h.done:
		return 0
	}
}
