package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/elson2121/Airline-Management-System/shared/models"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	MessageTypeSeatsUpdated MessageType = "seats_updated"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 16
)

// SeatUpdate represents a seat status change
type SeatUpdate struct {
	Seat   string            `json:"seat"`
	Status models.SeatStatus `json:"status"`
}

// Message represents a WebSocket message
type Message struct {
	Type      MessageType  `json:"type"`
	FlightNo  string       `json:"flightNo"`
	Seats     []SeatUpdate `json:"seats"`
	Timestamp int64        `json:"timestamp"`
}

// Client represents a WebSocket client connection
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	flightNo string
}

// Hub fans seat grid changes out to the clients watching each flight.
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	done       chan struct{}
	upgrader   websocket.Upgrader
	log        *logrus.Entry

	mu     sync.RWMutex
	counts map[string]int
}

// NewHub creates a new Hub
func NewHub(log *logrus.Entry) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log:    log.WithField("component", "websocket"),
		counts: make(map[string]int),
	}
}

// Run owns the client registry until ctx is done, then closes every
// client's send channel.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for flightNo, clients := range h.clients {
				for client := range clients {
					h.drop(flightNo, client)
				}
			}
			return

		case client := <-h.register:
			if h.clients[client.flightNo] == nil {
				h.clients[client.flightNo] = make(map[*Client]bool)
			}
			h.clients[client.flightNo][client] = true
			h.setCount(client.flightNo)
			h.log.WithFields(logrus.Fields{
				"flight":  client.flightNo,
				"clients": len(h.clients[client.flightNo]),
			}).Debug("Client registered")

		case client := <-h.unregister:
			if _, ok := h.clients[client.flightNo][client]; ok {
				h.drop(client.flightNo, client)
			}

		case message := <-h.broadcast:
			data, err := json.Marshal(message)
			if err != nil {
				h.log.WithError(err).Error("Failed to marshal message")
				continue
			}
			for client := range h.clients[message.FlightNo] {
				select {
				case client.send <- data:
				default:
					h.drop(message.FlightNo, client)
				}
			}
		}
	}
}

func (h *Hub) drop(flightNo string, client *Client) {
	delete(h.clients[flightNo], client)
	close(client.send)
	if len(h.clients[flightNo]) == 0 {
		delete(h.clients, flightNo)
	}
	h.setCount(flightNo)
}

func (h *Hub) setCount(flightNo string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.counts[flightNo] = len(h.clients[flightNo])
}

// SeatsChanged queues a seats_updated message for the flight. It never
// blocks: when the queue is full the update is dropped.
func (h *Hub) SeatsChanged(flightNo string, seats []models.SeatState) {
	updates := make([]SeatUpdate, len(seats))
	for i, s := range seats {
		updates[i] = SeatUpdate{Seat: s.Seat, Status: s.Status}
	}
	msg := &Message{
		Type:      MessageTypeSeatsUpdated,
		FlightNo:  flightNo,
		Seats:     updates,
		Timestamp: time.Now().UnixMilli(),
	}

	select {
	case h.broadcast <- msg:
	default:
		h.log.WithField("flight", flightNo).Warn("Broadcast queue full, dropping seat update")
	}
}

// GetClientCount returns the number of clients watching a flight
func (h *Hub) GetClientCount(flightNo string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.counts[flightNo]
}

// ServeWS handles GET /api/flights/{flightNo}/ws
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("Upgrade failed")
		return
	}

	client := &Client{
		hub:      h,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		flightNo: mux.Vars(r)["flightNo"],
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump discards incoming messages and unregisters the client once the
// connection closes.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
