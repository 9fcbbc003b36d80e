package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Hub maintains the set of connected clients keyed by user and pushes
// notification events to them.
type Hub struct {
	// Registered clients organized by user ID. A user may have several
	// connections open (multiple tabs, devices).
	clients map[int64]map[*Client]bool

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Outbound events waiting for delivery
	push chan *Event

	// Closed when Run returns
	done chan struct{}

	mu sync.RWMutex

	logger zerolog.Logger
}

// Event is a notification payload sent over WebSocket
type Event struct {
	// Recipient user
	UserID int64 `json:"-"`

	// Notification kind, e.g. REPORT_REVIEW
	Kind string `json:"kind"`

	// Short title for display
	Title string `json:"title"`

	// Full notification text
	Body string `json:"body"`

	// Database ID of the stored notification
	NotificationID int64 `json:"notificationId,omitempty"`

	// When the event was emitted
	Timestamp time.Time `json:"timestamp"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		push:       make(chan *Event, 64),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run starts the hub loop, handling registrations and deliveries. It
// returns when Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.push:
			h.deliver(event)

		case <-h.done:
			h.closeAll()
			return
		}
	}
}

// Stop shuts the hub down and disconnects all clients
func (h *Hub) Stop() {
	close(h.done)
}

// PushToUser queues an event for delivery to all of a user's open
// connections. Events for users with no connection are dropped; the
// stored notification remains the source of truth.
func (h *Hub) PushToUser(event *Event) {
	select {
	case h.push <- event:
	default:
		h.logger.Warn().Int64("userID", event.UserID).Msg("Push queue full, dropped realtime event")
	}
}

// ConnectionCount returns the number of open connections of a user
func (h *Hub) ConnectionCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients[userID])
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	h.logger.Info().
		Int64("userID", client.userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("WebSocket client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.userID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.send)

			if len(clients) == 0 {
				delete(h.clients, client.userID)
			}

			h.logger.Info().
				Int64("userID", client.userID).
				Msg("WebSocket client unregistered")
		}
	}
}

func (h *Hub) deliver(event *Event) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients[event.UserID]))
	for client := range h.clients[event.UserID] {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	if len(clients) == 0 {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Int64("userID", event.UserID).Msg("Failed to marshal event")
		return
	}

	for _, client := range clients {
		select {
		case client.send <- data:
		default:
			// Send buffer full, the client is slow or gone. Drop it
			// inline; deliver runs on the hub loop, so sending to the
			// unregister channel here would block forever.
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, clients := range h.clients {
		for client := range clients {
			close(client.send)
		}
		delete(h.clients, userID)
	}
}
