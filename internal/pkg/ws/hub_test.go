package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliverToConnectedClient(t *testing.T) {
	h := NewHub(zerolog.Nop())
	client := &Client{hub: h, send: make(chan []byte, 1), userID: 42}
	h.clients[42] = map[*Client]bool{client: true}

	h.deliver(&Event{
		UserID:    42,
		Kind:      "TICKET_UPDATE",
		Title:     "Ticket TKT-2026-00001 is RESOLVED",
		Timestamp: time.Now(),
	})

	select {
	case data := <-client.send:
		var event Event
		require.NoError(t, json.Unmarshal(data, &event))
		assert.Equal(t, "TICKET_UPDATE", event.Kind)
	default:
		t.Fatal("expected an event on the client send channel")
	}
}

func TestDeliverDropsSlowClientWithoutBlocking(t *testing.T) {
	h := NewHub(zerolog.Nop())

	// A client whose send buffer is already full
	slow := &Client{hub: h, send: make(chan []byte), userID: 7}
	h.clients[7] = map[*Client]bool{slow: true}

	done := make(chan struct{})
	go func() {
		h.deliver(&Event{UserID: 7, Kind: "REPORT_REVIEW", Timestamp: time.Now()})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("deliver blocked on a slow client")
	}

	// The slow client is gone and its channel closed
	assert.Equal(t, 0, h.ConnectionCount(7))
	_, open := <-slow.send
	assert.False(t, open)
}

func TestDeliverWithNoConnections(t *testing.T) {
	h := NewHub(zerolog.Nop())

	done := make(chan struct{})
	go func() {
		h.deliver(&Event{UserID: 99, Kind: "PHASE_CHANGE", Timestamp: time.Now()})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("deliver blocked with no connected clients")
	}
}
