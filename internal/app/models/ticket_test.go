package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTicket(t *testing.T) {
	tests := []struct {
		name string
		from TicketStatus
		to   TicketStatus
		want bool
	}{
		{name: "open to assigned", from: TicketOpen, to: TicketAssigned, want: true},
		{name: "assigned to in progress", from: TicketAssigned, to: TicketInProgress, want: true},
		{name: "in progress to resolved", from: TicketInProgress, to: TicketResolved, want: true},
		{name: "resolved to closed", from: TicketResolved, to: TicketClosed, want: true},
		{name: "resolved reopens to in progress", from: TicketResolved, to: TicketInProgress, want: true},
		{name: "open cannot skip to resolved", from: TicketOpen, to: TicketResolved, want: false},
		{name: "closed is terminal", from: TicketClosed, to: TicketInProgress, want: false},
		{name: "no self transition", from: TicketOpen, to: TicketOpen, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransitionTicket(tt.from, tt.to))
		})
	}
}

func TestValidTicketStatus(t *testing.T) {
	assert.True(t, ValidTicketStatus(TicketOpen))
	assert.True(t, ValidTicketStatus(TicketClosed))
	assert.False(t, ValidTicketStatus(TicketStatus("ARCHIVED")))
	assert.False(t, ValidTicketStatus(TicketStatus("")))
}
