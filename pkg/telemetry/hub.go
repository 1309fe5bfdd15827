// Package telemetry streams read-only board state to any number of
// observers. Observers never touch the controller slot; watching the
// robot is always allowed, driving it is not.
package telemetry

import (
	"encoding/json"
	"sync"

	"github.com/triomni/go-nucleo/internal/log"
)

// Hub maintains the set of observer clients and broadcasts snapshots
// to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex
}

// NewHub creates a hub. Call Run in a goroutine before registering
// clients.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run is the hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			log.Debug("telemetry observer connected", "observers", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			log.Debug("telemetry observer disconnected", "observers", count)

		case data := <-h.broadcast:
			// Full lock: dropping a slow observer mutates the map,
			// which must not race ClientCount's read.
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					// Observer too slow to keep up; drop it
					close(client.send)
					delete(h.clients, client)
					log.Warn("dropped slow telemetry observer")
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastJSON encodes v and queues it for every observer. A full
// broadcast queue drops the snapshot; the next poll supersedes it.
func (h *Hub) BroadcastJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	select {
	case h.broadcast <- data:
	default:
		log.Warn("telemetry broadcast queue full, dropping snapshot")
	}
	return nil
}

// ClientCount returns the number of connected observers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
