package session

import (
	"errors"
	"sync"
)

// ErrAlreadyConnected is returned when a controller tries to attach
// while another one holds the slot. The reason string is sent back to
// the rejected client verbatim.
var ErrAlreadyConnected = errors.New("already connected")

// Slot is the single-occupancy controller slot. At most one session
// holds it at any instant, system-wide.
type Slot struct {
	mu       sync.Mutex
	occupant string // session id, "" when free
}

// NewSlot returns a free slot.
func NewSlot() *Slot {
	return &Slot{}
}

// tryAcquire claims the slot for the given session id.
func (s *Slot) tryAcquire(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.occupant != "" {
		return ErrAlreadyConnected
	}
	s.occupant = id
	return nil
}

// release frees the slot if id still holds it.
func (s *Slot) release(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.occupant == id {
		s.occupant = ""
	}
}

// Occupant returns the id of the session holding the slot, or "" when
// the slot is free.
func (s *Slot) Occupant() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.occupant
}
