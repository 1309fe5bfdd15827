package telemetry

import (
	"sync"
	"time"

	"github.com/triomni/go-nucleo/internal/log"
)

// BoardReader is the query surface of the serial link the poller
// needs. Satisfied by *link.Link.
type BoardReader interface {
	Ping() (bool, error)
	ReadAngles() ([3]float64, error)
}

// Snapshot is one telemetry sample pushed to observers.
type Snapshot struct {
	Timestamp  int64      `json:"ts"` // Unix milliseconds
	Online     bool       `json:"online"`
	Angles     [3]float64 `json:"angles"`
	Controller string     `json:"controller,omitempty"`
}

// SlotState reports who currently holds the controller slot.
// Satisfied by *session.Slot.
type SlotState interface {
	Occupant() string
}

// Poller samples the board on a fixed interval and broadcasts the
// result through a hub. Query failures mark the board offline in the
// snapshot instead of stopping the poll loop.
type Poller struct {
	board    BoardReader
	slot     SlotState
	hub      *Hub
	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewPoller creates a poller. Typical intervals are a few hundred
// milliseconds; the serial mutex keeps polling from splitting control
// frames on the wire.
func NewPoller(board BoardReader, slot SlotState, hub *Hub, interval time.Duration) *Poller {
	return &Poller{
		board:    board,
		slot:     slot,
		hub:      hub,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Run polls until Stop is called. Blocks; run in a goroutine.
func (p *Poller) Run() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			p.sample()
		}
	}
}

// Stop halts the poll loop. Safe to call more than once.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.stop)
	})
}

func (p *Poller) sample() {
	snap := Snapshot{
		Timestamp:  time.Now().UnixMilli(),
		Controller: p.slot.Occupant(),
	}

	online, err := p.board.Ping()
	if err != nil {
		log.Debug("telemetry ping failed", "error", err)
	}
	snap.Online = online

	if online {
		angles, err := p.board.ReadAngles()
		if err != nil {
			log.Debug("telemetry angle read failed", "error", err)
		} else {
			snap.Angles = angles
		}
	}

	p.hub.BroadcastJSON(snap)
}
