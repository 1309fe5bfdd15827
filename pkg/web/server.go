// Package web exposes the bridge over HTTP: one websocket endpoint for
// the single active controller, one for any number of telemetry
// observers, and a small status API.
package web

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/triomni/go-nucleo/pkg/motion"
	"github.com/triomni/go-nucleo/pkg/session"
	"github.com/triomni/go-nucleo/pkg/telemetry"
)

// Board is the serial link surface the server needs.
type Board interface {
	session.CommandSender
	Device() string
}

// Server is the bridge HTTP/websocket server.
type Server struct {
	app   *fiber.App
	addr  string
	board Board
	slot  *session.Slot
	cals  motion.Calibrations
	hub   *telemetry.Hub

	mu      sync.RWMutex
	current *session.Session
}

// NewServer wires up routes on a fresh fiber app. hub may be nil when
// telemetry is disabled.
func NewServer(addr string, board Board, slot *session.Slot, cals motion.Calibrations, hub *telemetry.Hub) *Server {
	s := &Server{
		addr:  addr,
		board: board,
		slot:  slot,
		cals:  cals,
		hub:   hub,
	}

	app := fiber.New(fiber.Config{
		AppName:               "go-nucleo bridge",
		DisableStartupMessage: true,
	})

	app.Use(cors.New())

	app.Get("/api/status", s.handleStatus)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/control", websocket.New(s.handleControl))
	if hub != nil {
		app.Get("/ws/telemetry", websocket.New(s.handleTelemetry))
	}

	s.app = app
	return s
}

// Listen serves until Shutdown is called.
func (s *Server) Listen() error {
	return s.app.Listen(s.addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// setCurrent tracks the active session for the status endpoint.
func (s *Server) setCurrent(sess *session.Session) {
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
}

func (s *Server) clearCurrent(sess *session.Session) {
	s.mu.Lock()
	if s.current == sess {
		s.current = nil
	}
	s.mu.Unlock()
}
