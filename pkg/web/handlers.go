package web

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/triomni/go-nucleo/internal/log"
	"github.com/triomni/go-nucleo/pkg/session"
	"github.com/triomni/go-nucleo/pkg/telemetry"
)

// Status is the /api/status response body.
type Status struct {
	Device     string `json:"device"`
	Controller string `json:"controller,omitempty"`
	Frames     uint64 `json:"frames"`
	Observers  int    `json:"observers"`
}

// handleStatus reports bridge state.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	status := Status{
		Device:     s.board.Device(),
		Controller: s.slot.Occupant(),
	}
	s.mu.RLock()
	if s.current != nil {
		status.Frames = s.current.Frames()
	}
	s.mu.RUnlock()
	if s.hub != nil {
		status.Observers = s.hub.ClientCount()
	}
	return c.JSON(status)
}

// handleControl owns one controller connection for its whole lifetime:
// claim the slot, apply frames in arrival order, and tear down with a
// guaranteed stop when the client goes away for any reason.
func (s *Server) handleControl(conn *websocket.Conn) {
	sess, err := session.New(s.slot, s.board, s.cals)
	if err != nil {
		if errors.Is(err, session.ErrAlreadyConnected) {
			log.Warn("rejecting controller", "reason", err)
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()),
				time.Now().Add(time.Second))
		} else {
			log.Error("session setup failed", "error", err)
		}
		conn.Close()
		return
	}

	s.setCurrent(sess)
	defer func() {
		sess.Close()
		s.clearCurrent(sess)
		conn.Close()
	}()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			log.Info("controller connection closed", "session", sess.ID(), "error", err)
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		sess.HandleFrame(data)
	}
}

// handleTelemetry attaches a read-only observer to the telemetry hub.
func (s *Server) handleTelemetry(conn *websocket.Conn) {
	client := telemetry.NewClient(s.hub, conn)
	client.Run()
}
