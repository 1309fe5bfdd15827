// Package session enforces the single-controller rule of the bridge.
// Exactly one network client may drive the robot at a time; every way
// a session can end fires the stop-all-steppers command exactly once
// before the slot opens up again.
package session

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/triomni/go-nucleo/internal/log"
	"github.com/triomni/go-nucleo/pkg/command"
	"github.com/triomni/go-nucleo/pkg/motion"
)

// CommandSender dispatches one command to the board. Satisfied by
// *link.Link.
type CommandSender interface {
	Send(command.Command) error
}

// Session is one attached controller. Create with New, feed frames
// with HandleFrame, and always Close when the client goes away.
type Session struct {
	id    string
	slot  *Slot
	board CommandSender
	cals  motion.Calibrations

	frames    atomic.Uint64
	closeOnce sync.Once
}

// New claims the controller slot and returns the active session.
// Returns ErrAlreadyConnected without side effects when a controller
// is already attached.
func New(slot *Slot, board CommandSender, cals motion.Calibrations) (*Session, error) {
	id := uuid.NewString()
	if err := slot.tryAcquire(id); err != nil {
		return nil, err
	}
	log.Info("controller attached", "session", id)
	return &Session{id: id, slot: slot, board: board, cals: cals}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Frames returns how many control frames this session has applied.
func (s *Session) Frames() uint64 {
	return s.frames.Load()
}

// HandleFrame applies one inbound control message: chassis velocity
// first, then the elevator servo, then the claw servo. Each dispatch
// can fail independently; a failure is logged and the remaining
// dispatches still run. A frame is never retried and never ends the
// session.
func (s *Session) HandleFrame(data []byte) {
	frame, err := ParseControlFrame(data)
	if err != nil {
		log.Warn("dropping control frame", "session", s.id, "error", err)
		return
	}
	s.frames.Add(1)

	xDot, yDot, thetaDot := motion.Velocity(frame.Joystick.X, frame.Joystick.Y, frame.Sliders.Omega)
	if err := s.board.Send(command.SetInverseKinematics{XDot: xDot, YDot: yDot, ThetaDot: thetaDot}); err != nil {
		log.Warn("velocity command failed", "session", s.id, "error", err)
	}

	s.setServo(motion.ElevatorChannel, frame.Sliders.Elevator)
	s.setServo(motion.ClawChannel, frame.Sliders.Claw)
}

// setServo maps a slider deflection through the channel calibration
// and dispatches the PWM command.
func (s *Session) setServo(channel int, slider float64) {
	cal, err := s.cals.Lookup(channel)
	if err != nil {
		log.Warn("servo command failed", "session", s.id, "channel", channel, "error", err)
		return
	}
	pulse := cal.Pulse(motion.SliderAngle(slider))
	if err := s.board.Send(command.SetServoPWM{Channel: channel, On: 0, Off: pulse}); err != nil {
		log.Warn("servo command failed", "session", s.id, "channel", channel, "error", err)
	}
}

// Close ends the session: stop all steppers best-effort, then free the
// slot. Runs its side effects exactly once no matter how many paths
// race into it.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if err := s.board.Send(command.StopAllSteppers{}); err != nil {
			log.Warn("stop on session close failed", "session", s.id, "error", err)
		}
		s.slot.release(s.id)
		log.Info("controller detached", "session", s.id, "frames", s.frames.Load())
	})
}
