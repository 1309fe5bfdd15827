// Package link owns exclusive access to the serial channel between the
// bridge and the Nucleo motor controller board. One mutex guards the
// device; every logical send or receive holds it for exactly one I/O
// operation, so a whole command frame hits the wire atomically and no
// two callers ever interleave on the device.
package link

import (
	"fmt"
	"sync"

	"github.com/triomni/go-nucleo/internal/log"
	"github.com/triomni/go-nucleo/pkg/command"
)

// Link is an open serial connection to the board.
type Link struct {
	mu     sync.Mutex
	port   Port
	device string
	closed bool
}

// Open locates the board with find and opens it with the given serial
// parameters (cfg.Device is overwritten by the finder's result).
func Open(find Finder, cfg PortConfig) (*Link, error) {
	device, err := find()
	if err != nil {
		return nil, err
	}
	cfg.Device = device
	port, err := OpenPort(cfg)
	if err != nil {
		return nil, err
	}
	log.Info("serial link open", "device", device, "baud", cfg.BaudRate)
	return &Link{port: port, device: device}, nil
}

// NewLink wraps an already-open port. Used by tests and by callers
// that manage the device themselves.
func NewLink(port Port, device string) *Link {
	return &Link{port: port, device: device}
}

// Device returns the serial device path in use.
func (l *Link) Device() string {
	return l.device
}

// Send encodes cmd and writes the whole frame in one guarded write.
func (l *Link) Send(cmd command.Command) error {
	frame, err := command.Encode(cmd)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	if _, err := l.port.Write(frame); err != nil {
		return fmt.Errorf("link: write %q failed: %w", cmd.Opcode(), err)
	}
	return nil
}

// Receive reads up to n bytes, bounded by the port's read timeout.
// A short or empty result means the board did not answer in time; that
// is not an error. The caller must check the length.
func (l *Link) Receive(n int) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil, ErrClosed
	}

	buf := make([]byte, 0, n)
	chunk := make([]byte, n)
	for len(buf) < n {
		read, err := l.port.Read(chunk[:n-len(buf)])
		if err != nil {
			return buf, fmt.Errorf("link: read failed: %w", err)
		}
		if read == 0 {
			// Read timeout: return what arrived.
			break
		}
		buf = append(buf, chunk[:read]...)
	}
	return buf, nil
}

// Ping sends a ping and reports whether the board answered "pong".
func (l *Link) Ping() (bool, error) {
	if err := l.Send(command.Ping{}); err != nil {
		return false, err
	}
	data, err := l.Receive(command.PongResponseLen)
	if err != nil {
		return false, err
	}
	return command.DecodePong(data), nil
}

// ReadAngles queries the three joint angles in degrees.
func (l *Link) ReadAngles() ([3]float64, error) {
	if err := l.Send(command.ReadAngles{}); err != nil {
		return [3]float64{}, err
	}
	data, err := l.Receive(command.AngleResponseLen)
	if err != nil {
		return [3]float64{}, err
	}
	return command.DecodeAngles(data)
}

// Close stops all steppers best-effort and releases the device. Only
// the first call touches the wire; later calls return nil and later
// sends fail with ErrClosed. The mutex is held across the final stop
// frame and the port close so no in-flight frame can interleave.
func (l *Link) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true

	if frame, err := command.Encode(command.StopAllSteppers{}); err == nil {
		if _, err := l.port.Write(frame); err != nil {
			log.Warn("stop on close failed", "device", l.device, "error", err)
		}
	}
	return l.port.Close()
}
