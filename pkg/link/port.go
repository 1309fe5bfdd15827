package link

import (
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// Port is the minimal serial device surface the link needs. The
// production implementation is a go.bug.st/serial port; tests inject
// in-memory fakes.
type Port interface {
	io.ReadWriteCloser
}

// PortConfig holds serial port parameters.
type PortConfig struct {
	Device      string        // e.g. /dev/ttyACM0
	BaudRate    int
	ReadTimeout time.Duration
}

// OpenPort opens a physical serial port with 8N1 framing and a bounded
// read timeout. A read that times out returns zero bytes, not an error.
func OpenPort(cfg PortConfig) (Port, error) {
	mode := &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(cfg.Device, mode)
	if err != nil {
		return nil, fmt.Errorf("link: failed to open %s: %w", cfg.Device, err)
	}
	if err := port.SetReadTimeout(cfg.ReadTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("link: failed to set read timeout on %s: %w", cfg.Device, err)
	}
	return port, nil
}
