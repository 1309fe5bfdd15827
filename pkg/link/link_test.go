package link

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/triomni/go-nucleo/pkg/command"
)

// fakePort records every Write call and serves canned reads.
type fakePort struct {
	mu     sync.Mutex
	writes [][]byte
	reads  []byte
	closed bool
}

func (p *fakePort) Write(data []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writes = append(p.writes, append([]byte(nil), data...))
	return len(data), nil
}

func (p *fakePort) Read(buf []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.reads) == 0 {
		return 0, nil // timeout
	}
	n := copy(buf, p.reads)
	p.reads = p.reads[n:]
	return n, nil
}

func (p *fakePort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *fakePort) writeCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.writes)
}

func TestLink_SendAtomicFrame(t *testing.T) {
	port := &fakePort{}
	l := NewLink(port, "fake")

	if err := l.Send(command.SetServoPWM{Channel: 0, On: 0, Off: 100}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	// The whole frame must land in a single write call
	if got := port.writeCount(); got != 1 {
		t.Fatalf("write count = %d, want 1", got)
	}
	want := []byte{'M', 's', 0x00, 0x00, 0x00, 0x64, 0x00}
	if !bytes.Equal(port.writes[0], want) {
		t.Errorf("frame = %#v, want %#v", port.writes[0], want)
	}
}

func TestLink_SendRejectsInvalidCommand(t *testing.T) {
	port := &fakePort{}
	l := NewLink(port, "fake")

	err := l.Send(command.SetServoPWM{Channel: 16, On: 0, Off: 0})
	if !errors.Is(err, command.ErrInvalidArgument) {
		t.Fatalf("Send() error = %v, want ErrInvalidArgument", err)
	}
	if port.writeCount() != 0 {
		t.Error("invalid command must not reach the wire")
	}
}

func TestLink_ReceiveShortRead(t *testing.T) {
	port := &fakePort{reads: []byte{0x01, 0x02}}
	l := NewLink(port, "fake")

	data, err := l.Receive(12)
	if err != nil {
		t.Fatalf("Receive() error = %v", err)
	}
	if len(data) != 2 {
		t.Errorf("Receive() returned %d bytes, want 2", len(data))
	}
}

func TestLink_Ping(t *testing.T) {
	port := &fakePort{reads: []byte("pong")}
	l := NewLink(port, "fake")

	ok, err := l.Ping()
	if err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	if !ok {
		t.Error("Ping() = false, want true")
	}
	if !bytes.Equal(port.writes[0], []byte{'M', 'p'}) {
		t.Errorf("ping frame = %#v", port.writes[0])
	}
}

func TestLink_PingGarbled(t *testing.T) {
	port := &fakePort{reads: []byte("pan")}
	l := NewLink(port, "fake")

	ok, err := l.Ping()
	if err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	if ok {
		t.Error("Ping() = true on garbled response")
	}
}

func TestLink_ReadAngles(t *testing.T) {
	port := &fakePort{reads: []byte{
		0x00, 0x10, 0x00, 0x00, // 4096 → 360°
		0x00, 0x08, 0x00, 0x00, // 2048 → 180°
		0x00, 0x00, 0x00, 0x00, // 0 → 0°
	}}
	l := NewLink(port, "fake")

	angles, err := l.ReadAngles()
	if err != nil {
		t.Fatalf("ReadAngles() error = %v", err)
	}
	want := [3]float64{360, 180, 0}
	if angles != want {
		t.Errorf("ReadAngles() = %v, want %v", angles, want)
	}
}

func TestLink_ReadAnglesTimeout(t *testing.T) {
	port := &fakePort{} // no response
	l := NewLink(port, "fake")

	_, err := l.ReadAngles()
	if !errors.Is(err, command.ErrShortResponse) {
		t.Errorf("ReadAngles() error = %v, want ErrShortResponse", err)
	}
}

func TestLink_CloseSendsStopFirst(t *testing.T) {
	port := &fakePort{}
	l := NewLink(port, "fake")

	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if got := port.writeCount(); got != 1 {
		t.Fatalf("write count = %d, want 1 (stop frame)", got)
	}
	if !bytes.Equal(port.writes[0], []byte{'M', 'x'}) {
		t.Errorf("close frame = %#v, want stop-all-steppers", port.writes[0])
	}
	if !port.closed {
		t.Error("port not closed")
	}
}

func TestLink_CloseTwice(t *testing.T) {
	port := &fakePort{}
	l := NewLink(port, "fake")

	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}

	// Only the first close touches the wire
	if got := port.writeCount(); got != 1 {
		t.Errorf("write count = %d, want 1 stop frame across both closes", got)
	}
}

func TestLink_SendAfterClose(t *testing.T) {
	port := &fakePort{}
	l := NewLink(port, "fake")
	l.Close()

	if err := l.Send(command.Ping{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Send() after close error = %v, want ErrClosed", err)
	}
	if _, err := l.Receive(4); !errors.Is(err, ErrClosed) {
		t.Errorf("Receive() after close error = %v, want ErrClosed", err)
	}
}

func TestFixedDevice(t *testing.T) {
	device, err := FixedDevice("/dev/ttyACM0")()
	if err != nil {
		t.Fatalf("FixedDevice() error = %v", err)
	}
	if device != "/dev/ttyACM0" {
		t.Errorf("device = %q", device)
	}
}
