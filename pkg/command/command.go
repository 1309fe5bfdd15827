// Package command defines the binary serial protocol spoken by the Nucleo
// motor controller board. Every frame on the wire is a one-byte 'M' header,
// a one-byte ASCII opcode, and a fixed-width little-endian payload.
//
// The package is pure translation: it knows nothing about sessions, sockets,
// or the serial device itself.
package command

// Header is the first byte of every frame sent to the board.
const Header byte = 'M'

// Opcodes understood by the board firmware.
const (
	OpSetServoPWM          byte = 's'
	OpReadAngles           byte = 'a'
	OpSetWheelSpeeds       byte = 'u'
	OpStopAllSteppers      byte = 'x'
	OpPing                 byte = 'p'
	OpSetInverseKinematics byte = 'k'
)

// Command is one typed instruction for the board. The set of
// implementations is closed; the firmware rejects anything else.
type Command interface {
	// Opcode returns the single ASCII command byte.
	Opcode() byte

	// sealed keeps the command set closed to this package.
	sealed()
}

// SetServoPWM sets the raw PWM window for one servo channel.
// Channel must be in [0,15]; On and Off are 12-bit counts in [0,4095].
type SetServoPWM struct {
	Channel int
	On      int
	Off     int
}

// SetWheelSpeeds sets the three wheel stepper speeds directly.
type SetWheelSpeeds struct {
	V0, V1, V2 int32
}

// SetInverseKinematics sets the chassis velocity target; the firmware
// solves for individual wheel speeds.
type SetInverseKinematics struct {
	XDot, YDot, ThetaDot float64
}

// StopAllSteppers halts every stepper immediately.
type StopAllSteppers struct{}

// Ping asks the board for a "pong" response.
type Ping struct{}

// ReadAngles asks the board for the three raw encoder tick counts.
type ReadAngles struct{}

func (SetServoPWM) Opcode() byte          { return OpSetServoPWM }
func (SetWheelSpeeds) Opcode() byte       { return OpSetWheelSpeeds }
func (SetInverseKinematics) Opcode() byte { return OpSetInverseKinematics }
func (StopAllSteppers) Opcode() byte      { return OpStopAllSteppers }
func (Ping) Opcode() byte                 { return OpPing }
func (ReadAngles) Opcode() byte           { return OpReadAngles }

func (SetServoPWM) sealed()          {}
func (SetWheelSpeeds) sealed()       {}
func (SetInverseKinematics) sealed() {}
func (StopAllSteppers) sealed()      {}
func (Ping) sealed()                 {}
func (ReadAngles) sealed()           {}
