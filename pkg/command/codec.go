package command

import (
	"encoding/binary"
	"fmt"
	"math"
)

// AngleResponseLen is the byte length of a ReadAngles response:
// three little-endian int32 raw encoder tick counts.
const AngleResponseLen = 12

// PongResponseLen is the byte length of a Ping response.
const PongResponseLen = 4

// ticksPerRev is the encoder resolution; fixed by the hardware.
const ticksPerRev = 4096

// Encode serializes cmd into a complete wire frame, header included.
// SetServoPWM parameters are validated before encoding; all other
// variants carry their full range on the wire.
func Encode(cmd Command) ([]byte, error) {
	frame := []byte{Header, cmd.Opcode()}

	switch c := cmd.(type) {
	case SetServoPWM:
		if c.Channel < 0 || c.Channel > 15 {
			return nil, fmt.Errorf("command: channel %d outside [0,15]: %w", c.Channel, ErrInvalidArgument)
		}
		if c.On < 0 || c.On > 4095 {
			return nil, fmt.Errorf("command: on time %d outside [0,4095]: %w", c.On, ErrInvalidArgument)
		}
		if c.Off < 0 || c.Off > 4095 {
			return nil, fmt.Errorf("command: off time %d outside [0,4095]: %w", c.Off, ErrInvalidArgument)
		}
		frame = append(frame, byte(c.Channel))
		frame = binary.LittleEndian.AppendUint16(frame, uint16(c.On))
		frame = binary.LittleEndian.AppendUint16(frame, uint16(c.Off))

	case SetWheelSpeeds:
		frame = binary.LittleEndian.AppendUint32(frame, uint32(c.V0))
		frame = binary.LittleEndian.AppendUint32(frame, uint32(c.V1))
		frame = binary.LittleEndian.AppendUint32(frame, uint32(c.V2))

	case SetInverseKinematics:
		frame = binary.LittleEndian.AppendUint64(frame, math.Float64bits(c.XDot))
		frame = binary.LittleEndian.AppendUint64(frame, math.Float64bits(c.YDot))
		frame = binary.LittleEndian.AppendUint64(frame, math.Float64bits(c.ThetaDot))

	case StopAllSteppers, Ping, ReadAngles:
		// No payload.

	default:
		return nil, fmt.Errorf("command: unknown command %T: %w", cmd, ErrInvalidArgument)
	}

	return frame, nil
}

// DecodePong reports whether data is a well-formed ping response.
// Anything other than the exact 4 bytes "pong" (including a short
// read) is simply not a pong.
func DecodePong(data []byte) bool {
	return string(data) == "pong"
}

// DecodeAngles converts a ReadAngles response into three joint angles
// in degrees. The board reports raw encoder ticks; one revolution is
// 4096 ticks.
func DecodeAngles(data []byte) ([3]float64, error) {
	var angles [3]float64
	if len(data) < AngleResponseLen {
		return angles, fmt.Errorf("command: angle response %d bytes, want %d: %w",
			len(data), AngleResponseLen, ErrShortResponse)
	}
	for i := 0; i < 3; i++ {
		ticks := int32(binary.LittleEndian.Uint32(data[i*4 : i*4+4]))
		angles[i] = float64(ticks) / ticksPerRev * 360
	}
	return angles, nil
}
