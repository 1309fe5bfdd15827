package motion

import (
	"fmt"
	"math"
)

// Servo channel assignments on the PWM driver.
const (
	ElevatorChannel = 0
	ClawChannel     = 1
)

// Calibration holds the pulse-count window for one servo channel,
// mapping angle degrees [0,360] onto the 12-bit PWM off time.
// PulseMin must not exceed PulseMax.
type Calibration struct {
	PulseMin int
	PulseMax int
}

// Pulse converts an angle in degrees to this channel's off-time pulse
// count, rounded to the nearest integer.
func (c Calibration) Pulse(angle float64) int {
	return int(math.Round(RemapClamp(angle, 0, 360, float64(c.PulseMin), float64(c.PulseMax))))
}

// Calibrations is the per-channel calibration table.
type Calibrations map[int]Calibration

// DefaultCalibrations returns the measured pulse windows for the
// installed servos.
func DefaultCalibrations() Calibrations {
	return Calibrations{
		ElevatorChannel: {PulseMin: 100, PulseMax: 470},
		ClawChannel:     {PulseMin: 100, PulseMax: 470},
	}
}

// Lookup returns the calibration for channel, or an error if no servo
// has been calibrated there.
func (cs Calibrations) Lookup(channel int) (Calibration, error) {
	cal, ok := cs[channel]
	if !ok {
		return Calibration{}, fmt.Errorf("motion: no calibration for channel %d", channel)
	}
	return cal, nil
}
