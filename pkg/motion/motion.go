// Package motion shapes raw operator input into motor targets. Everything
// here is pure arithmetic: no I/O, no state, no failure modes beyond the
// clamps at the edges of each range.
package motion

import "math"

// Chassis velocity limits in firmware units. These were tuned against
// the physical drivetrain and match the firmware's expectations.
const (
	LinearSpeedLimit  = 1000
	AngularSpeedLimit = 10000
)

// RemapClamp linearly maps v from [inMin,inMax] into [outMin,outMax]
// and clamps the result to the output range.
func RemapClamp(v, inMin, inMax, outMin, outMax float64) float64 {
	proportion := (v - inMin) / (inMax - inMin)
	mapped := outMin + proportion*(outMax-outMin)
	return math.Max(math.Min(mapped, outMax), outMin)
}

// EaseCubic applies cubic easing to a [-1,1] input. It preserves sign
// and endpoints while compressing small deflections, which makes fine
// positioning around the stick center much easier for the operator.
func EaseCubic(v float64) float64 {
	return v * v * v
}

// Velocity converts eased joystick and omega inputs into chassis
// velocity targets.
func Velocity(x, y, omega float64) (xDot, yDot, thetaDot float64) {
	xDot = EaseCubic(x) * LinearSpeedLimit
	yDot = EaseCubic(y) * LinearSpeedLimit
	thetaDot = EaseCubic(omega) * AngularSpeedLimit
	return xDot, yDot, thetaDot
}

// SliderAngle maps a [-1,1] slider deflection onto a servo angle in
// degrees [0,360].
func SliderAngle(v float64) float64 {
	return RemapClamp(v, -1, 1, 0, 360)
}
