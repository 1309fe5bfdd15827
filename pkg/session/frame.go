package session

import (
	"encoding/json"
	"fmt"
)

// Joystick is one stick snapshot, both axes nominally in [-1,1].
type Joystick struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sliders carries the auxiliary control values. The field names match
// the labels the control surface sends, including the ω rotation knob.
type Sliders struct {
	Elevator float64 `json:"Elevator"`
	Claw     float64 `json:"Claw"`
	Omega    float64 `json:"ω"`
}

// ControlFrame is one inbound operator input snapshot. Missing fields
// default to zero, so an idle client frame maps to "hold still".
type ControlFrame struct {
	Joystick Joystick `json:"joystick"`
	Sliders  Sliders  `json:"sliders"`
}

// ParseControlFrame decodes one control message. Malformed JSON is a
// per-frame failure; the caller drops the frame and keeps the session.
func ParseControlFrame(data []byte) (*ControlFrame, error) {
	var frame ControlFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, fmt.Errorf("session: bad control frame: %w", err)
	}
	return &frame, nil
}
