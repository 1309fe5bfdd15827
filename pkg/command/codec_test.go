package command

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestEncode_FrameBytes(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want []byte
	}{
		{
			name: "stop all steppers",
			cmd:  StopAllSteppers{},
			want: []byte{'M', 'x'},
		},
		{
			name: "ping",
			cmd:  Ping{},
			want: []byte{'M', 'p'},
		},
		{
			name: "read angles",
			cmd:  ReadAngles{},
			want: []byte{'M', 'a'},
		},
		{
			name: "servo pwm",
			cmd:  SetServoPWM{Channel: 1, On: 0, Off: 470},
			want: []byte{'M', 's', 0x01, 0x00, 0x00, 0xd6, 0x01},
		},
		{
			name: "wheel speeds",
			cmd:  SetWheelSpeeds{V0: 1, V1: -1, V2: 256},
			want: []byte{'M', 'u',
				0x01, 0x00, 0x00, 0x00,
				0xff, 0xff, 0xff, 0xff,
				0x00, 0x01, 0x00, 0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.cmd)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Encode() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestEncode_InverseKinematics(t *testing.T) {
	frame, err := Encode(SetInverseKinematics{XDot: 1000, YDot: 0, ThetaDot: -10000})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if len(frame) != 2+3*8 {
		t.Fatalf("frame length = %d, want %d", len(frame), 2+3*8)
	}
	if frame[0] != 'M' || frame[1] != 'k' {
		t.Errorf("frame header = %q %q, want 'M' 'k'", frame[0], frame[1])
	}

	// Spot-check the first float64 round-trips exactly
	bits := uint64(0)
	for i := 9; i >= 2; i-- {
		bits = bits<<8 | uint64(frame[i])
	}
	if got := math.Float64frombits(bits); got != 1000 {
		t.Errorf("x_dot on the wire = %v, want 1000", got)
	}
}

func TestEncode_ServoPWMValidation(t *testing.T) {
	tests := []struct {
		name    string
		cmd     SetServoPWM
		wantErr bool
	}{
		{name: "channel too high", cmd: SetServoPWM{Channel: 16, On: 0, Off: 100}, wantErr: true},
		{name: "channel negative", cmd: SetServoPWM{Channel: -1, On: 0, Off: 100}, wantErr: true},
		{name: "on too high", cmd: SetServoPWM{Channel: 0, On: 4096, Off: 100}, wantErr: true},
		{name: "off negative", cmd: SetServoPWM{Channel: 0, On: 0, Off: -1}, wantErr: true},
		{name: "full range ok", cmd: SetServoPWM{Channel: 0, On: 0, Off: 4095}, wantErr: false},
		{name: "top channel ok", cmd: SetServoPWM{Channel: 15, On: 4095, Off: 0}, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.cmd)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Encode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestDecodePong(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{name: "pong", data: []byte("pong"), want: true},
		{name: "pang", data: []byte("pang"), want: false},
		{name: "short", data: []byte("pon"), want: false},
		{name: "empty", data: nil, want: false},
		{name: "trailing byte", data: []byte("pong!"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodePong(tt.data); got != tt.want {
				t.Errorf("DecodePong(%q) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}

func TestDecodeAngles(t *testing.T) {
	// 0, 2048, 4096 ticks → 0°, 180°, 360°
	data := []byte{
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x08, 0x00, 0x00,
		0x00, 0x10, 0x00, 0x00,
	}
	angles, err := DecodeAngles(data)
	if err != nil {
		t.Fatalf("DecodeAngles() error = %v", err)
	}
	want := [3]float64{0, 180, 360}
	if angles != want {
		t.Errorf("DecodeAngles() = %v, want %v", angles, want)
	}
}

func TestDecodeAngles_Negative(t *testing.T) {
	// -2048 ticks → -180°
	data := []byte{
		0x00, 0xf8, 0xff, 0xff,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
	}
	angles, err := DecodeAngles(data)
	if err != nil {
		t.Fatalf("DecodeAngles() error = %v", err)
	}
	if angles[0] != -180 {
		t.Errorf("angles[0] = %v, want -180", angles[0])
	}
}

func TestDecodeAngles_ShortRead(t *testing.T) {
	_, err := DecodeAngles(make([]byte, 11))
	if !errors.Is(err, ErrShortResponse) {
		t.Errorf("error = %v, want ErrShortResponse", err)
	}

	_, err = DecodeAngles(nil)
	if !errors.Is(err, ErrShortResponse) {
		t.Errorf("error on nil = %v, want ErrShortResponse", err)
	}
}
