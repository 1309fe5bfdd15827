// simclient drives the bridge with synthetic control input: a slow
// sine sweep on the joystick and sliders. Useful for soak-testing the
// serial path without a physical control surface.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

type controlFrame struct {
	Joystick struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"joystick"`
	Sliders struct {
		Elevator float64 `json:"Elevator"`
		Claw     float64 `json:"Claw"`
		Omega    float64 `json:"ω"`
	} `json:"sliders"`
}

func main() {
	url := flag.String("url", "ws://localhost:5743/ws/control", "bridge control endpoint")
	rate := flag.Duration("rate", 50*time.Millisecond, "frame interval")
	period := flag.Duration("period", 8*time.Second, "sine sweep period")
	flag.Parse()

	conn, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dial %s: %v\n", *url, err)
		os.Exit(1)
	}
	defer conn.Close()
	fmt.Printf("connected to %s\n", *url)

	// Surface the close reason when the bridge rejects us
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if closeErr, ok := err.(*websocket.CloseError); ok {
					fmt.Printf("bridge closed connection: %s\n", closeErr.Text)
				}
				return
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(*rate)
	defer ticker.Stop()

	start := time.Now()
	frames := 0
	for {
		select {
		case <-done:
			return
		case <-sigChan:
			fmt.Printf("\nsent %d frames\n", frames)
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case <-ticker.C:
			phase := 2 * math.Pi * float64(time.Since(start)) / float64(*period)

			var frame controlFrame
			frame.Joystick.X = math.Sin(phase)
			frame.Joystick.Y = math.Cos(phase)
			frame.Sliders.Elevator = math.Sin(phase / 2)
			frame.Sliders.Claw = math.Cos(phase / 2)
			frame.Sliders.Omega = 0.5 * math.Sin(phase)

			data, err := json.Marshal(frame)
			if err != nil {
				fmt.Fprintf(os.Stderr, "marshal: %v\n", err)
				os.Exit(1)
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				fmt.Fprintf(os.Stderr, "write: %v\n", err)
				return
			}
			frames++
		}
	}
}
