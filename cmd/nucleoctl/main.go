// nucleoctl talks to the Nucleo board directly over serial, without
// the bridge. Handy on the bench for checking wiring, calibration, and
// firmware behavior.
//
// Usage:
//
//	nucleoctl [-device /dev/ttyACM0] ping
//	nucleoctl angles
//	nucleoctl stop
//	nucleoctl wheels <v0> <v1> <v2>
//	nucleoctl servo <channel> <angle>
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/triomni/go-nucleo/internal/config"
	"github.com/triomni/go-nucleo/internal/log"
	"github.com/triomni/go-nucleo/pkg/command"
	"github.com/triomni/go-nucleo/pkg/link"
	"github.com/triomni/go-nucleo/pkg/motion"
)

func main() {
	device := flag.String("device", config.SerialDevice(), "serial device path (empty = auto-discover)")
	baud := flag.Int("baud", config.DefaultBaudRate, "serial baud rate")
	flag.Parse()

	log.Init("warn")

	args := flag.Args()
	if len(args) == 0 {
		usage()
	}

	find := link.Finder(link.DiscoverNucleo)
	if *device != "" {
		find = link.FixedDevice(*device)
	}

	board, err := link.Open(find, link.PortConfig{
		BaudRate:    *baud,
		ReadTimeout: 200 * config.DefaultReadTimeout, // generous for hand-run queries
	})
	if err != nil {
		fatalf("Failed to open controller board: %v", err)
	}
	defer board.Close()

	switch args[0] {
	case "ping":
		ok, err := board.Ping()
		if err != nil {
			fatalf("ping failed: %v", err)
		}
		if !ok {
			fatalf("no pong from board")
		}
		fmt.Println("pong")

	case "angles":
		angles, err := board.ReadAngles()
		if err != nil {
			fatalf("angle read failed: %v", err)
		}
		fmt.Printf("joint angles: %.2f° %.2f° %.2f°\n", angles[0], angles[1], angles[2])

	case "stop":
		if err := board.Send(command.StopAllSteppers{}); err != nil {
			fatalf("stop failed: %v", err)
		}
		fmt.Println("all steppers stopped")

	case "wheels":
		if len(args) != 4 {
			usage()
		}
		var speeds [3]int32
		for i, arg := range args[1:] {
			v, err := strconv.ParseInt(arg, 10, 32)
			if err != nil {
				fatalf("bad wheel speed %q: %v", arg, err)
			}
			speeds[i] = int32(v)
		}
		if err := board.Send(command.SetWheelSpeeds{V0: speeds[0], V1: speeds[1], V2: speeds[2]}); err != nil {
			fatalf("wheel speeds failed: %v", err)
		}
		fmt.Printf("wheel speeds set: %d %d %d\n", speeds[0], speeds[1], speeds[2])

	case "servo":
		if len(args) != 3 {
			usage()
		}
		channel, err := strconv.Atoi(args[1])
		if err != nil {
			fatalf("bad channel %q: %v", args[1], err)
		}
		angle, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			fatalf("bad angle %q: %v", args[2], err)
		}
		cal, err := motion.DefaultCalibrations().Lookup(channel)
		if err != nil {
			fatalf("%v", err)
		}
		pulse := cal.Pulse(angle)
		if err := board.Send(command.SetServoPWM{Channel: channel, On: 0, Off: pulse}); err != nil {
			fatalf("servo failed: %v", err)
		}
		fmt.Printf("servo %d → %.1f° (pulse %d)\n", channel, angle, pulse)

	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: nucleoctl [flags] ping|angles|stop|wheels v0 v1 v2|servo ch angle")
	os.Exit(2)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
