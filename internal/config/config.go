// Package config provides configuration helpers for go-nucleo commands.
package config

import (
	"os"
	"time"
)

// Fixed serial parameters for the Nucleo board. The firmware side is
// compiled with these, so they are not runtime-configurable.
const (
	DefaultBaudRate    = 115200
	DefaultReadTimeout = 10 * time.Millisecond
)

// Default network settings for the bridge.
const (
	DefaultListenAddr = ":5743"
)

// ListenAddr returns the bridge listen address from BRIDGE_ADDR.
// Falls back to the provided default if not set.
func ListenAddr(defaultAddr string) string {
	if addr := os.Getenv("BRIDGE_ADDR"); addr != "" {
		return addr
	}
	return defaultAddr
}

// SerialDevice returns a serial device path from NUCLEO_PORT, or ""
// to let port discovery pick one.
func SerialDevice() string {
	return os.Getenv("NUCLEO_PORT")
}

// LogLevel returns the log level from LOG_LEVEL or the given default.
func LogLevel(defaultLevel string) string {
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return defaultLevel
}
