package link

import "errors"

// Sentinel errors for common error conditions.
var (
	// ErrNoDevice is returned when port discovery finds no controller
	// board. This is fatal at startup.
	ErrNoDevice = errors.New("link: no controller board found, ensure it is connected")

	// ErrClosed is returned when sending or receiving on a closed link.
	ErrClosed = errors.New("link: closed")
)
