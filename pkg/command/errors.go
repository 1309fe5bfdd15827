package command

import "errors"

// Sentinel errors for common error conditions.
var (
	// ErrInvalidArgument is returned when a command parameter is out of
	// the range the firmware accepts.
	ErrInvalidArgument = errors.New("command: invalid argument")

	// ErrShortResponse is returned when the board sent fewer bytes than
	// the response format requires.
	ErrShortResponse = errors.New("command: short response")
)
