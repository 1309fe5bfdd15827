package link

import (
	"strings"

	"go.bug.st/serial/enumerator"
)

// stVendorID is the USB vendor ID of the ST-Link interface on Nucleo
// boards.
const stVendorID = "0483"

// Finder locates the serial device to use. It returns the device path
// or an error when no board can be found. Callers that already know
// the path can pass a closure returning it.
type Finder func() (string, error)

// FixedDevice returns a Finder that always yields the given path.
func FixedDevice(device string) Finder {
	return func() (string, error) {
		return device, nil
	}
}

// DiscoverNucleo scans USB serial ports for a Nucleo board, matching
// on the ST vendor ID or on STM/Nucleo product strings.
func DiscoverNucleo() (string, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return "", err
	}
	for _, port := range ports {
		if !port.IsUSB {
			continue
		}
		if strings.EqualFold(port.VID, stVendorID) ||
			strings.Contains(port.Product, "STM") ||
			strings.Contains(port.Product, "Nucleo") {
			return port.Name, nil
		}
	}
	return "", ErrNoDevice
}
