// Package serial opens UARTs for the intra-board link.
package serial

import (
	"fmt"
	"strings"

	"go.bug.st/serial"
)

// DefaultBaudRate is the baud rate of the link between main and motor
// controller.
const DefaultBaudRate = 1000000

// Config describes the UART settings.
type Config struct {
	Device   string
	BaudRate int
	DataBits int
	StopBits string
	Parity   string
}

// DefaultConfig returns 1Mbaud 8N1 on device.
func DefaultConfig(device string) Config {
	return Config{
		Device:   device,
		BaudRate: DefaultBaudRate,
		DataBits: 8,
		StopBits: "1",
		Parity:   "none",
	}
}

// Mode converts the config into serial.Mode.
func (c Config) Mode() (*serial.Mode, error) {
	mode := &serial.Mode{BaudRate: c.BaudRate, DataBits: c.DataBits}
	if mode.BaudRate == 0 {
		mode.BaudRate = DefaultBaudRate
	}
	if mode.DataBits == 0 {
		mode.DataBits = 8
	}
	switch c.StopBits {
	case "", "1":
		mode.StopBits = serial.OneStopBit
	case "1.5":
		mode.StopBits = serial.OnePointFiveStopBits
	case "2":
		mode.StopBits = serial.TwoStopBits
	default:
		return nil, fmt.Errorf("invalid stop bits %q", c.StopBits)
	}
	switch strings.ToLower(c.Parity) {
	case "", "none":
		mode.Parity = serial.NoParity
	case "odd":
		mode.Parity = serial.OddParity
	case "even":
		mode.Parity = serial.EvenParity
	case "mark":
		mode.Parity = serial.MarkParity
	case "space":
		mode.Parity = serial.SpaceParity
	default:
		return nil, fmt.Errorf("invalid parity %q", c.Parity)
	}
	return mode, nil
}

// Open opens the UART.
func (c Config) Open() (serial.Port, error) {
	mode, err := c.Mode()
	if err != nil {
		return nil, err
	}
	port, err := serial.Open(c.Device, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", c.Device, err)
	}
	return port, nil
}

// Ports lists the available UARTs.
func Ports() ([]string, error) {
	return serial.GetPortsList()
}
