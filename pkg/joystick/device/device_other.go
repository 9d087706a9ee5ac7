//go:build !linux

package device

import "errors"

// ErrUnsupported is returned on systems without the joystick API.
var ErrUnsupported = errors.New("joystick not supported on this system")

// Open always fails with ErrUnsupported.
func Open(index int) (Device, error) {
	return nil, ErrUnsupported
}
