// Package device reads game pads through the Linux joystick API.
package device

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
)

// MaxIndex bounds the device scan of DetectAndOpen.
const MaxIndex = 32

// Info describes an opened Device.
type Info struct {
	Index   int
	Name    string
	Axes    int
	Buttons int
}

func (i Info) String() string {
	return fmt.Sprintf("js%d %q (%d axes, %d buttons)", i.Index, i.Name, i.Axes, i.Buttons)
}

// Device is an opened game pad.
type Device interface {
	io.Closer
	Info() Info
	// ReadEvent blocks until the next event.
	ReadEvent() (Event, error)
}

// Path returns the device node of joystick index.
func Path(index int) string {
	return fmt.Sprintf("/dev/input/js%d", index)
}

// DetectAndOpen opens the first present joystick from startIndex, nil if
// there is none.
func DetectAndOpen(startIndex int) (Device, error) {
	for index := startIndex; index < MaxIndex; index++ {
		d, err := Open(index)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return d, err
	}
	return nil, nil
}
