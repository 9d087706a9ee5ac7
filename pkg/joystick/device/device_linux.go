//go:build linux

package device

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// JSIOCGAXES, JSIOCGBUTTONS and JSIOCGNAME(255) of linux/joystick.h.
const (
	jsiocgAxes    = 0x80016a11
	jsiocgButtons = 0x80016a12
	jsiocgName    = 0x80ff6a13
)

type joystick struct {
	file *os.File
	info Info
	buf  [EventSize]byte
}

// Open opens joystick index.
func Open(index int) (Device, error) {
	f, err := os.Open(Path(index))
	if err != nil {
		return nil, err
	}
	js := &joystick{file: f, info: Info{Index: index}}
	if err := js.query(); err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", f.Name(), err)
	}
	return js, nil
}

func (js *joystick) query() error {
	var (
		axes, buttons uint8
		name          [255]byte
	)
	if err := js.ioctl(jsiocgAxes, unsafe.Pointer(&axes)); err != nil {
		return err
	}
	if err := js.ioctl(jsiocgButtons, unsafe.Pointer(&buttons)); err != nil {
		return err
	}
	if err := js.ioctl(jsiocgName, unsafe.Pointer(&name[0])); err != nil {
		return err
	}
	n := name[:]
	if pos := bytes.IndexByte(n, 0); pos >= 0 {
		n = n[:pos]
	}
	js.info.Name, js.info.Axes, js.info.Buttons = string(n), int(axes), int(buttons)
	return nil
}

func (js *joystick) ioctl(req uintptr, ptr unsafe.Pointer) error {
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, js.file.Fd(), req, uintptr(ptr)); errno != 0 {
		return errno
	}
	return nil
}

func (js *joystick) Info() Info {
	return js.info
}

func (js *joystick) ReadEvent() (Event, error) {
	if _, err := io.ReadFull(js.file, js.buf[:]); err != nil {
		return Event{}, err
	}
	return Decode(js.buf[:])
}

func (js *joystick) Close() error {
	return js.file.Close()
}
