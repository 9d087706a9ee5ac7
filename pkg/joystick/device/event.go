package device

import (
	"encoding/binary"
	"fmt"
)

// EventSize is the size of a js_event record.
const EventSize = 8

// AxisMax is the deflection reported at the end of an axis.
const AxisMax = 32767

const (
	evINIT uint8 = 0x80
	evBTN  uint8 = 0x01
	evAXIS uint8 = 0x02
)

// Kind tells what an Event reports.
type Kind uint8

// Event kinds.
const (
	KindUnknown Kind = iota
	KindAxis
	KindButton
)

func (k Kind) String() string {
	switch k {
	case KindAxis:
		return "axis"
	case KindButton:
		return "button"
	}
	return "unknown"
}

// Event is one change of an axis or a button.
type Event struct {
	Kind  Kind
	Index int
	// Value is the raw axis deflection, or 1 for a pressed button.
	Value int16
	// Initial marks the events synthesized on open to report the current
	// state of the controls.
	Initial bool
}

// Decode parses one js_event record. The timestamp is dropped.
func Decode(buf []byte) (Event, error) {
	if len(buf) < EventSize {
		return Event{}, fmt.Errorf("joystick event of %d bytes", len(buf))
	}
	ev := Event{
		Value:   int16(binary.LittleEndian.Uint16(buf[4:])),
		Index:   int(buf[7]),
		Initial: buf[6]&evINIT != 0,
	}
	switch buf[6] &^ evINIT {
	case evBTN:
		ev.Kind = KindButton
	case evAXIS:
		ev.Kind = KindAxis
	}
	return ev, nil
}

// Axis creates an axis Event, e.g. for replaying input.
func Axis(index int, value int16) Event {
	return Event{Kind: KindAxis, Index: index, Value: value}
}

// Button creates a button Event.
func Button(index int, pressed bool) Event {
	ev := Event{Kind: KindButton, Index: index}
	if pressed {
		ev.Value = 1
	}
	return ev
}

// Pressed tells whether a button event is a press.
func (e Event) Pressed() bool {
	return e.Kind == KindButton && e.Value != 0
}

// Deflection scales an axis value to [-1, 1]. The sign is flipped so
// pushing a stick up or left is positive, matching forward and left of the
// robot frame.
func (e Event) Deflection() float64 {
	v := float64(-int(e.Value)) / AxisMax
	return max(-1, min(1, v))
}

func (e Event) String() string {
	s := fmt.Sprintf("%s %d: %d", e.Kind, e.Index, e.Value)
	if e.Initial {
		s += " (initial)"
	}
	return s
}
