package radio

import (
	"errors"
	"fmt"
	"sync"
)

// ErrStaleHandle is returned when an amplifier handle is used after it
// was transitioned into another mode.
var ErrStaleHandle = errors.New("stale amplifier handle")

// Pin is a control line of the front-end amplifier.
type Pin uint8

// Control lines.
const (
	PinCSD Pin = iota
	PinCPS
	PinCRX
	PinCTX
	PinCHL
	PinAntSel

	numPins
)

var pinNames = [...]string{"CSD", "CPS", "CRX", "CTX", "CHL", "ANT_SEL"}

func (p Pin) String() string {
	if p < numPins {
		return pinNames[p]
	}
	return fmt.Sprintf("Pin(%d)", uint8(p))
}

// Pins drives the control lines.
type Pins interface {
	SetPin(pin Pin, high bool) error
}

// PinLevels keeps the levels in memory, used by simulated radios.
type PinLevels struct {
	lock   sync.Mutex
	levels [numPins]bool
}

// SetPin implements Pins.
func (l *PinLevels) SetPin(pin Pin, high bool) error {
	if pin >= numPins {
		return fmt.Errorf("invalid pin %d", pin)
	}
	l.lock.Lock()
	l.levels[pin] = high
	l.lock.Unlock()
	return nil
}

// Level returns the level of pin.
func (l *PinLevels) Level(pin Pin) bool {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.levels[pin]
}

// Mode is the operating mode of the amplifier.
type Mode uint8

// Amplifier modes.
const (
	ModeUndefined Mode = iota
	ModeSleep
	ModeReceiveLNA
	ModeTransmitHighPower
	ModeTransmitLowPower
	ModeReceiveBypass
	ModeTransmitBypass
)

func (m Mode) String() string {
	switch m {
	case ModeUndefined:
		return "undefined"
	case ModeSleep:
		return "sleep"
	case ModeReceiveLNA:
		return "rx-lna"
	case ModeTransmitHighPower:
		return "tx-high"
	case ModeTransmitLowPower:
		return "tx-low"
	case ModeReceiveBypass:
		return "rx-bypass"
	case ModeTransmitBypass:
		return "tx-bypass"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

type pinLevel struct {
	pin  Pin
	high bool
}

// FrontEnd controls a SKY66112 style front-end module.
//
// Only one handle is valid at a time. Every transition invalidates the
// handle it was called on and returns the handle of the new mode.
type FrontEnd struct {
	// CSDTiedHigh selects the sleep sequence for boards where the chip
	// select line is hard wired: sleep then drops CRX and CTX instead.
	CSDTiedHigh bool

	pins       Pins
	lock       sync.Mutex
	mode       Mode
	generation uint64
}

// NewFrontEnd creates a FrontEnd in undefined mode.
func NewFrontEnd(pins Pins) *FrontEnd {
	return &FrontEnd{pins: pins}
}

// Mode returns the current mode.
func (f *FrontEnd) Mode() Mode {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.mode
}

// Init puts the amplifier to sleep and returns the first handle.
func (f *FrontEnd) Init() (SleepAmp, error) {
	f.lock.Lock()
	gen := f.generation
	f.lock.Unlock()
	h, err := f.transition(gen, ModeSleep)
	if err != nil {
		return nil, err
	}
	return &sleepAmp{h}, nil
}

func (f *FrontEnd) levels(mode Mode) []pinLevel {
	switch mode {
	case ModeSleep:
		if f.CSDTiedHigh {
			return []pinLevel{{PinCSD, true}, {PinCRX, false}, {PinCTX, false}}
		}
		return []pinLevel{{PinCSD, false}}
	case ModeReceiveLNA:
		return []pinLevel{{PinCSD, true}, {PinCPS, false}, {PinCRX, true}, {PinCTX, false}}
	case ModeTransmitHighPower:
		return []pinLevel{{PinCSD, true}, {PinCPS, false}, {PinCTX, true}, {PinCHL, true}}
	case ModeTransmitLowPower:
		return []pinLevel{{PinCSD, true}, {PinCPS, false}, {PinCTX, true}, {PinCHL, false}}
	case ModeReceiveBypass:
		return []pinLevel{{PinCSD, true}, {PinCPS, true}, {PinCRX, true}, {PinCTX, false}}
	case ModeTransmitBypass:
		return []pinLevel{{PinCSD, true}, {PinCPS, true}, {PinCTX, true}}
	}
	return nil
}

func (f *FrontEnd) transition(gen uint64, mode Mode) (handle, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if gen != f.generation {
		return handle{}, ErrStaleHandle
	}
	f.generation++
	f.mode = ModeUndefined
	for _, l := range f.levels(mode) {
		if err := f.pins.SetPin(l.pin, l.high); err != nil {
			return handle{}, fmt.Errorf("set %s: %w", l.pin, err)
		}
	}
	f.mode = mode
	return handle{f: f, gen: f.generation}, nil
}

// SelectAntenna drives the antenna select line, false selects antenna 1.
func (f *FrontEnd) SelectAntenna(second bool) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.pins.SetPin(PinAntSel, second)
}

type handle struct {
	f   *FrontEnd
	gen uint64
}

// Valid tells whether the handle is still the current one.
func (h handle) Valid() bool {
	h.f.lock.Lock()
	defer h.f.lock.Unlock()
	return h.gen == h.f.generation
}

func (h handle) toSleep() (SleepAmp, error) {
	n, err := h.f.transition(h.gen, ModeSleep)
	if err != nil {
		return nil, err
	}
	return &sleepAmp{n}, nil
}

func (h handle) toReceive(mode Mode) (ReceiveAmp, error) {
	n, err := h.f.transition(h.gen, mode)
	if err != nil {
		return nil, err
	}
	return &receiveAmp{handle: n, mode: mode}, nil
}

func (h handle) toTransmit(mode Mode) (TransmitAmp, error) {
	n, err := h.f.transition(h.gen, mode)
	if err != nil {
		return nil, err
	}
	return &transmitAmp{handle: n, mode: mode}, nil
}

// SleepAmp is the amplifier in sleep mode.
type SleepAmp interface {
	Valid() bool
	ReceiveLNA() (ReceiveAmp, error)
	ReceiveBypass() (ReceiveAmp, error)
	TransmitHighPower() (TransmitAmp, error)
	TransmitLowPower() (TransmitAmp, error)
	TransmitBypass() (TransmitAmp, error)
}

// ReceiveAmp is the amplifier in one of the receive modes.
type ReceiveAmp interface {
	Valid() bool
	Mode() Mode
	Sleep() (SleepAmp, error)
	TransmitHighPower() (TransmitAmp, error)
	TransmitLowPower() (TransmitAmp, error)
}

// TransmitAmp is the amplifier in one of the transmit modes.
type TransmitAmp interface {
	Valid() bool
	Mode() Mode
	Sleep() (SleepAmp, error)
	ReceiveLNA() (ReceiveAmp, error)
}

type sleepAmp struct{ handle }

func (a *sleepAmp) ReceiveLNA() (ReceiveAmp, error)    { return a.toReceive(ModeReceiveLNA) }
func (a *sleepAmp) ReceiveBypass() (ReceiveAmp, error) { return a.toReceive(ModeReceiveBypass) }
func (a *sleepAmp) TransmitHighPower() (TransmitAmp, error) {
	return a.toTransmit(ModeTransmitHighPower)
}
func (a *sleepAmp) TransmitLowPower() (TransmitAmp, error) { return a.toTransmit(ModeTransmitLowPower) }
func (a *sleepAmp) TransmitBypass() (TransmitAmp, error)   { return a.toTransmit(ModeTransmitBypass) }

type receiveAmp struct {
	handle
	mode Mode
}

func (a *receiveAmp) Mode() Mode               { return a.mode }
func (a *receiveAmp) Sleep() (SleepAmp, error) { return a.toSleep() }
func (a *receiveAmp) TransmitHighPower() (TransmitAmp, error) {
	return a.toTransmit(ModeTransmitHighPower)
}
func (a *receiveAmp) TransmitLowPower() (TransmitAmp, error) {
	return a.toTransmit(ModeTransmitLowPower)
}

type transmitAmp struct {
	handle
	mode Mode
}

func (a *transmitAmp) Mode() Mode                      { return a.mode }
func (a *transmitAmp) Sleep() (SleepAmp, error)        { return a.toSleep() }
func (a *transmitAmp) ReceiveLNA() (ReceiveAmp, error) { return a.toReceive(ModeReceiveLNA) }
