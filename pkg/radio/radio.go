// Package radio defines the transceiver contract of the 2.4 GHz radio
// and the front-end amplifier control.
package radio

import (
	"fmt"
	"strings"
	"time"
)

// IrqBit numbers the interrupt flags of the transceiver.
type IrqBit uint8

// Interrupt flags.
const (
	IrqTxDone IrqBit = iota
	IrqRxDone
	IrqSyncWordValid
	IrqSyncWordError
	IrqHeaderValid
	IrqHeaderError
	IrqCrcError
	IrqRangingSlaveResponseDone
	IrqRangingSlaveRequestDiscard
	IrqRangingMasterResultValid
	IrqRangingMasterTimeout
	IrqRangingSlaveRequestValid
	IrqCadDone
	IrqCadDetected
	IrqRxTxTimeout
	IrqPreambleDetected
)

// IrqStatus is the interrupt status register.
type IrqStatus uint16

// IrqMask builds a status with the given bits set.
func IrqMask(bits ...IrqBit) IrqStatus {
	var s IrqStatus
	for _, b := range bits {
		s |= 1 << b
	}
	return s
}

// IsSet tells whether bit is set.
func (s IrqStatus) IsSet(bit IrqBit) bool {
	return s&(1<<bit) != 0
}

// Any tells whether any of bits is set.
func (s IrqStatus) Any(bits ...IrqBit) bool {
	return s&IrqMask(bits...) != 0
}

// PacketErrors is the decoded error byte of the packet status.
type PacketErrors struct {
	Sync           bool
	Length         bool
	CRC            bool
	Abort          bool
	Header         bool
	PacketReceived bool
	PacketSending  bool
}

// ParsePacketErrors decodes the error status byte.
func ParsePacketErrors(b byte) PacketErrors {
	return PacketErrors{
		Sync:           b&0x40 != 0,
		Length:         b&0x20 != 0,
		CRC:            b&0x10 != 0,
		Abort:          b&0x08 != 0,
		Header:         b&0x04 != 0,
		PacketReceived: b&0x02 != 0,
		PacketSending:  b&0x01 != 0,
	}
}

// Byte encodes the errors back into the status byte.
func (e PacketErrors) Byte() byte {
	var b byte
	for _, f := range []struct {
		set  bool
		mask byte
	}{
		{e.Sync, 0x40}, {e.Length, 0x20}, {e.CRC, 0x10}, {e.Abort, 0x08},
		{e.Header, 0x04}, {e.PacketReceived, 0x02}, {e.PacketSending, 0x01},
	} {
		if f.set {
			b |= f.mask
		}
	}
	return b
}

// Corrupted tells whether the received payload must be discarded.
func (e PacketErrors) Corrupted() bool {
	return e.CRC || e.Length || e.Abort
}

func (e PacketErrors) String() string {
	var names []string
	for _, f := range []struct {
		set  bool
		name string
	}{
		{e.Sync, "sync"}, {e.Length, "length"}, {e.CRC, "crc"}, {e.Abort, "abort"},
		{e.Header, "header"},
	} {
		if f.set {
			names = append(names, f.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// PacketStatus is the status of the last received packet.
type PacketStatus struct {
	// Rssi is the signal strength at sync word detection in dBm.
	Rssi   int32
	Errors PacketErrors
}

// ParsePacketStatus decodes the raw rssi-sync and error bytes.
func ParsePacketStatus(rssiSync, errors byte) PacketStatus {
	return PacketStatus{
		Rssi:   -int32(rssiSync / 2),
		Errors: ParsePacketErrors(errors),
	}
}

// PeriodBase is the tick of a transceiver timeout.
type PeriodBase uint8

// Period bases.
const (
	PeriodBase15us625 PeriodBase = iota
	PeriodBase62us5
	PeriodBase1ms
	PeriodBase4ms
)

// Duration returns the length of one tick.
func (b PeriodBase) Duration() time.Duration {
	switch b {
	case PeriodBase15us625:
		return 15625 * time.Nanosecond
	case PeriodBase62us5:
		return 62500 * time.Nanosecond
	case PeriodBase1ms:
		return time.Millisecond
	case PeriodBase4ms:
		return 4 * time.Millisecond
	}
	return 0
}

func (b PeriodBase) String() string {
	switch b {
	case PeriodBase15us625:
		return "15.625us"
	case PeriodBase62us5:
		return "62.5us"
	case PeriodBase1ms:
		return "1ms"
	case PeriodBase4ms:
		return "4ms"
	}
	return fmt.Sprintf("PeriodBase(%d)", uint8(b))
}

// Timeout is a transceiver timeout in ticks of Base.
// Zero steps waits for a single packet without timeout, ContinuousSteps
// keeps receiving.
type Timeout struct {
	Steps uint16
	Base  PeriodBase
}

// ContinuousSteps selects continuous mode.
const ContinuousSteps = 0xFFFF

// Milliseconds creates a timeout with the 1ms base.
func Milliseconds(ms uint16) Timeout {
	return Timeout{Steps: ms, Base: PeriodBase1ms}
}

// Duration returns the timeout length, 0 for single or continuous mode.
func (t Timeout) Duration() time.Duration {
	if t.Steps == 0 || t.Steps == ContinuousSteps {
		return 0
	}
	return time.Duration(t.Steps) * t.Base.Duration()
}

func (t Timeout) String() string {
	switch t.Steps {
	case 0:
		return "single"
	case ContinuousSteps:
		return "continuous"
	}
	return t.Duration().String()
}

// Transceiver is a packet radio in FLRC mode with variable length packets.
//
// SendPacket and StartReceivePacket only start the operation; completion
// is observed through IrqStatus. ReadPacket returns the payload of the
// last received packet.
type Transceiver interface {
	SetSyncWord1(word uint32) error
	SetFrequency(mhz uint32) error
	SendPacket(data []byte, timeout Timeout) error
	StartReceivePacket(maxLen uint8, timeout Timeout) error
	IrqStatus() (IrqStatus, error)
	ClearIrqStatus() error
	PacketStatus() (PacketStatus, error)
	ReadPacket() ([]byte, error)
}

// MaxPacketSize is the largest payload of the packet buffer.
const MaxPacketSize = 127
