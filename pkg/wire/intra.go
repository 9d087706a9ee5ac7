package wire

import (
	"fmt"

	"github.com/robotalks/soccer.go/pkg/postcard"
)

// Main2MotorKind is the variant of a main to motor controller message.
type Main2MotorKind uint8

// Main2Motor variants.
const (
	Main2MotorDrive Main2MotorKind = iota
	Main2MotorKick
	Main2MotorChip
	Main2MotorKickRaw
	Main2MotorBallInDribbler
	Main2MotorBallNotInDribbler
	Main2MotorCalibrateCapVoltage
	Main2MotorChargeHint

	main2MotorVariants
)

var main2MotorNames = [...]string{
	"Drive", "Kick", "Chip", "KickRaw", "BallInDribbler",
	"BallNotInDribbler", "CalibrateCapVoltage", "ChargeHint",
}

func (k Main2MotorKind) String() string {
	if k < main2MotorVariants {
		return main2MotorNames[k]
	}
	return fmt.Sprintf("Main2Motor(%d)", uint8(k))
}

// Main2Motor is sent from the main controller to the motor controller.
//
// Value carries the speed (mm/s) of Kick and Chip and the duration (us)
// of KickRaw. Voltage carries the measured voltage of CalibrateCapVoltage.
type Main2Motor struct {
	Kind       Main2MotorKind
	Velocity   LocalVelocity
	Value      uint16
	Voltage    uint8
	ChargeHint KickerChargeHint
}

func (m Main2Motor) String() string {
	switch m.Kind {
	case Main2MotorDrive:
		return fmt.Sprintf("Drive(%+v)", m.Velocity)
	case Main2MotorKick, Main2MotorChip, Main2MotorKickRaw:
		return fmt.Sprintf("%s(%d)", m.Kind, m.Value)
	case Main2MotorCalibrateCapVoltage:
		return fmt.Sprintf("%s(%d)", m.Kind, m.Voltage)
	case Main2MotorChargeHint:
		return fmt.Sprintf("%s(%s)", m.Kind, m.ChargeHint)
	}
	return m.Kind.String()
}

// MarshalTo encodes the message.
func (m *Main2Motor) MarshalTo(e *postcard.Encoder) {
	encodeEnum(e, "Main2Motor", uint8(m.Kind), uint32(main2MotorVariants))
	switch m.Kind {
	case Main2MotorDrive:
		m.Velocity.marshal(e)
	case Main2MotorKick, Main2MotorChip, Main2MotorKickRaw:
		e.U16(m.Value)
	case Main2MotorCalibrateCapVoltage:
		e.U8(m.Voltage)
	case Main2MotorChargeHint:
		encodeEnum(e, "KickerChargeHint", uint8(m.ChargeHint), 3)
	}
}

// UnmarshalFrom decodes the message.
func (m *Main2Motor) UnmarshalFrom(d *postcard.Decoder) {
	*m = Main2Motor{Kind: Main2MotorKind(decodeEnum(d, "Main2Motor", uint32(main2MotorVariants)))}
	switch m.Kind {
	case Main2MotorDrive:
		m.Velocity.unmarshal(d)
	case Main2MotorKick, Main2MotorChip, Main2MotorKickRaw:
		m.Value = d.U16()
	case Main2MotorCalibrateCapVoltage:
		m.Voltage = d.U8()
	case Main2MotorChargeHint:
		m.ChargeHint = KickerChargeHint(decodeEnum(d, "KickerChargeHint", 3))
	}
}

// Motor2MainKind is the variant of a motor to main controller message.
type Motor2MainKind uint8

// Motor2Main variants.
const (
	Motor2MainMotorVelocity Motor2MainKind = iota
	Motor2MainCapVoltage
)

func (k Motor2MainKind) String() string {
	switch k {
	case Motor2MainMotorVelocity:
		return "MotorVelocity"
	case Motor2MainCapVoltage:
		return "CapVoltage"
	}
	return fmt.Sprintf("Motor2Main(%d)", uint8(k))
}

// Motor2Main is sent from the motor controller to the main controller.
type Motor2Main struct {
	Kind     Motor2MainKind
	Velocity LocalVelocity
	Voltage  uint8
}

func (m Motor2Main) String() string {
	if m.Kind == Motor2MainMotorVelocity {
		return fmt.Sprintf("MotorVelocity(%+v)", m.Velocity)
	}
	return fmt.Sprintf("%s(%d)", m.Kind, m.Voltage)
}

// MarshalTo encodes the message.
func (m *Motor2Main) MarshalTo(e *postcard.Encoder) {
	encodeEnum(e, "Motor2Main", uint8(m.Kind), 2)
	switch m.Kind {
	case Motor2MainMotorVelocity:
		m.Velocity.marshal(e)
	case Motor2MainCapVoltage:
		e.U8(m.Voltage)
	}
}

// UnmarshalFrom decodes the message.
func (m *Motor2Main) UnmarshalFrom(d *postcard.Decoder) {
	*m = Motor2Main{Kind: Motor2MainKind(decodeEnum(d, "Motor2Main", 2))}
	switch m.Kind {
	case Motor2MainMotorVelocity:
		m.Velocity.unmarshal(d)
	case Motor2MainCapVoltage:
		m.Voltage = d.U8()
	}
}

// Drive builds a Drive message.
func Drive(v LocalVelocity) Main2Motor { return Main2Motor{Kind: Main2MotorDrive, Velocity: v} }

// Kick builds a Kick message with speed in mm/s.
func Kick(speed uint16) Main2Motor { return Main2Motor{Kind: Main2MotorKick, Value: speed} }

// Chip builds a Chip message with speed in mm/s.
func Chip(speed uint16) Main2Motor { return Main2Motor{Kind: Main2MotorChip, Value: speed} }

// KickRaw builds a KickRaw message with a duration in us.
func KickRaw(us uint16) Main2Motor { return Main2Motor{Kind: Main2MotorKickRaw, Value: us} }

// BallPresence builds a BallInDribbler or BallNotInDribbler message.
func BallPresence(in bool) Main2Motor {
	if in {
		return Main2Motor{Kind: Main2MotorBallInDribbler}
	}
	return Main2Motor{Kind: Main2MotorBallNotInDribbler}
}

// CalibrateCapVoltage builds a calibration message with the measured voltage.
func CalibrateCapVoltage(measured uint8) Main2Motor {
	return Main2Motor{Kind: Main2MotorCalibrateCapVoltage, Voltage: measured}
}

// ChargeHint builds a charge hint message.
func ChargeHint(hint KickerChargeHint) Main2Motor {
	return Main2Motor{Kind: Main2MotorChargeHint, ChargeHint: hint}
}

// MotorVelocity builds a measured velocity message.
func MotorVelocity(v LocalVelocity) Motor2Main {
	return Motor2Main{Kind: Motor2MainMotorVelocity, Velocity: v}
}

// CapVoltage builds a capacitor voltage message.
func CapVoltage(volts uint8) Motor2Main {
	return Motor2Main{Kind: Motor2MainCapVoltage, Voltage: volts}
}
