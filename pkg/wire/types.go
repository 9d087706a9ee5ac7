package wire

import (
	"fmt"

	"github.com/robotalks/soccer.go/pkg/postcard"
)

// Position is an absolute field position in mm and a heading x1024 rad.
type Position struct {
	X     int16
	Y     int16
	Theta uint16
}

// LocalVelocity is a velocity in the robot frame.
type LocalVelocity struct {
	Forward          int16
	Left             int16
	CounterClockwise int16
}

// CameraVelocity is a velocity in the field (camera) frame.
type CameraVelocity struct {
	X                int16
	Y                int16
	CounterClockwise int16
}

// TimeSync is an NTP style timestamp.
type TimeSync struct {
	Seconds  uint32
	Fraction uint32
}

// SemVersion is a firmware semantic version.
type SemVersion struct {
	Major uint8
	Minor uint8
	Patch uint8
}

func (v SemVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func (p *Position) marshal(e *postcard.Encoder) {
	e.I16(p.X)
	e.I16(p.Y)
	e.U16(p.Theta)
}

func (p *Position) unmarshal(d *postcard.Decoder) {
	p.X = d.I16()
	p.Y = d.I16()
	p.Theta = d.U16()
}

func (v *LocalVelocity) marshal(e *postcard.Encoder) {
	e.I16(v.Forward)
	e.I16(v.Left)
	e.I16(v.CounterClockwise)
}

func (v *LocalVelocity) unmarshal(d *postcard.Decoder) {
	v.Forward = d.I16()
	v.Left = d.I16()
	v.CounterClockwise = d.I16()
}

func (v *CameraVelocity) marshal(e *postcard.Encoder) {
	e.I16(v.X)
	e.I16(v.Y)
	e.I16(v.CounterClockwise)
}

func (v *CameraVelocity) unmarshal(d *postcard.Decoder) {
	v.X = d.I16()
	v.Y = d.I16()
	v.CounterClockwise = d.I16()
}

func (s *TimeSync) marshal(e *postcard.Encoder) {
	e.U32(s.Seconds)
	e.U32(s.Fraction)
}

func (s *TimeSync) unmarshal(d *postcard.Decoder) {
	s.Seconds = d.U32()
	s.Fraction = d.U32()
}

func (v *SemVersion) marshal(e *postcard.Encoder) {
	e.U8(v.Major)
	e.U8(v.Minor)
	e.U8(v.Patch)
}

func (v *SemVersion) unmarshal(d *postcard.Decoder) {
	v.Major = d.U8()
	v.Minor = d.U8()
	v.Patch = d.U8()
}

// MovementKind selects the representation of a movement command.
type MovementKind uint8

// Movement kinds.
const (
	MovementRobotVelocity MovementKind = iota
	MovementCameraVelocity
	MovementPosition
)

// MovementSelection is a tagged movement command. Only the field matching
// Kind is meaningful.
type MovementSelection struct {
	Kind           MovementKind
	RobotVelocity  LocalVelocity
	CameraVelocity CameraVelocity
	Position       Position
}

// RobotVelocityMovement builds a robot frame velocity command.
func RobotVelocityMovement(v LocalVelocity) MovementSelection {
	return MovementSelection{Kind: MovementRobotVelocity, RobotVelocity: v}
}

// CameraVelocityMovement builds a field frame velocity command.
func CameraVelocityMovement(v CameraVelocity) MovementSelection {
	return MovementSelection{Kind: MovementCameraVelocity, CameraVelocity: v}
}

// PositionMovement builds an absolute position command.
func PositionMovement(p Position) MovementSelection {
	return MovementSelection{Kind: MovementPosition, Position: p}
}

func (m *MovementSelection) marshal(e *postcard.Encoder) {
	e.Variant(uint32(m.Kind))
	switch m.Kind {
	case MovementRobotVelocity:
		m.RobotVelocity.marshal(e)
	case MovementCameraVelocity:
		m.CameraVelocity.marshal(e)
	case MovementPosition:
		m.Position.marshal(e)
	default:
		e.Fail(&postcard.DiscriminantError{Type: "MovementSelection", Value: uint32(m.Kind)})
	}
}

func (m *MovementSelection) unmarshal(d *postcard.Decoder) {
	*m = MovementSelection{Kind: MovementKind(decodeEnum(d, "MovementSelection", 3))}
	switch m.Kind {
	case MovementRobotVelocity:
		m.RobotVelocity.unmarshal(d)
	case MovementCameraVelocity:
		m.CameraVelocity.unmarshal(d)
	case MovementPosition:
		m.Position.unmarshal(d)
	}
}

// KickSpeedKind selects how a kick speed is interpreted.
type KickSpeedKind uint8

// Kick speed kinds.
const (
	KickSpeedRelative KickSpeedKind = iota
	KickSpeedAbsolute
)

// KickSpeedSelection is a kick speed in mm/s.
type KickSpeedSelection struct {
	Kind  KickSpeedKind
	Speed uint16
}

func (k *KickSpeedSelection) marshal(e *postcard.Encoder) {
	if k.Kind > KickSpeedAbsolute {
		e.Fail(&postcard.DiscriminantError{Type: "KickSpeedSelection", Value: uint32(k.Kind)})
	}
	e.Variant(uint32(k.Kind))
	e.U16(k.Speed)
}

func (k *KickSpeedSelection) unmarshal(d *postcard.Decoder) {
	k.Kind = KickSpeedKind(decodeEnum(d, "KickSpeedSelection", 2))
	k.Speed = d.U16()
}

// DribblerSpeedKind selects the representation of a dribbler speed.
type DribblerSpeedKind uint8

// Dribbler speed kinds.
const (
	DribblerSpeedTristate DribblerSpeedKind = iota
	DribblerSpeedPercent
	DribblerSpeedRpm
)

// DribblerSpeedSelection is a tagged dribbler speed.
type DribblerSpeedSelection struct {
	Kind     DribblerSpeedKind
	Tristate DribblerState
	Percent  uint8
	Rpm      uint16
}

func (s *DribblerSpeedSelection) marshal(e *postcard.Encoder) {
	e.Variant(uint32(s.Kind))
	switch s.Kind {
	case DribblerSpeedTristate:
		encodeEnum(e, "DribblerState", uint8(s.Tristate), 3)
	case DribblerSpeedPercent:
		e.U8(s.Percent)
	case DribblerSpeedRpm:
		e.U16(s.Rpm)
	default:
		e.Fail(&postcard.DiscriminantError{Type: "DribblerSpeedSelection", Value: uint32(s.Kind)})
	}
}

func (s *DribblerSpeedSelection) unmarshal(d *postcard.Decoder) {
	*s = DribblerSpeedSelection{Kind: DribblerSpeedKind(decodeEnum(d, "DribblerSpeedSelection", 3))}
	switch s.Kind {
	case DribblerSpeedTristate:
		s.Tristate = DribblerState(decodeEnum(d, "DribblerState", 3))
	case DribblerSpeedPercent:
		s.Percent = d.U8()
	case DribblerSpeedRpm:
		s.Rpm = d.U16()
	}
}

// VelocityKind selects the frame of a velocity report.
type VelocityKind uint8

// Velocity kinds.
const (
	VelocityRobot VelocityKind = iota
	VelocityCamera
)

// VelocitySelection is a tagged velocity report.
type VelocitySelection struct {
	Kind           VelocityKind
	RobotVelocity  LocalVelocity
	CameraVelocity CameraVelocity
}

func (v *VelocitySelection) marshal(e *postcard.Encoder) {
	e.Variant(uint32(v.Kind))
	switch v.Kind {
	case VelocityRobot:
		v.RobotVelocity.marshal(e)
	case VelocityCamera:
		v.CameraVelocity.marshal(e)
	default:
		e.Fail(&postcard.DiscriminantError{Type: "VelocitySelection", Value: uint32(v.Kind)})
	}
}

func (v *VelocitySelection) unmarshal(d *postcard.Decoder) {
	*v = VelocitySelection{Kind: VelocityKind(decodeEnum(d, "VelocitySelection", 2))}
	switch v.Kind {
	case VelocityRobot:
		v.RobotVelocity.unmarshal(d)
	case VelocityCamera:
		v.CameraVelocity.unmarshal(d)
	}
}
