package wire

import (
	"github.com/robotalks/soccer.go/pkg/postcard"
)

// Radio payload limits imposed by the link budget.
const (
	MaxCommandSize  = 127
	MaxFeedbackSize = 40
)

// BasestationToRobot is the command sent to one robot per radio cycle.
type BasestationToRobot struct {
	ID               uint8
	Team             Team
	Movement         MovementSelection
	KickerChargeHint KickerChargeHint
	KickSpeed        KickSpeedSelection
	KickType         KickSelection
	DribblerSpeed    DribblerSpeedSelection
	RobotPosition    *Position
	GameState        GameState
	TimeSync         *TimeSync
}

// MarshalTo encodes the command.
func (p *BasestationToRobot) MarshalTo(e *postcard.Encoder) {
	e.U8(p.ID)
	encodeEnum(e, "Team", uint8(p.Team), 2)
	p.Movement.marshal(e)
	encodeEnum(e, "KickerChargeHint", uint8(p.KickerChargeHint), 3)
	p.KickSpeed.marshal(e)
	encodeEnum(e, "KickSelection", uint8(p.KickType), 2)
	p.DribblerSpeed.marshal(e)
	if e.Option(p.RobotPosition != nil) {
		p.RobotPosition.marshal(e)
	}
	encodeEnum(e, "GameState", uint8(p.GameState), 3)
	if e.Option(p.TimeSync != nil) {
		p.TimeSync.marshal(e)
	}
}

// UnmarshalFrom decodes the command.
func (p *BasestationToRobot) UnmarshalFrom(d *postcard.Decoder) {
	*p = BasestationToRobot{}
	p.ID = d.U8()
	p.Team = Team(decodeEnum(d, "Team", 2))
	p.Movement.unmarshal(d)
	p.KickerChargeHint = KickerChargeHint(decodeEnum(d, "KickerChargeHint", 3))
	p.KickSpeed.unmarshal(d)
	p.KickType = KickSelection(decodeEnum(d, "KickSelection", 2))
	p.DribblerSpeed.unmarshal(d)
	if d.Option() {
		p.RobotPosition = &Position{}
		p.RobotPosition.unmarshal(d)
	}
	p.GameState = GameState(decodeEnum(d, "GameState", 3))
	if d.Option() {
		p.TimeSync = &TimeSync{}
		p.TimeSync.unmarshal(d)
	}
}

// RobotToBasestation is the feedback a robot replies with.
type RobotToBasestation struct {
	ID                  uint8
	Team                Team
	BatteryVoltage      uint8
	KickerVoltage       uint8
	HasBall             BallState
	Error               uint8
	BatteryCurrent      *uint8
	BatteryCapacityUsed *uint8
	Rssi                uint8
	Velocity            *VelocitySelection
	Position            *Position
	FirmwareVersion     SemVersion
}

// MarshalTo encodes the feedback.
func (p *RobotToBasestation) MarshalTo(e *postcard.Encoder) {
	e.U8(p.ID)
	encodeEnum(e, "Team", uint8(p.Team), 2)
	e.U8(p.BatteryVoltage)
	e.U8(p.KickerVoltage)
	encodeEnum(e, "BallState", uint8(p.HasBall), 2)
	e.U8(p.Error)
	if e.Option(p.BatteryCurrent != nil) {
		e.U8(*p.BatteryCurrent)
	}
	if e.Option(p.BatteryCapacityUsed != nil) {
		e.U8(*p.BatteryCapacityUsed)
	}
	e.U8(p.Rssi)
	if e.Option(p.Velocity != nil) {
		p.Velocity.marshal(e)
	}
	if e.Option(p.Position != nil) {
		p.Position.marshal(e)
	}
	p.FirmwareVersion.marshal(e)
}

// UnmarshalFrom decodes the feedback.
func (p *RobotToBasestation) UnmarshalFrom(d *postcard.Decoder) {
	*p = RobotToBasestation{}
	p.ID = d.U8()
	p.Team = Team(decodeEnum(d, "Team", 2))
	p.BatteryVoltage = d.U8()
	p.KickerVoltage = d.U8()
	p.HasBall = BallState(decodeEnum(d, "BallState", 2))
	p.Error = d.U8()
	if d.Option() {
		v := d.U8()
		p.BatteryCurrent = &v
	}
	if d.Option() {
		v := d.U8()
		p.BatteryCapacityUsed = &v
	}
	p.Rssi = d.U8()
	if d.Option() {
		p.Velocity = &VelocitySelection{}
		p.Velocity.unmarshal(d)
	}
	if d.Option() {
		p.Position = &Position{}
		p.Position.unmarshal(d)
	}
	p.FirmwareVersion.unmarshal(d)
}

// EncodeCommand serializes a command within MaxCommandSize.
func EncodeCommand(p *BasestationToRobot) ([]byte, error) {
	e := postcard.NewEncoder(MaxCommandSize)
	p.MarshalTo(e)
	return e.Bytes()
}

// DecodeCommand parses a command. Bytes after the command are ignored,
// radio payloads may be padded.
func DecodeCommand(data []byte) (p BasestationToRobot, err error) {
	d := postcard.NewDecoder(data)
	p.UnmarshalFrom(d)
	err = d.Err()
	return
}

// EncodeFeedback serializes a feedback within MaxFeedbackSize.
func EncodeFeedback(p *RobotToBasestation) ([]byte, error) {
	e := postcard.NewEncoder(MaxFeedbackSize)
	p.MarshalTo(e)
	return e.Bytes()
}

// DecodeFeedback parses a feedback ignoring trailing bytes.
func DecodeFeedback(data []byte) (p RobotToBasestation, err error) {
	d := postcard.NewDecoder(data)
	p.UnmarshalFrom(d)
	err = d.Err()
	return
}
