package basestation

import (
	"github.com/robotalks/soccer.go/pkg/proto/luhsoccer"
	"github.com/robotalks/soccer.go/pkg/wire"
)

// Fixed point factors of the radio representation.
const (
	SpeedScale = 1000
	AngleScale = 1024
	// BatteryScale is the factor of the battery voltage reported by robots.
	BatteryScale = 8
)

// Float to integer conversions wrap instead of saturating: the value is
// truncated to int64 and then narrowed, so 40 m/s becomes -25536.

func convertSpeed(v float32) int16 {
	return int16(int64(v * SpeedScale))
}

func convertRads(r float32) int16 {
	return int16(int64(r * AngleScale))
}

func convertRad(r float32) uint16 {
	return uint16(int64(r * AngleScale))
}

// DecodeCommand converts a server command into its radio representation.
// ok is false when the movement, kicker info, kicking speed, dribbler
// info or dribbler mode is missing, when an enum value is unknown, when
// the kicking speed is negative or when the id does not fit a byte.
func DecodeCommand(pkt *luhsoccer.ToBasestationPacket) (cmd wire.BasestationToRobot, ok bool) {
	if pkt == nil || pkt.Id > 0xff {
		return cmd, false
	}
	cmd.ID = uint8(pkt.Id)

	switch pkt.TeamColor {
	case luhsoccer.TeamColor_BLUE:
		cmd.Team = wire.TeamBlue
	case luhsoccer.TeamColor_YELLOW:
		cmd.Team = wire.TeamYellow
	default:
		return cmd, false
	}

	switch {
	case pkt.LocalVelocity != nil:
		v := pkt.LocalVelocity
		cmd.Movement = wire.RobotVelocityMovement(wire.LocalVelocity{
			Forward:          convertSpeed(v.Forward),
			Left:             convertSpeed(v.Left),
			CounterClockwise: convertRads(v.CounterClockwise),
		})
	case pkt.GlobalVelocity != nil:
		v := pkt.GlobalVelocity
		cmd.Movement = wire.CameraVelocityMovement(wire.CameraVelocity{
			X:                convertSpeed(v.X),
			Y:                convertSpeed(v.Y),
			CounterClockwise: convertRads(v.CounterClockwise),
		})
	case pkt.GlobalPosition != nil:
		p := pkt.GlobalPosition
		cmd.Movement = wire.PositionMovement(wire.Position{
			X:     convertSpeed(p.X),
			Y:     convertSpeed(p.Y),
			Theta: convertRad(p.Theta),
		})
	default:
		return cmd, false
	}

	kicker := pkt.KickerInfo
	if kicker == nil {
		return cmd, false
	}
	switch kicker.ChargeHint {
	case luhsoccer.ChargeHint_CHARGE:
		cmd.KickerChargeHint = wire.ChargeHintCharge
	case luhsoccer.ChargeHint_DISCHARGE:
		cmd.KickerChargeHint = wire.ChargeHintDischarge
	case luhsoccer.ChargeHint_DONT_CARE:
		cmd.KickerChargeHint = wire.ChargeHintDontCare
	default:
		return cmd, false
	}
	switch {
	case kicker.Relative != nil:
		speed := convertSpeed(*kicker.Relative)
		if speed < 0 {
			return cmd, false
		}
		cmd.KickSpeed = wire.KickSpeedSelection{Kind: wire.KickSpeedRelative, Speed: uint16(speed)}
	case kicker.Absolute != nil:
		speed := convertSpeed(*kicker.Absolute)
		if speed < 0 {
			return cmd, false
		}
		cmd.KickSpeed = wire.KickSpeedSelection{Kind: wire.KickSpeedAbsolute, Speed: uint16(speed)}
	default:
		return cmd, false
	}
	switch kicker.Mode {
	case luhsoccer.KickerMode_KICK:
		cmd.KickType = wire.KickSelectionKick
	case luhsoccer.KickerMode_CHIP:
		cmd.KickType = wire.KickSelectionChip
	default:
		return cmd, false
	}

	dribbler := pkt.DribblerInfo
	if dribbler == nil {
		return cmd, false
	}
	switch {
	case dribbler.Percent != nil:
		cmd.DribblerSpeed = wire.DribblerSpeedSelection{
			Kind:    wire.DribblerSpeedPercent,
			Percent: uint8(int64(*dribbler.Percent)),
		}
	case dribbler.Rpm != nil:
		cmd.DribblerSpeed = wire.DribblerSpeedSelection{
			Kind: wire.DribblerSpeedRpm,
			Rpm:  uint16(int64(*dribbler.Rpm)),
		}
	case dribbler.TristateMode != nil:
		var state wire.DribblerState
		switch *dribbler.TristateMode {
		case luhsoccer.TristateDribblerMode_OFF:
			state = wire.DribblerOff
		case luhsoccer.TristateDribblerMode_HALF:
			state = wire.DribblerHalf
		case luhsoccer.TristateDribblerMode_FULL:
			state = wire.DribblerFull
		default:
			return cmd, false
		}
		cmd.DribblerSpeed = wire.DribblerSpeedSelection{Kind: wire.DribblerSpeedTristate, Tristate: state}
	default:
		return cmd, false
	}

	cmd.GameState = wire.GameStateNormal
	return cmd, true
}

// EncodeFeedback converts a robot reply into the server representation.
func EncodeFeedback(fb *wire.RobotToBasestation, rssiBasestation int32, rtt uint32) *luhsoccer.FromBasestationPacket {
	pkt := &luhsoccer.FromBasestationPacket{
		Id:              uint32(fb.ID),
		TeamColor:       luhsoccer.TeamColor_BLUE,
		BatteryVoltage:  float32(fb.BatteryVoltage) / BatteryScale,
		KickerVoltage:   float32(fb.KickerVoltage),
		HasBall:         fb.HasBall == wire.BallInDribbler,
		ErrorCode:       uint32(fb.Error),
		RssiRobot:       -int32(fb.Rssi),
		RssiBasestation: rssiBasestation,
		MeasuredRtt:     rtt,
		FirmwareVersion: &luhsoccer.FirmwareVersion{
			Major: uint32(fb.FirmwareVersion.Major),
			Minor: uint32(fb.FirmwareVersion.Minor),
			Patch: uint32(fb.FirmwareVersion.Patch),
		},
	}
	if fb.Team == wire.TeamYellow {
		pkt.TeamColor = luhsoccer.TeamColor_YELLOW
	}
	if v := fb.Velocity; v != nil {
		switch v.Kind {
		case wire.VelocityRobot:
			pkt.LocalVelocity = &luhsoccer.LocalVelocityFeedback{
				Forward:          float32(v.RobotVelocity.Forward) / SpeedScale,
				Left:             float32(v.RobotVelocity.Left) / SpeedScale,
				CounterClockwise: float32(v.RobotVelocity.CounterClockwise) / AngleScale,
			}
		case wire.VelocityCamera:
			pkt.GlobalVelocity = &luhsoccer.GlobalVelocityFeedback{
				X:                float32(v.CameraVelocity.X) / SpeedScale,
				Y:                float32(v.CameraVelocity.Y) / SpeedScale,
				CounterClockwise: float32(v.CameraVelocity.CounterClockwise) / AngleScale,
			}
		}
	}
	return pkt
}
