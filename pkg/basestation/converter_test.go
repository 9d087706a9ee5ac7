package basestation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/soccer.go/pkg/proto/luhsoccer"
	"github.com/robotalks/soccer.go/pkg/wire"
)

func f32(v float32) *float32 { return &v }

func tristate(m luhsoccer.TristateDribblerMode) *luhsoccer.TristateDribblerMode { return &m }

func drivePacket(id uint32, forward float32) *luhsoccer.ToBasestationPacket {
	return &luhsoccer.ToBasestationPacket{
		Id:            id,
		LocalVelocity: &luhsoccer.LocalVelocity{Forward: forward},
		KickerInfo:    &luhsoccer.KickerInfo{Relative: f32(0)},
		DribblerInfo:  &luhsoccer.DribblerInfo{TristateMode: tristate(luhsoccer.TristateDribblerMode_OFF)},
	}
}

func TestDecodeDriveCommand(t *testing.T) {
	cmd, ok := DecodeCommand(drivePacket(3, 1.5))
	require.True(t, ok)
	require.Equal(t, wire.BasestationToRobot{
		ID:            3,
		Team:          wire.TeamBlue,
		Movement:      wire.RobotVelocityMovement(wire.LocalVelocity{Forward: 1500}),
		KickSpeed:     wire.KickSpeedSelection{Kind: wire.KickSpeedRelative},
		DribblerSpeed: wire.DribblerSpeedSelection{Kind: wire.DribblerSpeedTristate, Tristate: wire.DribblerOff},
		GameState:     wire.GameStateNormal,
	}, cmd)

	payload, err := wire.EncodeCommand(&cmd)
	require.NoError(t, err)
	require.Equal(t, []byte{0xb8, 0x17}, payload[3:5])
}

func TestDecodeWrapsOutOfRangeSpeed(t *testing.T) {
	cmd, ok := DecodeCommand(drivePacket(1, 40.0))
	require.True(t, ok)
	require.Equal(t, int16(-25536), cmd.Movement.RobotVelocity.Forward)

	cmd, ok = DecodeCommand(drivePacket(1, -40.0))
	require.True(t, ok)
	require.Equal(t, int16(25536), cmd.Movement.RobotVelocity.Forward)
}

func TestDecodeVariants(t *testing.T) {
	pkt := &luhsoccer.ToBasestationPacket{
		Id:             15,
		TeamColor:      luhsoccer.TeamColor_YELLOW,
		GlobalPosition: &luhsoccer.GlobalPosition{X: 4.5, Y: -3, Theta: 3.1415},
		KickerInfo: &luhsoccer.KickerInfo{
			ChargeHint: luhsoccer.ChargeHint_DONT_CARE,
			Absolute:   f32(6.5),
			Mode:       luhsoccer.KickerMode_CHIP,
		},
		DribblerInfo: &luhsoccer.DribblerInfo{Percent: f32(40.9)},
	}
	cmd, ok := DecodeCommand(pkt)
	require.True(t, ok)
	require.Equal(t, wire.TeamYellow, cmd.Team)
	require.Equal(t, wire.PositionMovement(wire.Position{X: 4500, Y: -3000, Theta: 3216}), cmd.Movement)
	require.Equal(t, wire.ChargeHintDontCare, cmd.KickerChargeHint)
	require.Equal(t, wire.KickSpeedSelection{Kind: wire.KickSpeedAbsolute, Speed: 6500}, cmd.KickSpeed)
	require.Equal(t, wire.KickSelectionChip, cmd.KickType)
	require.Equal(t, wire.DribblerSpeedSelection{Kind: wire.DribblerSpeedPercent, Percent: 40}, cmd.DribblerSpeed)
	require.Nil(t, cmd.RobotPosition)
	require.Nil(t, cmd.TimeSync)

	pkt.GlobalPosition = nil
	pkt.GlobalVelocity = &luhsoccer.GlobalVelocity{X: -1.2, Y: 0.8, CounterClockwise: -3.1415}
	pkt.DribblerInfo = &luhsoccer.DribblerInfo{Rpm: f32(12000.7)}
	cmd, ok = DecodeCommand(pkt)
	require.True(t, ok)
	require.Equal(t, wire.CameraVelocityMovement(wire.CameraVelocity{X: -1200, Y: 800, CounterClockwise: -3216}), cmd.Movement)
	require.Equal(t, wire.DribblerSpeedSelection{Kind: wire.DribblerSpeedRpm, Rpm: 12000}, cmd.DribblerSpeed)
}

func TestDecodeRejects(t *testing.T) {
	cases := []struct {
		name   string
		modify func(*luhsoccer.ToBasestationPacket)
	}{
		{"no movement", func(p *luhsoccer.ToBasestationPacket) { p.LocalVelocity = nil }},
		{"no kicker info", func(p *luhsoccer.ToBasestationPacket) { p.KickerInfo = nil }},
		{"no kicking speed", func(p *luhsoccer.ToBasestationPacket) { p.KickerInfo.Relative = nil }},
		{"negative kicking speed", func(p *luhsoccer.ToBasestationPacket) { p.KickerInfo.Relative = f32(-0.5) }},
		{"no dribbler info", func(p *luhsoccer.ToBasestationPacket) { p.DribblerInfo = nil }},
		{"no dribbler mode", func(p *luhsoccer.ToBasestationPacket) { p.DribblerInfo.TristateMode = nil }},
		{"unknown tristate", func(p *luhsoccer.ToBasestationPacket) {
			p.DribblerInfo.TristateMode = tristate(luhsoccer.TristateDribblerMode(7))
		}},
		{"unknown team", func(p *luhsoccer.ToBasestationPacket) { p.TeamColor = luhsoccer.TeamColor(2) }},
		{"unknown charge hint", func(p *luhsoccer.ToBasestationPacket) { p.KickerInfo.ChargeHint = luhsoccer.ChargeHint(3) }},
		{"unknown kicker mode", func(p *luhsoccer.ToBasestationPacket) { p.KickerInfo.Mode = luhsoccer.KickerMode(2) }},
		{"id beyond byte", func(p *luhsoccer.ToBasestationPacket) { p.Id = 259 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pkt := drivePacket(3, 1)
			c.modify(pkt)
			_, ok := DecodeCommand(pkt)
			require.False(t, ok)
		})
	}
	_, ok := DecodeCommand(nil)
	require.False(t, ok)
}

func TestEncodeFeedback(t *testing.T) {
	fb := wire.RobotToBasestation{
		ID:              3,
		Team:            wire.TeamYellow,
		BatteryVoltage:  124,
		KickerVoltage:   230,
		HasBall:         wire.BallInDribbler,
		Error:           2,
		Rssi:            60,
		Velocity:        &wire.VelocitySelection{Kind: wire.VelocityRobot, RobotVelocity: wire.LocalVelocity{Forward: 1500, Left: -250, CounterClockwise: 512}},
		Position:        &wire.Position{X: 1},
		FirmwareVersion: wire.SemVersion{Major: 0, Minor: 3, Patch: 1},
	}
	pkt := EncodeFeedback(&fb, -72, 1800)
	require.Equal(t, &luhsoccer.FromBasestationPacket{
		Id:              3,
		TeamColor:       luhsoccer.TeamColor_YELLOW,
		BatteryVoltage:  15.5,
		KickerVoltage:   230,
		HasBall:         true,
		ErrorCode:       2,
		RssiRobot:       -60,
		RssiBasestation: -72,
		MeasuredRtt:     1800,
		FirmwareVersion: &luhsoccer.FirmwareVersion{Minor: 3, Patch: 1},
		LocalVelocity:   &luhsoccer.LocalVelocityFeedback{Forward: 1.5, Left: -0.25, CounterClockwise: 0.5},
	}, pkt)

	fb.Velocity = &wire.VelocitySelection{Kind: wire.VelocityCamera, CameraVelocity: wire.CameraVelocity{X: -1000}}
	fb.HasBall = wire.BallNotInDribbler
	pkt = EncodeFeedback(&fb, 0, 0)
	require.False(t, pkt.HasBall)
	require.Nil(t, pkt.LocalVelocity)
	require.Equal(t, float32(-1), pkt.GlobalVelocity.X)
	require.Nil(t, pkt.GlobalPosition)
	require.Nil(t, pkt.BatteryCurrent)
	require.Zero(t, pkt.FeedbackTime)

	fb.Velocity = nil
	pkt = EncodeFeedback(&fb, 0, 0)
	require.Nil(t, pkt.LocalVelocity)
	require.Nil(t, pkt.GlobalVelocity)
}
