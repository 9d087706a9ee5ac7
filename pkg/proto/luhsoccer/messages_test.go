package luhsoccer

import (
	"testing"

	"github.com/golang/protobuf/proto"
	"github.com/stretchr/testify/require"
)

func TestWrapperEncoding(t *testing.T) {
	w := &ToBasestationWrapper{
		Packets: []*ToBasestationPacket{
			{Id: 3, LocalVelocity: &LocalVelocity{Forward: 1.5}},
		},
	}
	data, err := proto.Marshal(w)
	require.NoError(t, err)
	require.Equal(t, []byte{
		0x0a, 0x09,
		0x08, 0x03,
		0x1a, 0x05, 0x0d, 0x00, 0x00, 0xc0, 0x3f,
	}, data)
}

func TestOneofPresence(t *testing.T) {
	zero := float32(0)
	off := TristateDribblerMode_OFF
	pkt := &ToBasestationPacket{
		Id:             7,
		TeamColor:      TeamColor_YELLOW,
		GlobalPosition: &GlobalPosition{},
		KickerInfo:     &KickerInfo{Relative: &zero, Mode: KickerMode_CHIP},
		DribblerInfo:   &DribblerInfo{TristateMode: &off},
	}
	data, err := proto.Marshal(pkt)
	require.NoError(t, err)

	var decoded ToBasestationPacket
	require.NoError(t, proto.Unmarshal(data, &decoded))
	require.Equal(t, TeamColor_YELLOW, decoded.TeamColor)
	require.Nil(t, decoded.LocalVelocity)
	require.Nil(t, decoded.GlobalVelocity)
	require.NotNil(t, decoded.GlobalPosition)
	require.NotNil(t, decoded.KickerInfo)
	require.NotNil(t, decoded.KickerInfo.Relative)
	require.Nil(t, decoded.KickerInfo.Absolute)
	require.Equal(t, KickerMode_CHIP, decoded.KickerInfo.Mode)
	require.NotNil(t, decoded.DribblerInfo.TristateMode)
	require.Equal(t, TristateDribblerMode_OFF, *decoded.DribblerInfo.TristateMode)
}

func TestFeedbackRoundTrip(t *testing.T) {
	w := &FromBasestationWrapper{
		Packets: []*FromBasestationPacket{{
			Id:              3,
			BatteryVoltage:  15.5,
			HasBall:         true,
			RssiRobot:       -60,
			RssiBasestation: -72,
			MeasuredRtt:     1800,
			FirmwareVersion: &FirmwareVersion{Minor: 3},
			LocalVelocity:   &LocalVelocityFeedback{Forward: 1.5},
		}},
		FirmwareVersion: &FirmwareVersion{},
		SeqId:           42,
	}
	data, err := proto.Marshal(w)
	require.NoError(t, err)
	var decoded FromBasestationWrapper
	require.NoError(t, proto.Unmarshal(data, &decoded))
	require.True(t, proto.Equal(w, &decoded))
	require.Equal(t, "YELLOW", TeamColor_YELLOW.String())
	require.Equal(t, "5", TeamColor(5).String())
}
