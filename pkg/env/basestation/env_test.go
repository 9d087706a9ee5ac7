package basestation

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/soccer.go/pkg/framework"
	"github.com/robotalks/soccer.go/pkg/proto/luhsoccer"
	simrobot "github.com/robotalks/soccer.go/pkg/sim/bots/robot"
)

func testConfig() *Config {
	c := NewConfig()
	c.ServerURL = "udp://127.0.0.1:0"
	c.VisionAddr = ""
	c.MQTTURL = ""
	c.TelemetryDB = ""
	c.HTTPAddr = ""
	c.Sim = simrobot.NewConfig()
	return c
}

func TestIdentity(t *testing.T) {
	require.True(t, strings.HasPrefix(Identity(), HostnamePrefix))
	require.Equal(t, Identity(), Identity())
}

func TestNewEnvErrors(t *testing.T) {
	c := testConfig()
	c.ServerURL = "smtp://localhost"
	_, err := c.NewEnv()
	require.Error(t, err)

	c = testConfig()
	c.Sim.Robots, c.Sim.Team = 1, "green"
	_, err = c.NewEnv()
	require.Error(t, err)
}

func TestSimulatedBasestation(t *testing.T) {
	c := testConfig()
	c.Sim.Robots = 2
	c.TelemetryDB = t.TempDir() + "/feedback.db"
	e, err := c.NewEnv()
	require.NoError(t, err)
	defer e.Close()
	require.Len(t, e.Fleet.Robots, 2)
	require.NotNil(t, e.Recorder)

	loop := fx.NewLoop().Add(e)
	require.Equal(t, DefaultTick, loop.Interval)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	conn, err := net.Dial("udp", e.Server.(interface{ LocalAddr() net.Addr }).LocalAddr().String())
	require.NoError(t, err)
	defer conn.Close()
	cmd, err := proto.Marshal(&luhsoccer.ToBasestationWrapper{
		Packets: []*luhsoccer.ToBasestationPacket{{
			Id:            1,
			TeamColor:     luhsoccer.TeamColor_BLUE,
			LocalVelocity: &luhsoccer.LocalVelocity{Forward: 0.5},
			KickerInfo:    &luhsoccer.KickerInfo{Relative: proto.Float32(0)},
			DribblerInfo:  &luhsoccer.DribblerInfo{TristateMode: luhsoccer.TristateDribblerMode_OFF.Enum()},
		}},
	})
	require.NoError(t, err)

	buf := make([]byte, 2048)
	var feedback luhsoccer.FromBasestationWrapper
	require.Eventually(t, func() bool {
		if _, err := conn.Write(cmd); err != nil {
			return false
		}
		conn.SetReadDeadline(time.Now().Add(50 * time.Millisecond))
		n, err := conn.Read(buf)
		if err != nil {
			return false
		}
		require.NoError(t, proto.Unmarshal(buf[:n], &feedback))
		return len(feedback.Packets) > 0
	}, 5*time.Second, time.Millisecond)
	require.EqualValues(t, 1, feedback.Packets[0].Id)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
	require.NotZero(t, e.Recorder.Rows())
}
