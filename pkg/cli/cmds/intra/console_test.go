package intra

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/soccer.go/pkg/intra/link"
	"github.com/robotalks/soccer.go/pkg/wire"
)

func TestConsole(t *testing.T) {
	console := NewConsole()
	require.ErrorIs(t, console.Send(wire.KickRaw(100)), ErrNotOpen)
	require.Equal(t, "closed", console.Status())

	mainEnd, motorEnd := net.Pipe()
	defer motorEnd.Close()
	console.Open(mainEnd)
	motor := link.NewMotor(motorEnd)

	go func() {
		require.NoError(t, console.Send(wire.Drive(wire.LocalVelocity{Forward: 500, CounterClockwise: -1024})))
	}()
	msg, err := motor.Receive()
	require.NoError(t, err)
	require.Equal(t, wire.Drive(wire.LocalVelocity{Forward: 500, CounterClockwise: -1024}), msg)

	received, stop := console.Listen()
	defer stop()
	capVoltage := wire.CapVoltage(180)
	require.NoError(t, motor.Send(&capVoltage))
	select {
	case msg := <-received:
		require.Equal(t, capVoltage, msg)
	case <-time.After(time.Second):
		t.Fatal("CapVoltage not received")
	}
	velocity := wire.MotorVelocity(wire.LocalVelocity{Left: 20})
	require.NoError(t, motor.Send(&velocity))
	require.Eventually(t, func() bool {
		return console.Status() == "open, velocity {Forward:0 Left:20 CounterClockwise:0}, capacitor 180V, 2 messages (0 frame errors), updated now"
	}, time.Second, time.Millisecond)

	require.NoError(t, console.Close())
	require.Equal(t, "closed", console.Status())
	require.ErrorIs(t, console.Send(wire.KickRaw(100)), ErrNotOpen)
}
