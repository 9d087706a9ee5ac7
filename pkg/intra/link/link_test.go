package link

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/soccer.go/pkg/intra/frame"
	"github.com/robotalks/soccer.go/pkg/wire"
)

type pipeStream struct {
	io.Reader
	io.Writer
}

func newPair() (*Main, *Motor) {
	mainR, motorW := io.Pipe()
	motorR, mainW := io.Pipe()
	return NewMain(&pipeStream{Reader: mainR, Writer: mainW}),
		NewMotor(&pipeStream{Reader: motorR, Writer: motorW})
}

func TestMainToMotor(t *testing.T) {
	main, motor := newPair()
	msgs := []wire.Main2Motor{
		wire.Drive(wire.LocalVelocity{Forward: -32768, Left: 32767, CounterClockwise: -1}),
		wire.Kick(4000),
		wire.Chip(1),
		wire.KickRaw(65535),
		wire.BallPresence(true),
		wire.BallPresence(false),
		wire.CalibrateCapVoltage(231),
		wire.ChargeHint(wire.ChargeHintDischarge),
	}
	go func() {
		for i := range msgs {
			main.Send(&msgs[i])
		}
	}()
	for _, expected := range msgs {
		msg, err := motor.Receive()
		require.NoError(t, err)
		require.Equal(t, expected, msg)
	}
}

func TestMotorToMain(t *testing.T) {
	main, motor := newPair()
	msgs := []wire.Motor2Main{
		wire.MotorVelocity(wire.LocalVelocity{Forward: 1500, Left: -20, CounterClockwise: 512}),
		wire.CapVoltage(230),
	}
	go func() {
		for i := range msgs {
			motor.Send(&msgs[i])
		}
	}()
	for _, expected := range msgs {
		msg, err := main.Receive()
		require.NoError(t, err)
		require.Equal(t, expected, msg)
	}
}

func TestLargestMessageFitsFrame(t *testing.T) {
	msg := wire.Drive(wire.LocalVelocity{Forward: -32768, Left: -32768, CounterClockwise: -32768})
	payload, err := Encode(&msg)
	require.NoError(t, err)
	require.True(t, len(payload)+2 <= frame.DefaultMaxFrameSize)
}

func TestReceiveUndecodable(t *testing.T) {
	mainR, mainW := io.Pipe()
	_, discard := io.Pipe()
	main := NewMain(&pipeStream{Reader: mainR, Writer: discard})
	w := frame.NewWriter(mainW)
	go func() {
		w.WriteFrame([]byte{0x07})
		w.WriteFrame([]byte{0x01, 0x05, 0x00})
		msg := wire.CapVoltage(12)
		payload, _ := Encode(&msg)
		w.WriteFrame(payload)
	}()

	_, err := main.Receive()
	require.True(t, frame.IsFrameError(err))
	var decodeErr *frame.DecodeError
	require.True(t, errors.As(err, &decodeErr))

	_, err = main.Receive()
	require.True(t, frame.IsFrameError(err))

	msg, err := main.Receive()
	require.NoError(t, err)
	require.Equal(t, wire.CapVoltage(12), msg)
}

func TestServe(t *testing.T) {
	mainR, mainW := io.Pipe()
	_, discard := io.Pipe()
	main := NewMain(&pipeStream{Reader: mainR, Writer: discard})
	w := frame.NewWriter(mainW)
	go func() {
		msg := wire.CapVoltage(100)
		payload, _ := Encode(&msg)
		w.WriteFrame(payload)
		w.WriteFrame([]byte{0x07})
		msg = wire.MotorVelocity(wire.LocalVelocity{Left: 5})
		payload, _ = Encode(&msg)
		w.WriteFrame(payload)
		mainW.Close()
	}()

	var msgs []wire.Motor2Main
	var errs []error
	err := main.Serve(context.Background(), func(msg wire.Motor2Main) {
		msgs = append(msgs, msg)
	}, func(err error) {
		errs = append(errs, err)
	})
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, []wire.Motor2Main{
		wire.CapVoltage(100),
		wire.MotorVelocity(wire.LocalVelocity{Left: 5}),
	}, msgs)
	require.Len(t, errs, 1)
}

func TestServeCancel(t *testing.T) {
	mainR, _ := io.Pipe()
	_, discard := io.Pipe()
	main := NewMain(&pipeStream{Reader: mainR, Writer: discard})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := main.Serve(ctx, func(wire.Motor2Main) {}, nil)
	require.ErrorIs(t, err, context.Canceled)
}
