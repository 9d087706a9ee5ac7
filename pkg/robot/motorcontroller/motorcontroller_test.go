package motorcontroller

import (
	"context"
	"math"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/soccer.go/pkg/intra/link"
	"github.com/robotalks/soccer.go/pkg/robot/config"
	"github.com/robotalks/soccer.go/pkg/wire"
)

func newTestSignals() *Signals {
	return NewSignals(config.NewMotor(config.DefaultMotorV0()))
}

func TestMovementWire(t *testing.T) {
	v := wire.LocalVelocity{Forward: 1500, Left: -250, CounterClockwise: 2048}
	m := MovementFromWire(v)
	require.Equal(t, Movement{Forward: 1.5, Left: -0.25, CounterClockwise: 2}, m)
	require.Equal(t, v, m.Wire())

	require.Equal(t, wire.LocalVelocity{Forward: math.MaxInt16, Left: math.MinInt16},
		Movement{Forward: 100, Left: -100, CounterClockwise: math.NaN()}.Wire())
}

func TestApply(t *testing.T) {
	s := newTestSignals()

	s.Apply(wire.Drive(wire.LocalVelocity{Forward: 1000, CounterClockwise: -512}))
	require.Equal(t, Movement{Forward: 1, CounterClockwise: -0.5}, s.MovementSetpoint.Get())

	s.Apply(wire.Chip(2500))
	require.EqualValues(t, 2500, s.KickSpeed.Get())
	s.Apply(wire.KickRaw(1200))
	require.Equal(t, 1200*time.Microsecond, s.KickRawDuration.Get())

	s.Apply(wire.BallPresence(true))
	require.True(t, s.HasBall.Get())
	s.Apply(wire.BallPresence(false))
	require.False(t, s.HasBall.Get())

	s.Apply(wire.ChargeHint(wire.ChargeHintCharge))
	require.EqualValues(t, 200, s.KickerSetVoltage.Get())
	s.Apply(wire.ChargeHint(wire.ChargeHintDischarge))
	require.EqualValues(t, 0, s.KickerSetVoltage.Get())
	s.Apply(wire.ChargeHint(wire.ChargeHintDontCare))
	require.EqualValues(t, 200, s.KickerSetVoltage.Get())
}

func TestCalibrate(t *testing.T) {
	s := newTestSignals()
	s.KickerCapVoltage.Set(250)
	s.Apply(wire.CalibrateCapVoltage(200))
	require.EqualValues(t, 594, s.Config.KickerCapDAC230V.Get())
	require.EqualValues(t, 1657, s.Config.KickerCapADC230V.Get())
	select {
	case <-s.SaveConfig:
	default:
		t.Fatal("save not requested")
	}

	s = newTestSignals()
	s.Apply(wire.CalibrateCapVoltage(0))
	require.EqualValues(t, config.MaxKickerCapDAC, s.Config.KickerCapDAC230V.Get())
	require.EqualValues(t, 1, s.Config.KickerCapADC230V.Get())
}

func TestKickerConversions(t *testing.T) {
	require.Equal(t, 149*time.Microsecond, KickTime(0))
	require.Equal(t, 339*time.Microsecond, KickTime(1000))
	require.EqualValues(t, 449, ChargeDAC(200, config.DefaultKickerCapDAC230V))
	require.EqualValues(t, config.MaxKickerCapDAC, ChargeDAC(255, config.MaxKickerCapDAC))
	require.EqualValues(t, 230, CapVoltage(config.DefaultKickerCapADC230V, config.DefaultKickerCapADC230V))
	require.EqualValues(t, 0xff, CapVoltage(config.MaxKickerCapADC, config.DefaultKickerCapADC230V))
	require.EqualValues(t, 0, CapVoltage(100, 0))
}

func TestCalcAcceleration(t *testing.T) {
	tests := []struct {
		name        string
		accel       float64
		velocityErr float64
		expected    float64
	}{
		{"start", 0, 1, 0.05},
		{"start backwards", 0, -1, -0.05},
		{"limit", 7, 1, 7},
		{"ramp down", 7, 0.4, 6.95},
		{"ramp down backwards", -7, -0.4, -6.95},
		{"no overshoot", 0.01, 0, 0},
		{"no overshoot backwards", -0.01, 0, 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.InDelta(t, test.expected, calcAcceleration(test.accel, test.velocityErr, 50, 7, 0.001), 1e-9)
		})
	}
}

func TestDrivetrainProfile(t *testing.T) {
	d := NewDrivetrain(nil, newTestSignals())
	setpoint := Movement{Forward: 1, Left: -0.5, CounterClockwise: 3}
	dt := 0.001
	var last Movement
	for i := 0; i < 1000; i++ {
		v := d.Step(setpoint, dt)
		require.LessOrEqual(t, math.Abs(v.Forward-last.Forward), 7*dt+1e-9)
		require.LessOrEqual(t, math.Abs(v.Left-last.Left), 7*dt+1e-9)
		require.LessOrEqual(t, math.Abs(v.CounterClockwise-last.CounterClockwise), 42*dt+1e-9)
		last = v
	}
	require.InDelta(t, 1, last.Forward, 1e-3)
	require.InDelta(t, -0.5, last.Left, 1e-3)
	require.InDelta(t, 3, last.CounterClockwise, 1e-3)
}

func TestOmniKinematics(t *testing.T) {
	w := WheelSpeeds(Movement{CounterClockwise: 1})
	for i := range w {
		require.InDelta(t, RobotRadius/WheelRadius, w[i], 1e-9)
	}
	for _, m := range []Movement{
		{Forward: 1},
		{Left: -2},
		{Forward: 0.3, Left: 0.7, CounterClockwise: -4},
	} {
		actual := Velocity(WheelSpeeds(m))
		require.InDelta(t, m.Forward, actual.Forward, 1e-9)
		require.InDelta(t, m.Left, actual.Left, 1e-9)
		require.InDelta(t, m.CounterClockwise, actual.CounterClockwise, 1e-9)
	}
}

type idealMotors struct {
	lock    sync.Mutex
	stopped bool
}

func (m *idealMotors) Regulate(target [4]float64) ([4]float64, error) {
	return target, nil
}

func (m *idealMotors) Stop() error {
	m.lock.Lock()
	m.stopped = true
	m.lock.Unlock()
	return nil
}

func TestDrivetrainRun(t *testing.T) {
	s := newTestSignals()
	motors := &idealMotors{}
	d := NewDrivetrain(motors, s)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	s.MovementSetpoint.Set(Movement{Forward: 0.5, Left: -0.25})
	require.Eventually(t, func() bool {
		return s.RobotVelocity.Get() == Movement{Forward: 0.5, Left: -0.25}
	}, 3*time.Second, time.Millisecond)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
	motors.lock.Lock()
	defer motors.lock.Unlock()
	require.True(t, motors.stopped)
}

type kickerCall struct {
	op    string
	value uint16
	pulse time.Duration
}

type recordingKicker struct {
	lock  sync.Mutex
	calls []kickerCall
}

func (k *recordingKicker) record(c kickerCall) error {
	k.lock.Lock()
	k.calls = append(k.calls, c)
	k.lock.Unlock()
	return nil
}

func (k *recordingKicker) Charge(dac uint16) error {
	return k.record(kickerCall{op: "charge", value: dac})
}

func (k *recordingKicker) Discharge() error {
	return k.record(kickerCall{op: "discharge"})
}

func (k *recordingKicker) Kick(ctx context.Context, d time.Duration) error {
	return k.record(kickerCall{op: "kick", pulse: d})
}

func (k *recordingKicker) CapADC() (uint16, error) {
	return config.DefaultKickerCapADC230V, nil
}

func (k *recordingKicker) has(c kickerCall) bool {
	k.lock.Lock()
	defer k.lock.Unlock()
	for _, call := range k.calls {
		if call == c {
			return true
		}
	}
	return false
}

func (k *recordingKicker) kicks() int {
	k.lock.Lock()
	defer k.lock.Unlock()
	n := 0
	for _, call := range k.calls {
		if call.op == "kick" {
			n++
		}
	}
	return n
}

func TestKicker(t *testing.T) {
	s := newTestSignals()
	driver := &recordingKicker{}
	k := NewKicker(driver, s)
	k.SampleInterval = time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- k.Run(ctx) }()

	waitCall := func(c kickerCall) {
		require.Eventually(t, func() bool { return driver.has(c) }, time.Second, time.Millisecond)
	}
	waitCall(kickerCall{op: "discharge"})
	require.Eventually(t, func() bool {
		return s.KickerCapVoltage.Get() == CalibrationVoltage
	}, time.Second, time.Millisecond)

	s.KickerSetVoltage.Set(200)
	waitCall(kickerCall{op: "charge", value: 449})

	s.KickSpeed.Set(1000)
	require.Eventually(t, func() bool {
		return s.KickRawDuration.Get() == 339*time.Microsecond
	}, time.Second, time.Millisecond)
	require.Zero(t, driver.kicks())

	s.HasBall.Set(true)
	waitCall(kickerCall{op: "kick", pulse: 339 * time.Microsecond})
	require.Eventually(t, func() bool {
		return s.KickRawDuration.Get() == 0
	}, time.Second, time.Millisecond)

	s.KickSpeed.Set(2000)
	waitCall(kickerCall{op: "kick", pulse: KickTime(2000)})
	require.Equal(t, 2, driver.kicks())

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestMainLink(t *testing.T) {
	motorEnd, mainEnd := net.Pipe()
	defer mainEnd.Close()
	s := newTestSignals()
	l := NewMainLink(motorEnd, s)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	main := link.NewMain(mainEnd)
	received := make(chan wire.Motor2Main, 16)
	go func() {
		for {
			msg, err := main.Receive()
			if err != nil {
				close(received)
				return
			}
			received <- msg
		}
	}()
	expect := func(msg wire.Motor2Main) {
		timeout := time.After(time.Second)
		for {
			select {
			case m, ok := <-received:
				require.True(t, ok)
				if m == msg {
					return
				}
			case <-timeout:
				t.Fatalf("%s not received", msg)
			}
		}
	}

	expect(wire.CapVoltage(0))
	s.RobotVelocity.Set(Movement{Forward: 1, CounterClockwise: -0.5})
	expect(wire.MotorVelocity(wire.LocalVelocity{Forward: 1000, CounterClockwise: -512}))
	s.KickerCapVoltage.Set(180)
	expect(wire.CapVoltage(180))

	drive := wire.Drive(wire.LocalVelocity{Left: 300})
	require.NoError(t, main.Send(&drive))
	require.Eventually(t, func() bool {
		return s.MovementSetpoint.Get() == Movement{Left: 0.3}
	}, time.Second, time.Millisecond)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}
