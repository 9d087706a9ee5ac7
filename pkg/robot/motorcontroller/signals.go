// Package motorcontroller implements the tasks of the robot motor
// controller: the link to the main controller, the kicker and the
// drivetrain.
package motorcontroller

import (
	"fmt"
	"math"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/soccer.go/pkg/observable"
	"github.com/robotalks/soccer.go/pkg/robot/config"
	"github.com/robotalks/soccer.go/pkg/wire"
)

// Movement is a velocity in the robot frame.
type Movement struct {
	// Forward in m/s.
	Forward float64
	// Left in m/s.
	Left float64
	// CounterClockwise in rad/s.
	CounterClockwise float64
}

// MovementFromWire converts the fixed point wire velocity.
func MovementFromWire(v wire.LocalVelocity) Movement {
	return Movement{
		Forward:          float64(v.Forward) / 1000,
		Left:             float64(v.Left) / 1000,
		CounterClockwise: float64(v.CounterClockwise) / 1024,
	}
}

// Wire converts m into the fixed point wire velocity, saturating each axis.
func (m Movement) Wire() wire.LocalVelocity {
	return wire.LocalVelocity{
		Forward:          saturateI16(m.Forward * 1000),
		Left:             saturateI16(m.Left * 1000),
		CounterClockwise: saturateI16(m.CounterClockwise * 1024),
	}
}

// Sub returns m - o.
func (m Movement) Sub(o Movement) Movement {
	return Movement{
		Forward:          m.Forward - o.Forward,
		Left:             m.Left - o.Left,
		CounterClockwise: m.CounterClockwise - o.CounterClockwise,
	}
}

func (m Movement) String() string {
	return fmt.Sprintf("Movement{forward: %.3fm/s, left: %.3fm/s, ccw: %.3frad/s}",
		m.Forward, m.Left, m.CounterClockwise)
}

func saturateI16(v float64) int16 {
	switch {
	case math.IsNaN(v):
		return 0
	case v <= math.MinInt16:
		return math.MinInt16
	case v >= math.MaxInt16:
		return math.MaxInt16
	}
	return int16(math.Round(v))
}

// MaxSubscribers is the subscriber limit of every signal.
const MaxSubscribers = 8

// CalibrationVoltage is the capacitor voltage the kicker calibration
// points refer to.
const CalibrationVoltage = 230

// Signals are the values exchanged between the motor controller tasks.
type Signals struct {
	Config *config.Motor

	MovementSetpoint *observable.Observable[Movement]
	RobotVelocity    *observable.Observable[Movement]
	// KickerSetVoltage and KickerCapVoltage in V.
	KickerSetVoltage *observable.Observable[uint8]
	KickerCapVoltage *observable.Observable[uint8]
	HasBall          *observable.Observable[bool]
	// KickSpeed in mm/s.
	KickSpeed *observable.Observable[uint16]
	// KickRawDuration is the armed solenoid pulse, zero when disarmed.
	KickRawDuration *observable.Observable[time.Duration]

	// SaveConfig is signaled after the configuration changed.
	SaveConfig config.SaveSignal
}

// NewSignals creates Signals in the power-on state.
func NewSignals(cfg *config.Motor) *Signals {
	return &Signals{
		Config:           cfg,
		MovementSetpoint: observable.New(Movement{}, MaxSubscribers),
		RobotVelocity:    observable.New(Movement{}, MaxSubscribers),
		KickerSetVoltage: observable.New[uint8](0, MaxSubscribers),
		KickerCapVoltage: observable.New[uint8](0, MaxSubscribers),
		HasBall:          observable.New(false, MaxSubscribers),
		KickSpeed:        observable.New[uint16](0, MaxSubscribers),
		KickRawDuration:  observable.New[time.Duration](0, MaxSubscribers),
		SaveConfig:       config.NewSaveSignal(),
	}
}

// Apply processes a message from the main controller.
func (s *Signals) Apply(msg wire.Main2Motor) {
	switch msg.Kind {
	case wire.Main2MotorDrive:
		movement := MovementFromWire(msg.Velocity)
		glog.V(2).Infof("got drive command %s", movement)
		s.MovementSetpoint.SetIfDifferent(movement)
	case wire.Main2MotorKick, wire.Main2MotorChip:
		glog.V(1).Infof("got kick or chip command with speed %dmm/s", msg.Value)
		s.KickSpeed.SetIfDifferent(msg.Value)
	case wire.Main2MotorKickRaw:
		glog.V(1).Infof("got raw kick command with duration %dus", msg.Value)
		s.KickRawDuration.SetIfDifferent(time.Duration(msg.Value) * time.Microsecond)
	case wire.Main2MotorBallInDribbler:
		s.HasBall.Set(true)
	case wire.Main2MotorBallNotInDribbler:
		s.HasBall.Set(false)
	case wire.Main2MotorCalibrateCapVoltage:
		s.calibrate(msg.Voltage)
	case wire.Main2MotorChargeHint:
		var voltage uint8
		if msg.ChargeHint != wire.ChargeHintDischarge {
			voltage = s.Config.KickerChargeVoltage.Get()
		}
		glog.V(1).Infof("got charge hint %s, set voltage %dV", msg.ChargeHint, voltage)
		s.KickerSetVoltage.SetIfDifferent(voltage)
	default:
		glog.Errorf("unexpected message %s", msg)
	}
}

// calibrate scales the kicker calibration points by the ratio between the
// measured capacitor voltage and the expected one, then requests a save.
func (s *Signals) calibrate(measured uint8) {
	glog.Infof("calibrating cap voltage: %dV", measured)
	dac := float64(s.Config.KickerCapDAC230V.Get()) * CalibrationVoltage / float64(measured)
	s.Config.KickerCapDAC230V.Set(clampU16(dac, 1, config.MaxKickerCapDAC))

	adc := float64(s.Config.KickerCapADC230V.Get()) * float64(measured) / float64(s.KickerCapVoltage.Get())
	s.Config.KickerCapADC230V.Set(clampU16(adc, 1, config.MaxKickerCapADC))

	s.SaveConfig.Signal()
}

// clampU16 converts v into [lo, hi]. NaN maps to lo.
func clampU16(v float64, lo, hi uint16) uint16 {
	switch {
	case math.IsNaN(v), v <= float64(lo):
		return lo
	case v >= float64(hi):
		return hi
	}
	return uint16(v)
}
