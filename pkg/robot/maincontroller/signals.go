// Package maincontroller implements the tasks of the robot main controller:
// the radio link to the basestation, the link to the motor controller, the
// light barrier and the dribbler.
//
// Tasks share state only through the observables in Signals.
package maincontroller

import (
	"fmt"

	"github.com/robotalks/soccer.go/pkg/observable"
	"github.com/robotalks/soccer.go/pkg/robot/config"
	"github.com/robotalks/soccer.go/pkg/wire"
)

// BallState is the filtered light barrier state.
type BallState uint8

// Ball states.
const (
	NoBall BallState = iota
	HasBall
	ContactLost
)

func (s BallState) String() string {
	switch s {
	case NoBall:
		return "NoBall"
	case HasBall:
		return "HasBall"
	case ContactLost:
		return "ContactLost"
	}
	return fmt.Sprintf("BallState(%d)", uint8(s))
}

// Wire converts the state to the one reported to the basestation.
// A lost contact still counts as a ball in the dribbler.
func (s BallState) Wire() wire.BallState {
	if s == HasBall || s == ContactLost {
		return wire.BallInDribbler
	}
	return wire.BallNotInDribbler
}

// KickSpeed is a kick request, either a speed in mm/s or a raw
// solenoid pulse duration in us.
type KickSpeed struct {
	Raw   bool
	Value uint16
}

func (k KickSpeed) String() string {
	if k.Raw {
		return fmt.Sprintf("Raw(%dus)", k.Value)
	}
	return fmt.Sprintf("Velocity(%dmm/s)", k.Value)
}

// message converts the request into the motor controller message.
func (k KickSpeed) message() wire.Main2Motor {
	if k.Raw {
		return wire.KickRaw(k.Value)
	}
	return wire.Kick(k.Value)
}

// MaxSubscribers is the subscriber limit of every signal.
const MaxSubscribers = 8

// Signals are the values exchanged between the main controller tasks.
type Signals struct {
	Config *config.Main

	// BatteryVoltage in V.
	BatteryVoltage  *observable.Observable[float32]
	Ball            *observable.Observable[BallState]
	DribblerSpeed   *observable.Observable[uint16]
	CommandVelocity *observable.Observable[wire.LocalVelocity]
	KickSpeed       *observable.Observable[KickSpeed]
	ActualVelocity  *observable.Observable[wire.LocalVelocity]
	// KickerVoltage in V.
	KickerVoltage *observable.Observable[uint8]
}

// NewSignals creates Signals in the power-on state.
func NewSignals(cfg *config.Main) *Signals {
	return &Signals{
		Config:          cfg,
		BatteryVoltage:  observable.New[float32](0, MaxSubscribers),
		Ball:            observable.New(NoBall, MaxSubscribers),
		DribblerSpeed:   observable.New[uint16](0, MaxSubscribers),
		CommandVelocity: observable.New(wire.LocalVelocity{}, MaxSubscribers),
		KickSpeed:       observable.New(KickSpeed{}, MaxSubscribers),
		ActualVelocity:  observable.New(wire.LocalVelocity{}, MaxSubscribers),
		KickerVoltage:   observable.New[uint8](0, MaxSubscribers),
	}
}

// Stop zeroes every actuator command.
func (s *Signals) Stop() {
	s.CommandVelocity.Set(wire.LocalVelocity{})
	s.KickSpeed.Set(KickSpeed{})
	s.DribblerSpeed.Set(0)
}

// Apply processes the command part of a basestation packet.
// Unsupported selections are logged and leave the current value.
func (s *Signals) Apply(cmd *wire.BasestationToRobot) {
	switch cmd.Movement.Kind {
	case wire.MovementRobotVelocity:
		s.CommandVelocity.SetIfDifferent(cmd.Movement.RobotVelocity)
	case wire.MovementCameraVelocity:
		logUnsupported("camera velocity control")
	case wire.MovementPosition:
		logUnsupported("position control")
	}

	switch cmd.KickSpeed.Kind {
	case wire.KickSpeedRelative:
		s.KickSpeed.SetIfDifferent(KickSpeed{Value: cmd.KickSpeed.Speed})
	case wire.KickSpeedAbsolute:
		logUnsupported("absolute kick speed")
	}

	switch cmd.DribblerSpeed.Kind {
	case wire.DribblerSpeedTristate:
		var speed uint16
		switch cmd.DribblerSpeed.Tristate {
		case wire.DribblerHalf:
			speed = s.Config.DribblerLow.Get()
		case wire.DribblerFull:
			speed = s.Config.DribblerHigh.Get()
		}
		s.DribblerSpeed.SetIfDifferent(speed)
	case wire.DribblerSpeedPercent:
		s.DribblerSpeed.SetIfDifferent(uint16(cmd.DribblerSpeed.Percent) * (0xffff / 100))
	case wire.DribblerSpeedRpm:
		logUnsupported("dribbler rpm control")
	}

	if cmd.GameState == wire.GameStateHalt {
		s.Stop()
	}
}

// Feedback builds the reply to the basestation.
func (s *Signals) Feedback(team wire.Team, rssi int32) wire.RobotToBasestation {
	return wire.RobotToBasestation{
		ID:             s.Config.ID.Get(),
		Team:           team,
		BatteryVoltage: saturateU8(float64(s.BatteryVoltage.Get()) * 8),
		KickerVoltage:  s.KickerVoltage.Get(),
		HasBall:        s.Ball.Get().Wire(),
		Rssi:           saturateU8(float64(-rssi)),
		Velocity: &wire.VelocitySelection{
			Kind:          wire.VelocityRobot,
			RobotVelocity: s.ActualVelocity.Get(),
		},
		FirmwareVersion: wire.FirmwareVersion,
	}
}

func saturateU8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 0xff:
		return 0xff
	}
	return uint8(v)
}
