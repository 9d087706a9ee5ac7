// Package robot simulates complete robots: both controllers running the
// firmware logic, connected by an in-memory UART, on a simulated radio.
package robot

import (
	"context"
	"fmt"
	"net"

	fx "github.com/robotalks/soccer.go/pkg/framework"
	"github.com/robotalks/soccer.go/pkg/observable"
	"github.com/robotalks/soccer.go/pkg/radio"
	"github.com/robotalks/soccer.go/pkg/robot/config"
	"github.com/robotalks/soccer.go/pkg/robot/maincontroller"
	"github.com/robotalks/soccer.go/pkg/robot/motorcontroller"
	"github.com/robotalks/soccer.go/pkg/sim"
	"github.com/robotalks/soccer.go/pkg/sim/air"
	"github.com/robotalks/soccer.go/pkg/sim/physics"
	"github.com/robotalks/soccer.go/pkg/wire"
)

// DefaultBatteryVoltage is the battery voltage reported by simulated
// robots.
const DefaultBatteryVoltage = 16.4

// Robot is a simulated robot on the field.
type Robot struct {
	Team    wire.Team
	ID      uint8
	Outline sim.Rect

	Body      *physics.Body
	Wheels    *physics.Wheels
	Kicker    *Kicker
	BallSense *observable.Observable[bool]

	Main  *maincontroller.Controller
	Motor *motorcontroller.Controller

	mainPort, motorPort net.Conn
}

// New creates a robot listening on medium, placed at pose.
func New(medium *air.Medium, team wire.Team, id uint8, diameter float64, pose sim.Pose2D) *Robot {
	r := &Robot{
		Team:      team,
		ID:        id,
		Outline:   sim.Rect{Pos2D: sim.Pos2D{X: -diameter / 2, Y: -diameter / 2}, Size2D: sim.Size2D{CX: diameter, CY: diameter}},
		Body:      physics.NewBody(pose),
		Wheels:    physics.NewWheels(),
		Kicker:    NewKicker(),
		BallSense: observable.New(true, 1),
	}
	r.mainPort, r.motorPort = net.Pipe()

	mainCfg := config.DefaultMainV0()
	mainCfg.ID = id
	r.Main = maincontroller.New(maincontroller.Hardware{
		Transceiver: medium.NewTransceiver(r.Name()),
		FrontEnd:    radio.NewFrontEnd(&radio.PinLevels{}),
		MotorPort:   r.mainPort,
		BallSense:   r.BallSense,
	}, config.NewMain(mainCfg))
	r.Main.Radio.Team = team
	r.Main.Signals.BatteryVoltage.Set(DefaultBatteryVoltage)

	r.Motor = motorcontroller.New(motorcontroller.Hardware{
		MainPort: r.motorPort,
		Motors:   r.Wheels,
		Kicker:   r.Kicker,
		Store:    &config.MemoryBackend{},
	}, config.NewMotor(config.DefaultMotorV0()))
	return r
}

// Name implements sim.Object.
func (r *Robot) Name() string {
	return fmt.Sprintf("robot/%s/%d", r.Team, r.ID)
}

// OutlineRect implements sim.Rectangular.
func (r *Robot) OutlineRect() sim.Rect {
	return r.Outline
}

// Position2D implements sim.Positionable2D.
func (r *Robot) Position2D() sim.Pose2D {
	return r.Body.Position2D()
}

// SetPose2D implements sim.Placeable2D.
func (r *Robot) SetPose2D(pose sim.Pose2D) sim.Pose2D {
	return r.Body.SetPose2D(pose)
}

// SetBall places or removes the ball in front of the dribbler.
func (r *Robot) SetBall(present bool) {
	// the beam is interrupted by the ball
	r.BallSense.Set(!present)
}

// Run implements Runnable.
func (r *Robot) Run(ctx context.Context) error {
	defer r.mainPort.Close()
	defer r.motorPort.Close()
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	runner := fx.NewRunnerWith(runCtx)
	for name, task := range map[string]fx.Runnable{
		"main":  r.Main,
		"motor": r.Motor,
	} {
		task := task
		runner.Go(fx.NamedRun(r.Name()+"/"+name, fx.RunFunc(func(ctx context.Context) error {
			defer cancel()
			return task.Run(ctx)
		})))
	}
	if err := runner.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
