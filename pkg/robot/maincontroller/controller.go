package maincontroller

import (
	"context"
	"io"

	fx "github.com/robotalks/soccer.go/pkg/framework"
	"github.com/robotalks/soccer.go/pkg/observable"
	"github.com/robotalks/soccer.go/pkg/radio"
	"github.com/robotalks/soccer.go/pkg/robot/config"
)

// Hardware are the peripherals of the main controller.
type Hardware struct {
	Transceiver radio.Transceiver
	FrontEnd    *radio.FrontEnd
	MotorPort   io.ReadWriter
	BallSense   *observable.Observable[bool]
	// Dribbler is optional.
	Dribbler PWM
}

// Controller runs the main controller tasks.
type Controller struct {
	Signals      *Signals
	Radio        *Radio
	MotorLink    *MotorLink
	LightBarrier *LightBarrier
	Dribbler     *Dribbler
}

// New creates a Controller on hw.
func New(hw Hardware, cfg *config.Main) *Controller {
	signals := NewSignals(cfg)
	c := &Controller{
		Signals:      signals,
		Radio:        NewRadio(hw.Transceiver, hw.FrontEnd, signals),
		MotorLink:    NewMotorLink(hw.MotorPort, signals),
		LightBarrier: NewLightBarrier(hw.BallSense, signals),
	}
	if hw.Dribbler != nil {
		c.Dribbler = NewDribbler(hw.Dribbler, signals)
	}
	return c
}

// Run implements Runnable. All tasks stop when any of them stops.
func (c *Controller) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	tasks := map[string]fx.Runnable{
		"radio":        c.Radio,
		"motorlink":    c.MotorLink,
		"lightbarrier": c.LightBarrier,
	}
	if c.Dribbler != nil {
		tasks["dribbler"] = c.Dribbler
	}
	runner := fx.NewRunnerWith(runCtx)
	for name, task := range tasks {
		task := task
		runner.Go(fx.NamedRun(name, fx.RunFunc(func(ctx context.Context) error {
			defer cancel()
			return task.Run(ctx)
		})))
	}
	if err := runner.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
