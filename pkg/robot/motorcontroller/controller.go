package motorcontroller

import (
	"context"
	"io"

	fx "github.com/robotalks/soccer.go/pkg/framework"
	"github.com/robotalks/soccer.go/pkg/robot/config"
)

// Hardware are the peripherals of the motor controller.
type Hardware struct {
	MainPort io.ReadWriter
	Motors   Motors
	Kicker   KickerDriver
	// Store keeps the configuration. Optional.
	Store config.Backend
}

// Controller runs the motor controller tasks.
type Controller struct {
	Signals    *Signals
	MainLink   *MainLink
	Kicker     *Kicker
	Drivetrain *Drivetrain

	store config.Backend
}

// New creates a Controller on hw. The stored configuration is loaded
// over cfg when hw has a store.
func New(hw Hardware, cfg *config.Motor) *Controller {
	if hw.Store != nil {
		cfg.Load(hw.Store)
	}
	signals := NewSignals(cfg)
	return &Controller{
		Signals:    signals,
		MainLink:   NewMainLink(hw.MainPort, signals),
		Kicker:     NewKicker(hw.Kicker, signals),
		Drivetrain: NewDrivetrain(hw.Motors, signals),
		store:      hw.Store,
	}
}

// Run implements Runnable. All tasks stop when any of them stops.
func (c *Controller) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	tasks := map[string]fx.Runnable{
		"mainlink":   c.MainLink,
		"kicker":     c.Kicker,
		"drivetrain": c.Drivetrain,
		"config": fx.RunFunc(func(ctx context.Context) error {
			return c.Signals.SaveConfig.Run(ctx, c.saveConfig)
		}),
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

func (c *Controller) saveConfig() error {
	if c.store == nil {
		return nil
	}
	return c.Signals.Config.Save(c.store)
}
