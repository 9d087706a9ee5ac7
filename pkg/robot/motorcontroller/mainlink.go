package motorcontroller

import (
	"context"
	"errors"
	"io"

	"github.com/golang/glog"

	fx "github.com/robotalks/soccer.go/pkg/framework"
	"github.com/robotalks/soccer.go/pkg/intra/frame"
	"github.com/robotalks/soccer.go/pkg/intra/link"
	"github.com/robotalks/soccer.go/pkg/observable"
	"github.com/robotalks/soccer.go/pkg/wire"
)

// MainLink applies the commands of the main controller and reports the
// capacitor voltage and the measured velocity back.
type MainLink struct {
	Signals *Signals

	endpoint *link.Motor
}

// NewMainLink creates a MainLink over the UART port.
func NewMainLink(port io.ReadWriter, signals *Signals) *MainLink {
	return &MainLink{Signals: signals, endpoint: link.NewMotor(port)}
}

// Run implements Runnable.
func (l *MainLink) Run(ctx context.Context) error {
	voltageSub, err := l.Signals.KickerCapVoltage.Subscribe()
	if err != nil {
		return err
	}
	defer voltageSub.Close()
	velocitySub, err := l.Signals.RobotVelocity.Subscribe()
	if err != nil {
		return err
	}
	defer velocitySub.Close()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	runner := fx.NewRunnerWith(runCtx)
	runner.Go(
		fx.NamedRun("main-send", fx.RunFunc(func(ctx context.Context) error {
			return l.sendLoop(ctx, voltageSub, velocitySub)
		})),
		fx.NamedRun("main-receive", fx.RunFunc(func(ctx context.Context) error {
			defer cancel()
			return l.endpoint.Serve(ctx, l.Signals.Apply, func(err error) {
				var decodeErr *frame.DecodeError
				if errors.As(err, &decodeErr) {
					glog.Errorf("couldn't deserialize message from maincontroller: %v", err)
				} else {
					glog.Errorf("unable to find valid frame: %v", err)
				}
			})
		})),
	)
	if err := runner.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// sendLoop sends whichever value changed.
func (l *MainLink) sendLoop(ctx context.Context, voltageSub *observable.Subscriber[uint8], velocitySub *observable.Subscriber[Movement]) error {
	voltageCh := watch(ctx, voltageSub)
	velocityCh := watch(ctx, velocitySub)
	for {
		var msg wire.Motor2Main
		select {
		case <-ctx.Done():
			return ctx.Err()
		case volts := <-voltageCh:
			msg = wire.CapVoltage(volts)
		case movement := <-velocityCh:
			msg = wire.MotorVelocity(movement.Wire())
		}
		if err := l.endpoint.Send(&msg); err != nil {
			glog.Errorf("unable to send %s to maincontroller: %v", msg, err)
		}
	}
}

// watch forwards the changes seen by sub until ctx is done.
func watch[T comparable](ctx context.Context, sub *observable.Subscriber[T]) <-chan T {
	ch := make(chan T)
	go func() {
		for {
			v, err := sub.Next(ctx)
			if err != nil {
				return
			}
			select {
			case ch <- v:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}
