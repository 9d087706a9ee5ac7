package maincontroller

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/soccer.go/pkg/framework"
	"github.com/robotalks/soccer.go/pkg/intra/frame"
	"github.com/robotalks/soccer.go/pkg/intra/link"
	"github.com/robotalks/soccer.go/pkg/observable"
	"github.com/robotalks/soccer.go/pkg/wire"
)

// DefaultResendInterval is the longest time between two sends of a value.
const DefaultResendInterval = time.Second

// MotorLink keeps the motor controller in sync with the commands and
// collects its measurements.
type MotorLink struct {
	Signals        *Signals
	ResendInterval time.Duration

	endpoint *link.Main
	sendLock sync.Mutex
}

// NewMotorLink creates a MotorLink over the UART port.
func NewMotorLink(port io.ReadWriter, signals *Signals) *MotorLink {
	return &MotorLink{
		Signals:        signals,
		ResendInterval: DefaultResendInterval,
		endpoint:       link.NewMain(port),
	}
}

// Run implements Runnable.
func (l *MotorLink) Run(ctx context.Context) error {
	ballSub, err := l.Signals.Ball.Subscribe()
	if err != nil {
		return err
	}
	defer ballSub.Close()
	velocitySub, err := l.Signals.CommandVelocity.Subscribe()
	if err != nil {
		return err
	}
	defer velocitySub.Close()
	kickSub, err := l.Signals.KickSpeed.Subscribe()
	if err != nil {
		return err
	}
	defer kickSub.Close()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	runner := fx.NewRunnerWith(runCtx)
	runner.Go(
		fx.NamedRun("motor-ball", fx.RunFunc(func(ctx context.Context) error {
			return sendLoop(ctx, l, ballSub, l.Signals.Ball, func(s BallState) []wire.Main2Motor {
				return []wire.Main2Motor{wire.BallPresence(s == HasBall)}
			})
		})),
		fx.NamedRun("motor-velocity", fx.RunFunc(func(ctx context.Context) error {
			return sendLoop(ctx, l, velocitySub, l.Signals.CommandVelocity, func(v wire.LocalVelocity) []wire.Main2Motor {
				return []wire.Main2Motor{wire.Drive(v)}
			})
		})),
		fx.NamedRun("motor-kick", fx.RunFunc(func(ctx context.Context) error {
			return sendLoop(ctx, l, kickSub, l.Signals.KickSpeed, func(k KickSpeed) []wire.Main2Motor {
				return []wire.Main2Motor{wire.ChargeHint(wire.ChargeHintCharge), k.message()}
			})
		})),
		fx.NamedRun("motor-receive", fx.RunFunc(func(ctx context.Context) error {
			defer cancel()
			return l.receiveLoop(ctx)
		})),
	)
	if err := runner.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// sendLoop sends the messages of a value whenever it changes, and at
// least every ResendInterval.
func sendLoop[T comparable](ctx context.Context, l *MotorLink, sub *observable.Subscriber[T], o *observable.Observable[T], messages func(T) []wire.Main2Motor) error {
	for {
		waitCtx, cancel := context.WithTimeout(ctx, l.resendInterval())
		value, err := sub.Next(waitCtx)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			value = o.Get()
		}
		glog.V(2).Infof("sending %v to motorcontroller", value)
		l.send(messages(value)...)
	}
}

func (l *MotorLink) resendInterval() time.Duration {
	if l.ResendInterval > 0 {
		return l.ResendInterval
	}
	return DefaultResendInterval
}

// send writes msgs back to back. Failures are logged.
func (l *MotorLink) send(msgs ...wire.Main2Motor) {
	l.sendLock.Lock()
	defer l.sendLock.Unlock()
	for i := range msgs {
		if err := l.endpoint.Send(&msgs[i]); err != nil {
			glog.Errorf("unable to send %s to motorcontroller: %v", msgs[i], err)
			return
		}
	}
}

func (l *MotorLink) receiveLoop(ctx context.Context) error {
	return l.endpoint.Serve(ctx, l.handle, func(err error) {
		var decodeErr *frame.DecodeError
		if errors.As(err, &decodeErr) {
			glog.Errorf("couldn't deserialize message from motorcontroller: %v", err)
		} else {
			glog.Errorf("unable to find valid frame: %v", err)
		}
	})
}

func (l *MotorLink) handle(msg wire.Motor2Main) {
	switch msg.Kind {
	case wire.Motor2MainMotorVelocity:
		l.Signals.ActualVelocity.SetIfDifferent(msg.Velocity)
	case wire.Motor2MainCapVoltage:
		l.Signals.KickerVoltage.SetIfDifferent(msg.Voltage)
	}
}
