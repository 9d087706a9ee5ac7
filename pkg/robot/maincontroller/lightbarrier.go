package maincontroller

import (
	"context"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/soccer.go/pkg/observable"
)

// LightBarrier filters the ball sensor into Signals.Ball.
//
// A ball bouncing in front of the dribbler interrupts the beam only
// briefly, so a lost contact is reported as ContactLost and becomes NoBall
// only after the configured filter time.
type LightBarrier struct {
	// Sense is the level of the sensor pin, low while the ball
	// interrupts the beam.
	Sense   *observable.Observable[bool]
	Signals *Signals
}

// NewLightBarrier creates a LightBarrier.
func NewLightBarrier(sense *observable.Observable[bool], signals *Signals) *LightBarrier {
	return &LightBarrier{Sense: sense, Signals: signals}
}

// Run implements Runnable.
func (b *LightBarrier) Run(ctx context.Context) error {
	sub, err := b.Sense.Subscribe()
	if err != nil {
		return err
	}
	defer sub.Close()

	state := NoBall
	glog.Info("Starting lightbarrier loop")
	for {
		b.Signals.Ball.Set(state)
		glog.V(1).Infof("light barrier: %s", state)
		switch state {
		case NoBall:
			if err := waitLevel(ctx, sub, false); err != nil {
				return err
			}
			state = HasBall
		case HasBall:
			if err := waitLevel(ctx, sub, true); err != nil {
				return err
			}
			state = ContactLost
		case ContactLost:
			filter := time.Duration(b.Signals.Config.LightBarrierFilterTime.Get()) * time.Millisecond
			filterCtx, cancel := context.WithTimeout(ctx, filter)
			err := waitLevel(filterCtx, sub, false)
			cancel()
			switch {
			case err == nil:
				state = HasBall
			case ctx.Err() != nil:
				return ctx.Err()
			default:
				state = NoBall
			}
		}
	}
}

func waitLevel(ctx context.Context, sub *observable.Subscriber[bool], high bool) error {
	for {
		level, err := sub.Next(ctx)
		if err != nil {
			return err
		}
		if level == high {
			return nil
		}
	}
}
