package maincontroller

import (
	"context"

	"github.com/golang/glog"
)

// Dribbler PWM timing: 500Hz from the 125MHz system clock divided by 4.
// The ESC idles at half duty cycle.
const (
	DribblerPWMTop     = 125000000 / (4 * 500)
	DribblerMinCompare = DribblerPWMTop / 2
	DribblerMaxCompare = DribblerPWMTop
)

// PWM is a PWM channel.
type PWM interface {
	SetCompare(compare uint16) error
}

// DribblerCompare maps a dribbler speed onto the compare value range
// [lo, hi].
func DribblerCompare(speed, lo, hi uint16) uint16 {
	return uint16(uint32(speed)*uint32(hi-lo)/0xffff + uint32(lo))
}

// Dribbler drives the dribbler ESC from Signals.DribblerSpeed.
type Dribbler struct {
	Output  PWM
	Signals *Signals
}

// NewDribbler creates a Dribbler.
func NewDribbler(out PWM, signals *Signals) *Dribbler {
	return &Dribbler{Output: out, Signals: signals}
}

// Run implements Runnable.
func (d *Dribbler) Run(ctx context.Context) error {
	sub, err := d.Signals.DribblerSpeed.Subscribe()
	if err != nil {
		return err
	}
	defer sub.Close()
	if err := d.Output.SetCompare(DribblerMinCompare); err != nil {
		return err
	}
	for {
		speed, err := sub.Next(ctx)
		if err != nil {
			return err
		}
		if err := d.Output.SetCompare(DribblerCompare(speed, DribblerMinCompare, DribblerMaxCompare)); err != nil {
			glog.Errorf("couldn't set dribbler pwm: %v", err)
			continue
		}
		glog.V(1).Infof("set new dribbler speed to %d%%", DribblerCompare(speed, 0, 100))
	}
}
