package robot

import (
	"context"
	"sync"
	"time"

	"github.com/robotalks/soccer.go/pkg/robot/config"
	"github.com/robotalks/soccer.go/pkg/robot/motorcontroller"
)

// DefaultChargeRate of the capacitor in V/s.
const DefaultChargeRate = 100

// Kicker simulates the kicker board with the factory calibration. It
// implements motorcontroller.KickerDriver and motorcontroller.CapSensor.
type Kicker struct {
	ChargeRate float64

	lock       sync.Mutex
	target     float64
	voltage    float64
	lastUpdate time.Time
	kicks      int
	now        func() time.Time
}

// NewKicker creates a discharged Kicker.
func NewKicker() *Kicker {
	return &Kicker{ChargeRate: DefaultChargeRate, now: time.Now}
}

// Charge implements motorcontroller.KickerDriver.
func (k *Kicker) Charge(dac uint16) error {
	k.lock.Lock()
	defer k.lock.Unlock()
	k.updateLocked()
	k.target = float64(dac) * motorcontroller.CalibrationVoltage / config.DefaultKickerCapDAC230V
	return nil
}

// Discharge implements motorcontroller.KickerDriver.
func (k *Kicker) Discharge() error {
	k.lock.Lock()
	k.target, k.voltage = 0, 0
	k.lock.Unlock()
	return nil
}

// Kick implements motorcontroller.KickerDriver. The pulse drains most of
// the capacitor.
func (k *Kicker) Kick(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}
	k.lock.Lock()
	k.updateLocked()
	k.voltage *= 0.2
	k.kicks++
	k.lock.Unlock()
	return nil
}

// CapADC implements motorcontroller.CapSensor.
func (k *Kicker) CapADC() (uint16, error) {
	k.lock.Lock()
	defer k.lock.Unlock()
	k.updateLocked()
	return uint16(k.voltage * config.DefaultKickerCapADC230V / motorcontroller.CalibrationVoltage), nil
}

// Kicks returns the number of kicks fired.
func (k *Kicker) Kicks() int {
	k.lock.Lock()
	defer k.lock.Unlock()
	return k.kicks
}

// updateLocked charges towards the target since the last update.
func (k *Kicker) updateLocked() {
	now := k.now()
	if !k.lastUpdate.IsZero() && k.voltage < k.target {
		k.voltage = min(k.target, k.voltage+k.ChargeRate*now.Sub(k.lastUpdate).Seconds())
	}
	k.lastUpdate = now
}
