package physics

import (
	"math"
	"sync"
	"time"
)

// DefaultWheelTimeConstant is the time a wheel takes to cover 63% of a
// speed step.
const DefaultWheelTimeConstant = 20 * time.Millisecond

// Wheels simulates the four motors of the drivetrain as first order lags.
// It implements motorcontroller.Motors.
type Wheels struct {
	TimeConstant time.Duration

	lock       sync.Mutex
	speeds     [4]float64
	lastUpdate time.Time
	now        func() time.Time
}

// NewWheels creates Wheels at rest.
func NewWheels() *Wheels {
	return &Wheels{TimeConstant: DefaultWheelTimeConstant, now: time.Now}
}

// Regulate implements motorcontroller.Motors.
func (w *Wheels) Regulate(target [4]float64) ([4]float64, error) {
	w.lock.Lock()
	defer w.lock.Unlock()
	now := w.now()
	if !w.lastUpdate.IsZero() {
		alpha := 1.0
		if w.TimeConstant > 0 {
			alpha = 1 - math.Exp(-now.Sub(w.lastUpdate).Seconds()/w.TimeConstant.Seconds())
		}
		for i := range w.speeds {
			w.speeds[i] += (target[i] - w.speeds[i]) * alpha
		}
	}
	w.lastUpdate = now
	return w.speeds, nil
}

// Stop implements motorcontroller.Motors. The wheels stop at once.
func (w *Wheels) Stop() error {
	w.lock.Lock()
	w.speeds = [4]float64{}
	w.lastUpdate = time.Time{}
	w.lock.Unlock()
	return nil
}

// Speeds returns the wheel speeds in rad/s.
func (w *Wheels) Speeds() [4]float64 {
	w.lock.Lock()
	defer w.lock.Unlock()
	return w.speeds
}
